package logging

import (
	"os"
	"testing"

	"github.com/fatih/color"
)

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{
			name:  "NO_COLOR prevents color",
			env:   map[string]string{"NO_COLOR": "1"},
			isTTY: true,
			want:  false,
		},
		{
			name:  "TERM=dumb prevents color",
			env:   map[string]string{"TERM": "dumb"},
			isTTY: true,
			want:  false,
		},
		{
			name:  "non-TTY prevents color",
			env:   map[string]string{},
			isTTY: false,
			want:  false,
		},
		{
			name:  "TTY allows color",
			env:   map[string]string{"TERM": "xterm-256color"},
			isTTY: true,
			want:  true,
		},
		{
			name:  "CLICOLOR_FORCE enables color off a TTY",
			env:   map[string]string{"CLICOLOR_FORCE": "1"},
			isTTY: false,
			want:  true,
		},
		{
			name:  "CLICOLOR_FORCE=0 is ignored",
			env:   map[string]string{"CLICOLOR_FORCE": "0"},
			isTTY: false,
			want:  false,
		},
		{
			name:  "NO_COLOR wins over CLICOLOR_FORCE",
			env:   map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "1"},
			isTTY: true,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv restores the originals; Unsetenv clears them for this case
			t.Setenv("NO_COLOR", "")
			t.Setenv("TERM", "")
			t.Setenv("CLICOLOR_FORCE", "")
			os.Unsetenv("NO_COLOR")
			os.Unsetenv("TERM")
			os.Unsetenv("CLICOLOR_FORCE")

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got := supportsColor(tt.isTTY)
			if got != tt.want {
				t.Errorf("supportsColor() = %v, want %v (env=%v, isTTY=%v)", got, tt.want, tt.env, tt.isTTY)
			}
		})
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	var w mockWriter
	if IsTTY(&w) != false {
		t.Error("IsTTY should return false for mockWriter")
	}
}

func TestConfigureColor(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })

	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	t.Setenv("TERM", "xterm")
	t.Setenv("CLICOLOR_FORCE", "1")
	ConfigureColor(&mockWriter{})
	if color.NoColor {
		t.Error("ConfigureColor should enable color when forced")
	}

	t.Setenv("NO_COLOR", "1")
	ConfigureColor(&mockWriter{})
	if !color.NoColor {
		t.Error("ConfigureColor should disable color with NO_COLOR")
	}
}

type mockWriter struct{}

func (m *mockWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}
