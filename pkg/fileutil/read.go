package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/globcheck/internal/errors"
)

// MaxFileSize is the default maximum size of a document we'll read (1MB).
// This prevents memory exhaustion from maliciously large files.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that an input exceeded its size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileMax reads a file of at most limit bytes.
func ReadFileMax(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Get file info to fail fast if size is already too large
	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		if info.Size() > limit {
			return nil, tooLarge(limit)
		}
	}

	return ReadAllMax(f, limit)
}

// ReadAllMax reads r until EOF, failing once more than limit bytes arrive.
// Use it for streams such as stdin whose size is not known up front.
func ReadAllMax(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if int64(len(data)) > limit {
		return nil, tooLarge(limit)
	}

	return data, nil
}

func tooLarge(limit int64) error {
	return errors.Mark(errors.Newf("exceeds maximum size of %d bytes", limit), ErrFileTooLarge)
}
