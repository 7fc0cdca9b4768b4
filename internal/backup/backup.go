package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/globcheck/internal/paths"
)

// DefaultRetentionCount is the default number of snapshots kept per file.
const DefaultRetentionCount = 5

// idFormat is the timestamp layout of snapshot IDs.
const idFormat = "20060102T150405.000"

const suffix = ".bak"

// ErrNoBackupsFound indicates a file has no snapshots.
var ErrNoBackupsFound = errors.New("no backups found")

// Snapshot describes one stored copy of a file.
type Snapshot struct {
	// ID is the creation timestamp, e.g. 20260123T100712.123.
	ID string
	// Path is where the copy is stored.
	Path string
	// CreatedAt is parsed from ID.
	CreatedAt time.Time
}

// Manager creates and prunes snapshots in one directory.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithRetentionCount sets the number of snapshots to retain per file.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a Manager storing snapshots under dir.
func NewManager(dir string, opts ...Option) *Manager {
	m := &Manager{
		rootDir:        dir,
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the file at path into the backup directory and prunes old
// snapshots of it. If the newest snapshot already holds the same content,
// that snapshot is returned and nothing is written.
func (m *Manager) Backup(path string) (*Snapshot, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	name := filepath.Base(path)

	hash, err := hashFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "backing up %s", path)
	}

	existing, err := m.List(name)
	if err != nil && !errors.Is(err, ErrNoBackupsFound) {
		return nil, err
	}
	if len(existing) > 0 {
		if latest, err := hashFile(existing[0].Path); err == nil && latest == hash {
			return &existing[0], nil
		}
	}

	if err := paths.EnsureDir(m.rootDir, 0); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	now := m.now().UTC()
	snap := Snapshot{
		ID:        now.Format(idFormat),
		CreatedAt: now.Truncate(time.Millisecond),
	}
	snap.Path = filepath.Join(m.rootDir, name+"."+snap.ID+suffix)

	if err := copyFile(path, snap.Path); err != nil {
		return nil, errors.Wrapf(err, "backing up %s", path)
	}

	if err := m.Prune(name, m.retentionCount); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns the snapshots of the file called name, newest first.
func (m *Manager) List(name string) ([]Snapshot, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "for %s", name)
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	prefix := name + "."
	var snaps []Snapshot
	for _, e := range entries {
		base := e.Name()
		if e.IsDir() || !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, suffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(base, prefix), suffix)
		created, err := time.Parse(idFormat, id)
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{ID: id, Path: filepath.Join(m.rootDir, base), CreatedAt: created})
	}

	if len(snaps) == 0 {
		return nil, errors.Wrapf(ErrNoBackupsFound, "for %s", name)
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return snaps, nil
}

// Prune removes snapshots of name beyond the newest keep.
func (m *Manager) Prune(name string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	snaps, err := m.List(name)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil // Nothing to prune
		}
		return err
	}

	for i := keep; i < len(snaps); i++ {
		if err := os.Remove(snaps[i].Path); err != nil {
			return errors.Wrapf(err, "removing backup %s", snaps[i].ID)
		}
	}
	return nil
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst with src's permissions. dst must not exist.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source file")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, "creating backup file")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return errors.Wrap(err, "copying file")
	}

	return errors.Wrap(dstFile.Close(), "closing backup file")
}
