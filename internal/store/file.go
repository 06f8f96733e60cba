package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
)

// FileStore keeps the roster in a single JSON or YAML document.
type FileStore struct {
	path   string
	format Format
}

var _ Gateway = (*FileStore)(nil)

// NewFileStore returns a gateway for the document at path. An empty format
// is inferred from the file extension.
func NewFileStore(path string, format Format) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("store path must not be empty")
	}
	f, err := ParseFormat(string(format), path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path, format: f}, nil
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// Format returns the document encoding.
func (s *FileStore) Format() Format { return s.format }

// Load reads and decodes the document. Unknown fields and trailing content
// are rejected.
func (s *FileStore) Load() ([]models.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", s.path, ErrNotFound)
		}
		return nil, persistErr("load "+s.path, err)
	}
	records, err := decode(s.format, data)
	if err != nil {
		return nil, persistErr("decode "+s.path, err)
	}
	return records, nil
}

// Save encodes records and atomically replaces the document.
func (s *FileStore) Save(records []models.Record) error {
	data, err := encode(s.format, records)
	if err != nil {
		return persistErr("encode "+s.path, err)
	}
	if err := writeFileAtomicDurable(s.path, data, 0o644); err != nil {
		return persistErr("save "+s.path, err)
	}
	return nil
}

// writeFileAtomicDurable writes to a temp file in the target directory,
// syncs it, renames it over path and syncs the directory.
func writeFileAtomicDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
