package imagestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const stagingDirName = ".staging"

type LocalStore struct {
	dir string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore does not touch the disk; directories are created on first write.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// Path is the final location of name.
func (s *LocalStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *LocalStore) stagingPath(name string) string {
	return filepath.Join(s.dir, stagingDirName, name)
}

func (s *LocalStore) Stage(ctx context.Context, upload *Upload) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.dir, stagingDirName), 0755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	name := GenerateFilename(upload)
	// O_EXCL so a name collision fails instead of overwriting
	f, err := os.OpenFile(s.stagingPath(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create staged image: %w", err)
	}

	if _, err := f.Write(upload.Data); err != nil {
		f.Close()
		os.Remove(s.stagingPath(name))
		return "", fmt.Errorf("write staged image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.stagingPath(name))
		return "", fmt.Errorf("close staged image: %w", err)
	}

	return name, nil
}

func (s *LocalStore) Promote(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Rename(s.stagingPath(name), s.Path(name)); err != nil {
		return fmt.Errorf("promote image: %w", err)
	}
	return nil
}

func (s *LocalStore) Discard(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return removeIfExists(s.stagingPath(name))
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return removeIfExists(s.Path(name))
}

func (s *LocalStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
