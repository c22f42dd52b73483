package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lorenzwed/lorenzwed/pkg/models"
)

type LocalStorageConfig struct {
	Root     string
	ReadOnly bool
}

// LocalStorage keeps blobs as plain files below a root directory.
type LocalStorage struct {
	root     string
	readOnly bool
}

func NewLocalStorage(config LocalStorageConfig) LocalStorage {
	return LocalStorage{
		root:     config.Root,
		readOnly: config.ReadOnly,
	}
}

func (s LocalStorage) Writable() bool {
	return !s.readOnly
}

func (s LocalStorage) Put(ctx context.Context, key string, body io.Reader) error {
	var (
		err  error
		f    *os.File
		name string
	)

	if s.readOnly {
		return ErrReadOnly
	}

	if name, err = s.filename(key); err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("error creating directory for '%s': %w", key, err)
	}

	if f, err = os.Create(name); err != nil {
		return fmt.Errorf("error creating file '%s': %w", name, err)
	}

	defer f.Close()

	if _, err = io.Copy(f, body); err != nil {
		return fmt.Errorf("error writing file '%s': %w", name, err)
	}

	return f.Close()
}

func (s LocalStorage) Get(ctx context.Context, key string) (Object, error) {
	var (
		err  error
		f    *os.File
		info os.FileInfo
		name string
	)

	if name, err = s.filename(key); err != nil {
		return Object{}, err
	}

	if f, err = os.Open(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Object{}, fmt.Errorf("file '%s': %w", key, models.ErrNotFound)
		}

		return Object{}, fmt.Errorf("error opening file '%s': %w", name, err)
	}

	if info, err = f.Stat(); err != nil {
		f.Close()
		return Object{}, fmt.Errorf("error reading file info for '%s': %w", name, err)
	}

	if info.IsDir() {
		f.Close()
		return Object{}, fmt.Errorf("file '%s': %w", key, models.ErrNotFound)
	}

	return Object{
		Body:        f,
		ContentType: contentTypeFor(key),
		Size:        info.Size(),
	}, nil
}

func (s LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	var (
		err  error
		info os.FileInfo
		name string
	)

	if name, err = s.filename(key); err != nil {
		return false, err
	}

	if info, err = os.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("error checking file '%s': %w", name, err)
	}

	return !info.IsDir(), nil
}

func (s LocalStorage) filename(key string) (string, error) {
	cleaned, err := CleanKey(key)

	if err != nil {
		return "", err
	}

	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}
