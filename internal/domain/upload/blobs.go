package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// BlobDirectory is the filesystem side of the store.
type BlobDirectory interface {
	EnsureDir(dir string) error
	Write(path string, r io.Reader) (int64, error)
	// Remove deletes path. A missing file is not an error.
	Remove(path string) error
	Exists(path string) (bool, error)
	Open(path string) (afero.File, error)
	// List returns the full paths of the regular files directly inside dir.
	List(dir string) ([]string, error)
}

type blobDirectory struct {
	fs afero.Fs
}

// NewBlobDirectory returns a BlobDirectory over fs. Use afero.NewOsFs() for real disk.
func NewBlobDirectory(fs afero.Fs) BlobDirectory {
	return &blobDirectory{fs: fs}
}

func (b *blobDirectory) EnsureDir(dir string) error {
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (b *blobDirectory) Write(path string, r io.Reader) (int64, error) {
	dst, err := b.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(dst, r)
	if err != nil {
		_ = dst.Close()
		_ = b.fs.Remove(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = b.fs.Remove(path)
		return 0, fmt.Errorf("failed to close file: %w", err)
	}
	return n, nil
}

func (b *blobDirectory) Remove(path string) error {
	exists, err := b.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if err := b.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (b *blobDirectory) Exists(path string) (bool, error) {
	return afero.Exists(b.fs, path)
}

func (b *blobDirectory) Open(path string) (afero.File, error) {
	return b.fs.Open(path)
}

func (b *blobDirectory) List(dir string) ([]string, error) {
	infos, err := afero.ReadDir(b.fs, dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, info.Name()))
	}
	return paths, nil
}
