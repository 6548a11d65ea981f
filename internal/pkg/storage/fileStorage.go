package storage

import (
	"io"
	"os"
	"path/filepath"
)

// FileStorage writes compositor outputs under one base directory.
type FileStorage interface {
	Init() error
	Save(name string, data io.Reader) error
	Exists(name string) bool
	Path(name string) string
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

// Init creates the base directory and its parents.
func (s *fileStorage) Init() error {
	return os.MkdirAll(s.basePath, 0755)
}

func (s *fileStorage) Save(name string, data io.Reader) error {
	file, err := os.Create(s.Path(name))
	if err != nil {
		return err
	}

	if _, err = io.Copy(file, data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *fileStorage) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return !os.IsNotExist(err)
}

func (s *fileStorage) Path(name string) string {
	return filepath.Join(s.basePath, name)
}
