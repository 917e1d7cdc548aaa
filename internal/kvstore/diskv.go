package kvstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

type diskvStore struct {
	d *diskv.Diskv
}

// NewDiskv opens a diskv-backed [Store] rooted at basePath, creating the
// directory if needed. Each key maps to one file under basePath.
func NewDiskv(basePath string) (Store, error) {
	if basePath == "" {
		return nil, fmt.Errorf("kvstore: empty base path")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("kvstore: create base path: %w", err)
	}

	return &diskvStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (s *diskvStore) Get(key string) (string, bool, error) {
	value, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kvstore: read %q: %w", key, err)
	}
	return string(value), true, nil
}

func (s *diskvStore) Set(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("kvstore: write %q: %w", key, err)
	}
	return nil
}

func (s *diskvStore) Delete(key string) error {
	err := s.d.Erase(key)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("kvstore: erase %q: %w", key, err)
	}
	return nil
}
