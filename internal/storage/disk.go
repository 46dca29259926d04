// Package storage is the binary asset collaborator. Callers only keep the
// returned reference URL; retrieval happens through the static /uploads
// route.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists an uploaded file and returns a publicly retrievable
// reference for it.
type Store interface {
	Save(data []byte, field, originalName string) (string, error)
}

// DiskStore writes uploads to a local directory. Field name and a random id
// form the file name so concurrent uploads never collide.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (d *DiskStore) Save(data []byte, field, originalName string) (string, error) {
	name := field + "-" + uuid.NewString() + filepath.Ext(originalName)
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return d.baseURL + "/uploads/" + name, nil
}
