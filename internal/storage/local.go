// Package storage defines the asset-store boundary and a local-disk implementation.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store accepts a binary upload and returns a durable reference URL.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

// LocalStore writes assets under a root directory and serves them from /media.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Put stores the upload under a generated name and returns its reference URL.
// The original name only contributes its extension.
func (s *LocalStore) Put(_ context.Context, name string, r io.Reader) (string, error) {
	stored := uuid.NewString() + filepath.Ext(name)
	path := filepath.Join(s.root, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write asset file: %w", err)
	}
	return "/media/" + stored, nil
}

// Root returns the directory assets are stored under.
func (s *LocalStore) Root() string {
	return s.root
}
