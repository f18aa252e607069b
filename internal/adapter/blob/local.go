// Package blob implements the blob-store collaborator on the local
// filesystem. Stored files are served under the /uploads URL prefix and
// referenced by their relative URL in entity records.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time check: LocalStore implements domain.BlobStore.
var _ domain.BlobStore = (*LocalStore)(nil)

// URLPrefix is the public path under which stored blobs are served.
const URLPrefix = "/uploads"

// LocalStore writes uploads to a directory with random file names,
// keeping only the original extension.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a
// ready store.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory blobs are written to, for static serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save persists the file under a random name and returns its public
// reference, e.g. "/uploads/3d9c....jpg".
func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing blob file: %w", err)
	}

	return URLPrefix + "/" + name, nil
}
