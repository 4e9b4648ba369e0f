package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RygelGasparTheOG/rycord/internal/models"
)

const metaSuffix = ".meta"

// BlobStore holds uploaded payloads, one file per id, with a JSON sidecar
// carrying the mime type and original file name.
type BlobStore interface {
	Save(id string, content []byte, meta models.FileMetadata) error
	Get(id string) ([]byte, error)
	// Meta returns the sidecar for an id. A missing or unreadable sidecar
	// is reported as an error so callers can fall back to a default type.
	Meta(id string) (models.FileMetadata, error)
	Exists(id string) bool
	// Delete removes the payload and its sidecar. Absence is not an error.
	Delete(id string) error
}

// LocalBlobStore implements BlobStore on the local filesystem.
type LocalBlobStore struct {
	baseDir string
}

func NewLocalBlobStore(baseDir string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("creating files dir: %w", err)
	}
	return &LocalBlobStore{baseDir: baseDir}, nil
}

func (s *LocalBlobStore) path(id string) string {
	// file ids are caller-supplied opaque tokens; strip any path components
	return filepath.Join(s.baseDir, filepath.Base(id))
}

func (s *LocalBlobStore) Save(id string, content []byte, meta models.FileMetadata) error {
	if err := os.WriteFile(s.path(id), content, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", id, err)
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata for %s: %w", id, err)
	}
	if err := os.WriteFile(s.path(id)+metaSuffix, metaBytes, 0644); err != nil {
		return fmt.Errorf("writing metadata for %s: %w", id, err)
	}
	return nil
}

func (s *LocalBlobStore) Get(id string) ([]byte, error) {
	return os.ReadFile(s.path(id))
}

func (s *LocalBlobStore) Meta(id string) (models.FileMetadata, error) {
	var meta models.FileMetadata
	data, err := os.ReadFile(s.path(id) + metaSuffix)
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

func (s *LocalBlobStore) Exists(id string) bool {
	_, err := os.Stat(s.path(id))
	return err == nil
}

func (s *LocalBlobStore) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file %s: %w", id, err)
	}
	if err := os.Remove(s.path(id) + metaSuffix); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing metadata for %s: %w", id, err)
	}
	return nil
}
