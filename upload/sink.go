package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrUpload wraps any failure to persist an attached file.
var ErrUpload = errors.New("upload failure")

// Sink stores at most one attachment per booking under a single directory,
// producing the file path before the database row that references it exists.
type Sink struct {
	Dir string
}

func NewSink(dir string) *Sink {
	return &Sink{Dir: dir}
}

// EnsureDir creates the upload directory if it is absent.
func (s *Sink) EnsureDir() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: create upload dir %s: %v", ErrUpload, s.Dir, err)
	}
	return nil
}

// PathFor builds the storage path for an uploaded file: the ingestion
// timestamp in milliseconds prefixed to the original base name, so two
// uploads with the same name do not collide under normal cadence.
func (s *Sink) PathFor(originalName string) string {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalName))
	return filepath.Join(s.Dir, name)
}

// Store persists one multipart file and returns its path. The caller must
// not reference the path anywhere durable unless Store succeeded.
func (s *Sink) Store(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	path := s.PathFor(file.Filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("%w: save %s: %v", ErrUpload, file.Filename, err)
	}
	return path, nil
}

// Remove deletes a stored attachment. Used to clean up when the database
// insert fails after the file already landed; best effort, a missing file
// is not an error.
func (s *Sink) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", ErrUpload, path, err)
	}
	return nil
}
