package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/taskroom/internal/domain"
)

// PublicPrefix is the URL path uploaded attachments are served under.
const PublicPrefix = "/uploads"

var ErrNotManaged = errors.New("path is not inside the upload store")

// LocalStore keeps attachments on the local disk, one generated file name per
// upload, and hands out public paths under PublicPrefix. It mirrors the
// deployment the application always had: a single process owning a single
// uploads directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save streams the upload to disk under a generated name (the original file
// name is kept only as metadata) and returns the attachment descriptor.
func (s *LocalStore) Save(fileName, contentType string, r io.Reader) (*domain.Attachment, error) {
	stored := uuid.New().String() + filepath.Ext(fileName)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write upload: %w", err)
	}

	return &domain.Attachment{
		FileName:    fileName,
		FilePath:    PublicPrefix + "/" + stored,
		ContentType: contentType,
	}, nil
}

// Remove deletes a stored file by its public path. A missing file is not an
// error; a path outside the store is refused.
func (s *LocalStore) Remove(filePath string) error {
	rel, ok := strings.CutPrefix(filePath, PublicPrefix+"/")
	if !ok || strings.Contains(rel, "/") || strings.Contains(rel, "..") {
		return ErrNotManaged
	}

	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
