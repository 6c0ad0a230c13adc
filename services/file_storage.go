package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// UploadedFile is a file received from a client, detached from the
// transport that carried it.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// FileStorage persists uploaded files and returns the path to store in the
// database. Delete of an empty or unknown path is a no-op.
type FileStorage interface {
	Store(ctx context.Context, file UploadedFile, namespace string) (string, error)
	Delete(ctx context.Context, path string) error
}

// objectKey builds "<namespace>/<slug>-<uuid><ext>" from the client name.
func objectKey(namespace, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		name = "file"
	}
	if len(name) > 60 {
		name = name[:60]
	}
	return path.Join(namespace, fmt.Sprintf("%s-%s%s", name, uuid.NewString(), ext))
}

// LocalFileStorage writes files below Root on the local disk.
type LocalFileStorage struct {
	Root string
}

func NewLocalFileStorage(root string) *LocalFileStorage {
	if strings.TrimSpace(root) == "" {
		root = "uploads"
	}
	return &LocalFileStorage{Root: root}
}

func (s *LocalFileStorage) resolve(key string) (string, error) {
	cleaned := path.Clean("/" + key)
	if cleaned == "/" {
		return "", errors.New("empty path")
	}
	return filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

func (s *LocalFileStorage) Store(_ context.Context, file UploadedFile, namespace string) (string, error) {
	key := objectKey(namespace, file.Name)
	full, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	out, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, file.Reader); err != nil {
		out.Close()
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return key, nil
}

func (s *LocalFileStorage) Delete(_ context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	full, err := s.resolve(key)
	if err != nil {
		return nil
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
