package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem. Intended for
// development and tests.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}

	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, reader io.Reader, contentType string, p UploadParams) (*UploadResult, error) {
	publicID := resolvePublicID(p)
	key := objectKey(p.Kind, publicID)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if !p.Overwrite {
		if _, err := os.Stat(fullPath); err == nil {
			return nil, fmt.Errorf("object already exists: %s", key)
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		SecureURL: s.baseURL + "/" + key,
		PublicID:  publicID,
	}, nil
}

func (s *LocalStorage) Destroy(ctx context.Context, publicID string, kind Kind) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(objectKey(kind, publicID)))

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return ErrObjectNotFound
	}

	return os.Remove(fullPath)
}
