package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/filex"
)

// LocalBackend keeps objects as plain files directly under RootPath.
type LocalBackend struct {
	RootPath string
}

// NewLocalBackend creates root if needed and returns a backend rooted there.
func NewLocalBackend(root string) (*LocalBackend, error) {
	dir, err := filex.EnsureDir(root)
	if err != nil {
		return nil, err
	}
	return &LocalBackend{RootPath: dir}, nil
}

func (l *LocalBackend) path(key string) (string, error) {
	if !ValidKey(key) {
		return "", fmt.Errorf("invalid key %q: %w", key, common.ErrorNotFound)
	}
	return filepath.Join(l.RootPath, key), nil
}

func (l *LocalBackend) Put(ctx context.Context, key string, body io.Reader, _ int64, _ string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func (l *LocalBackend) Get(ctx context.Context, key string) (*Object, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, common.ErrorNotFound
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Body:          f,
		ContentLength: stat.Size(),
		ContentType:   contentType,
		LastModified:  stat.ModTime(),
	}, nil
}

func (l *LocalBackend) Delete(ctx context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *LocalBackend) List(ctx context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(l.RootPath)
	if err != nil {
		return nil, err
	}

	var objects []ObjectInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		objects = append(objects, ObjectInfo{Key: e.Name(), Size: info.Size(), LastModified: info.ModTime()})
	}
	return objects, nil
}
