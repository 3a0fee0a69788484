package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
)

// Upload is one file received in a multipart request.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachmentStore names uploaded files "<unixMillis>-<originalName>", writes
// them to a Backend and hands back their public path.
type AttachmentStore struct {
	backend Backend
	now     func() time.Time
}

func NewAttachmentStore(b Backend) *AttachmentStore {
	return &AttachmentStore{backend: b, now: time.Now}
}

// Backend exposes the underlying backend.
func (s *AttachmentStore) Backend() Backend {
	return s.backend
}

// Store writes u and returns "/uploads/<unixMillis>-<originalName>".
// Two uploads with the same name in the same millisecond share a key and the
// later one wins.
func (s *AttachmentStore) Store(ctx context.Context, u *Upload) (string, error) {
	key := fmt.Sprintf("%d-%s", s.now().UnixMilli(), baseName(u.Filename))

	if err := s.backend.Put(ctx, key, u.Body, u.Size, u.ContentType); err != nil {
		return "", fmt.Errorf("store %s: %w", u.Field, err)
	}
	return PublicPath(key), nil
}

// Open returns the object behind a key taken from an /uploads URL.
func (s *AttachmentStore) Open(ctx context.Context, key string) (*Object, error) {
	if !ValidKey(key) {
		return nil, common.ErrorNotFound
	}
	return s.backend.Get(ctx, key)
}

// Remove deletes the object behind a public path. Paths outside /uploads
// are ignored.
func (s *AttachmentStore) Remove(ctx context.Context, publicPath string) error {
	key, ok := KeyFromPublicPath(publicPath)
	if !ok {
		return nil
	}
	return s.backend.Delete(ctx, key)
}

// PublicPath maps a storage key to the URL path it is served under.
func PublicPath(key string) string {
	return common.UploadsURLPrefix + "/" + key
}

// KeyFromPublicPath is the inverse of PublicPath.
func KeyFromPublicPath(p string) (string, bool) {
	key, ok := strings.CutPrefix(p, common.UploadsURLPrefix+"/")
	if !ok || !ValidKey(key) {
		return "", false
	}
	return key, true
}

// ValidKey reports whether key is a single flat file name.
func ValidKey(key string) bool {
	return key != "" && key != "." && key != ".." &&
		!strings.ContainsAny(key, `/\`) && !strings.ContainsRune(key, 0)
}

// baseName strips any directory part a client put into the file name.
func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "file"
	}
	return name
}
