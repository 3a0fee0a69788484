package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	Backend
	objects map[string]string
	putErr  error
	deleted []string
}

func newMemBackend() *memBackend {
	return &memBackend{objects: map[string]string{}}
}

func (m *memBackend) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if m.putErr != nil {
		return m.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = string(b)
	return nil
}

func (m *memBackend) Get(_ context.Context, key string) (*Object, error) {
	v, ok := m.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &Object{Body: io.NopCloser(strings.NewReader(v)), ContentLength: int64(len(v))}, nil
}

func (m *memBackend) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return nil
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestAttachmentStore_Store_NamesAndPublicPath(t *testing.T) {
	b := newMemBackend()
	s := NewAttachmentStore(b)
	s.now = fixedClock(1700000000123)

	p, err := s.Store(context.Background(), &Upload{Field: common.FieldProfileImage, Filename: "photo.png", Body: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000123-photo.png", p)
	assert.Equal(t, "png", b.objects["1700000000123-photo.png"])
}

func TestAttachmentStore_Store_StripsDirectories(t *testing.T) {
	b := newMemBackend()
	s := NewAttachmentStore(b)
	s.now = fixedClock(5)

	tests := map[string]string{
		"../../etc/passwd":          "/uploads/5-passwd",
		`C:\Users\me\scan.pdf`:      "/uploads/5-scan.pdf",
		"":                          "/uploads/5-file",
		"..":                        "/uploads/5-file",
		"name with spaces (1).jpeg": "/uploads/5-name with spaces (1).jpeg",
	}
	for in, want := range tests {
		got, err := s.Store(context.Background(), &Upload{Filename: in, Body: strings.NewReader("x")})
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestAttachmentStore_Store_BackendError(t *testing.T) {
	b := newMemBackend()
	b.putErr = errors.New("disk full")
	s := NewAttachmentStore(b)

	_, err := s.Store(context.Background(), &Upload{Field: common.FieldDocumentProof, Filename: "a.pdf", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "documentProof")
	assert.Contains(t, err.Error(), "disk full")
}

func TestAttachmentStore_OpenAndRemove(t *testing.T) {
	b := newMemBackend()
	b.objects["1-a.png"] = "data"
	s := NewAttachmentStore(b)
	ctx := context.Background()

	obj, err := s.Open(ctx, "1-a.png")
	require.NoError(t, err)
	_ = obj.Body.Close()

	_, err = s.Open(ctx, "../1-a.png")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.Remove(ctx, "/uploads/1-a.png"))
	assert.Equal(t, []string{"1-a.png"}, b.deleted)

	require.NoError(t, s.Remove(ctx, "https://elsewhere/1-a.png"))
	assert.Len(t, b.deleted, 1, "foreign paths are ignored")
}

func TestKeyFromPublicPath(t *testing.T) {
	key, ok := KeyFromPublicPath("/uploads/17-a.png")
	assert.True(t, ok)
	assert.Equal(t, "17-a.png", key)

	for _, p := range []string{"/uploads/", "/uploads/a/b", "/static/17-a.png", "uploads/17-a.png", "/uploads/.."} {
		_, ok := KeyFromPublicPath(p)
		assert.False(t, ok, p)
	}
	assert.Equal(t, "/uploads/k", PublicPath("k"))
}
