package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalBackend {
	t.Helper()
	b, err := NewLocalBackend(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return b
}

func TestLocalBackend_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	b := newLocal(t)

	require.NoError(t, b.Put(ctx, "1700000000000-scan.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf"))

	obj, err := b.Get(ctx, "1700000000000-scan.pdf")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, int64(8), obj.ContentLength)
	assert.Equal(t, "application/pdf", obj.ContentType)

	require.NoError(t, b.Delete(ctx, "1700000000000-scan.pdf"))
	_, err = b.Get(ctx, "1700000000000-scan.pdf")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// deleting again is fine
	require.NoError(t, b.Delete(ctx, "1700000000000-scan.pdf"))
}

func TestLocalBackend_UnknownExtensionIsOctetStream(t *testing.T) {
	ctx := context.Background()
	b := newLocal(t)

	require.NoError(t, b.Put(ctx, "1-blob.zzz", strings.NewReader("x"), 1, ""))
	obj, err := b.Get(ctx, "1-blob.zzz")
	require.NoError(t, err)
	defer obj.Body.Close()
	assert.Equal(t, "application/octet-stream", obj.ContentType)
}

func TestLocalBackend_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	b := newLocal(t)

	for _, key := range []string{"../escape", "a/b", "..", "", `a\b`} {
		err := b.Put(ctx, key, strings.NewReader("x"), 1, "")
		assert.Error(t, err, key)
		_, err = b.Get(ctx, key)
		assert.ErrorIs(t, err, common.ErrorNotFound, key)
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(b.RootPath), "escape"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalBackend_List(t *testing.T) {
	ctx := context.Background()
	b := newLocal(t)

	require.NoError(t, b.Put(ctx, "1-a.png", strings.NewReader("aa"), 2, ""))
	require.NoError(t, b.Put(ctx, "2-b.pdf", strings.NewReader("bbb"), 3, ""))
	require.NoError(t, os.Mkdir(filepath.Join(b.RootPath, "subdir"), 0o750))

	objs, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, objs, 2)

	sizes := map[string]int64{}
	for _, o := range objs {
		sizes[o.Key] = o.Size
		assert.False(t, o.LastModified.IsZero())
	}
	assert.Equal(t, map[string]int64{"1-a.png": 2, "2-b.pdf": 3}, sizes)
}

func TestLocalBackend_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	b := newLocal(t)

	require.NoError(t, b.Put(ctx, "1-a.txt", strings.NewReader("first-long"), 0, ""))
	require.NoError(t, b.Put(ctx, "1-a.txt", strings.NewReader("second"), 0, ""))

	data, err := os.ReadFile(filepath.Join(b.RootPath, "1-a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
