package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/config"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/ratelimit"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

func TestNewApp_FailsFastWithoutSecret(t *testing.T) {
	c := defaults()

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key is required")
}

func TestNewApp_UnknownLogBackend(t *testing.T) {
	c := defaults()
	c.SecretKey = "k"
	c.LogBackend = "stdout"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestNewBackend_Local(t *testing.T) {
	c := defaults()
	c.UploadsDir = filepath.Join(t.TempDir(), "up")

	b, err := newBackend(context.Background(), c)
	require.NoError(t, err)
	lb, ok := b.(*storage.LocalBackend)
	require.True(t, ok)
	assert.Equal(t, c.UploadsDir, lb.RootPath)
}

func TestNewLoginLimiter(t *testing.T) {
	c := defaults()
	app := &App{config: c, logger: logging.Discard()}

	l, err := app.newLoginLimiter(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.MemoryLimiter{}, l)

	c.LoginRateLimit = 0
	l, err = app.newLoginLimiter(context.Background())
	require.NoError(t, err)
	assert.IsType(t, ratelimit.Disabled{}, l)
}

func TestCronFunc(t *testing.T) {
	called := false
	cronFunc(func() { called = true }).Run()
	assert.True(t, called)
}
