package cli

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/filex"
)

// tokenStore keeps the access token in a user-only file.
type tokenStore struct {
	path string
}

// Load returns the cached token, or "" when there is none.
func (s *tokenStore) Load() (string, error) {
	if s.path == "" {
		return "", nil
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *tokenStore) Save(token string) error {
	if s.path == "" {
		return nil
	}
	return filex.WriteFileAtomic(s.path, []byte(token), 0o600)
}

func (s *tokenStore) Clear() error {
	if s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
