package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/config"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token    string
	pingErr  error
	loginErr error
	regErr   error
	err      error // returned by record operations

	registered  map[string]string
	items       []models.Medicine
	created     []models.MedicineForm
	updatedID   int64
	updatedForm models.MedicineForm
	deletedID   int64
}

func (f *fakeAPI) Register(ctx context.Context, username string, password []byte) error {
	if f.regErr != nil {
		return f.regErr
	}
	if f.registered == nil {
		f.registered = map[string]string{}
	}
	f.registered[username] = string(password)
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, username string, password []byte) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.token = "tok-" + username
	return f.token, nil
}

func (f *fakeAPI) SetToken(token string)          { f.token = token }
func (f *fakeAPI) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeAPI) List(ctx context.Context) ([]models.Medicine, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeAPI) Create(ctx context.Context, form models.MedicineForm) (*models.Medicine, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, form)
	return &models.Medicine{ID: int64(len(f.created)), DrugName: form.DrugName}, nil
}

func (f *fakeAPI) Update(ctx context.Context, id int64, form models.MedicineForm) (*models.Medicine, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updatedID = id
	f.updatedForm = form
	return &models.Medicine{ID: id, DrugName: form.DrugName}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = id
	return nil
}

// newTestApp builds an App over api reading input and writing to the
// returned buffer. The token file lives in a temp dir.
func newTestApp(t *testing.T, api *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := &config.Config{TokenFile: filepath.Join(t.TempDir(), "token")}
	a, err := newApp(cfg, api, strings.NewReader(input), out)
	require.NoError(t, err)
	return a, out
}

// stubPassword makes getPassword return pw without touching the terminal.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = old })
}

func rdrLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}
