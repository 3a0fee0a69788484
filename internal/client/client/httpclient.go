package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/models"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/netx"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type envelope struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Token   string           `json:"token"`
	Item    *models.Medicine `json:"item"`
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	body, err := json.Marshal(credentials{Username: username, Password: string(password)})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/register", bytes.NewReader(body), "application/json", nil)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	body, err := json.Marshal(credentials{Username: username, Password: string(password)})
	if err != nil {
		return "", err
	}

	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/api/login", bytes.NewReader(body), "application/json", &resp); err != nil {
		return "", err
	}

	c.SetToken(resp.Token)
	return resp.Token, nil
}

// Ping checks /health; a failing database counts as unavailable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, "", nil)
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Medicine, error) {
	var items []models.Medicine
	if err := c.do(ctx, http.MethodGet, "/api/medicine", nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) Create(ctx context.Context, f models.MedicineForm) (*models.Medicine, error) {
	return c.sendForm(ctx, http.MethodPost, "/api/medicine", f)
}

func (c *HTTPClient) Update(ctx context.Context, id int64, f models.MedicineForm) (*models.Medicine, error) {
	return c.sendForm(ctx, http.MethodPut, "/api/medicine/"+strconv.FormatInt(id, 10), f)
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/medicine/"+strconv.FormatInt(id, 10), nil, "", nil)
}

func (c *HTTPClient) sendForm(ctx context.Context, method, path string, f models.MedicineForm) (*models.Medicine, error) {
	body, contentType, err := netx.MultipartBody(f.Fields(), map[string]string{
		common.FieldProfileImage:  f.ProfileImagePath,
		common.FieldDocumentProof: f.DocumentProofPath,
	})
	if err != nil {
		return nil, err
	}

	var resp envelope
	if err := c.do(ctx, method, path, body, contentType, &resp); err != nil {
		return nil, err
	}
	return resp.Item, nil
}

// do sends one request and decodes a 2xx body into out when out is not nil.
// Transport failures become ErrUnavailable; error envelopes become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var env envelope
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&env); err == nil && env.Error != "" {
		msg = env.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg, kind: kindForStatus(resp.StatusCode)}
}
