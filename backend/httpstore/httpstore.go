package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hourbox/backend"
	"hourbox/config"
	L "hourbox/logger"
	"hourbox/session"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DATA_PATH   = "/api/data"
	EXPORT_PATH = "/api/export"
	HEALTH_PATH = "/health"
)

// Store talks to the remote session store over HTTP. The bearer token is
// attached by an oauth2 transport and never refreshed; an expired token
// surfaces as backend.ErrUnauthorized.
type Store struct {
	client   *http.Client
	baseURL  string
	hasToken bool
}

type errorBody struct {
	Error string `json:"error"`
}

type pushResponse struct {
	Success bool `json:"success"`
}

func New(baseURL string, token string, timeout time.Duration) (*Store, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("httpstore: invalid remote url %q", baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("httpstore: unsupported scheme %s", u.Scheme)
	}
	client := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	client.Timeout = timeout
	return &Store{
		client:   client,
		baseURL:  strings.TrimRight(u.String(), "/"),
		hasToken: token != "",
	}, nil
}

func NewFromConfig(c *config.Config) (*Store, error) {
	if c.Remote == nil || !c.Remote.Enabled {
		return nil, fmt.Errorf("httpstore: remote is not enabled")
	}
	L.Debug(fmt.Sprintf("config::Remote::URL %s", c.Remote.URL))
	L.Debug(fmt.Sprintf("config::Remote::TimeoutSeconds %d", c.Remote.TimeoutSeconds))
	return New(c.Remote.URL, c.Remote.Token, time.Duration(c.Remote.TimeoutSeconds)*time.Second)
}

func (s *Store) Fetch(ctx context.Context) (*session.Document, error) {
	var doc session.Document
	err := s.getJSON(ctx, "fetch", DATA_PATH, &doc)
	if err != nil {
		return nil, err
	}
	if doc.Sessions == nil {
		doc.Sessions = []session.Session{}
	}
	return &doc, nil
}

func (s *Store) Push(ctx context.Context, doc *session.Document) error {
	if !s.hasToken {
		return fmt.Errorf("push: no token configured: %w", backend.ErrUnauthorized)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("push: could not encode sessions: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+DATA_PATH, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push: could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	bodyBytes, err := s.do(req, "push")
	if err != nil {
		return err
	}
	var res pushResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil || !res.Success {
		return fmt.Errorf("push: remote did not acknowledge the write: %w", backend.ErrUnavailable)
	}
	return nil
}

// Export fetches the server side snapshot of the user's sessions.
func (s *Store) Export(ctx context.Context) (*session.Snapshot, error) {
	var snapshot session.Snapshot
	err := s.getJSON(ctx, "export", EXPORT_PATH, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Health checks that the server answers, no token needed.
func (s *Store) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+HEALTH_PATH, nil)
	if err != nil {
		return fmt.Errorf("health: could not create request: %w", err)
	}
	resp, err := (&http.Client{Timeout: s.client.Timeout}).Do(req)
	if err != nil {
		return fmt.Errorf("health: %w: %w", backend.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &backend.StatusError{Op: "health", StatusCode: resp.StatusCode}
	}
	return nil
}

func (s *Store) getJSON(ctx context.Context, op string, path string, out any) error {
	if !s.hasToken {
		return fmt.Errorf("%s: no token configured: %w", op, backend.ErrUnauthorized)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: could not create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	bodyBytes, err := s.do(req, op)
	if err != nil {
		return err
	}
	err = json.Unmarshal(bodyBytes, out)
	if err != nil {
		return fmt.Errorf("%s: malformed response: %w: %w", op, backend.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) do(req *http.Request, op string) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, backend.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if L.IsVerbose() {
		L.Debug(L.HttpResponseString(resp))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: could not read response: %w: %w", op, backend.ErrUnavailable, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return bodyBytes, nil
	}

	statusErr := &backend.StatusError{Op: op, StatusCode: resp.StatusCode}
	var eb errorBody
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && json.Unmarshal(bodyBytes, &eb) == nil {
		statusErr.Message = eb.Error
	}
	return nil, statusErr
}
