package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hourbox/auth"
	"hourbox/backend"
	"hourbox/backend/httpstore"
	"hourbox/database"
	"hourbox/database/repository"
	"hourbox/server"
	"hourbox/server/store"
	"hourbox/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "server-test-secret"

func setupServer(t *testing.T) *httptest.Server {
	st, err := store.OpenSqlite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ts := httptest.NewServer(server.New(st, secret, 500).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func token(t *testing.T, userId string) string {
	tok, err := auth.GenerateAccessToken(userId, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func request(t *testing.T, method string, url string, bearer string, body string) (*http.Response, map[string]any) {
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestHealth(t *testing.T) {
	ts := setupServer(t)
	resp, body := request(t, http.MethodGet, ts.URL+"/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAuth(t *testing.T) {
	ts := setupServer(t)

	t.Run("MissingHeader", func(t *testing.T) {
		resp, body := request(t, http.MethodGet, ts.URL+"/api/data", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "authorization header required", body["error"])
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		expired, err := auth.GenerateAccessToken("alice", secret, -time.Minute)
		require.NoError(t, err)
		resp, _ := request(t, http.MethodGet, ts.URL+"/api/data", expired, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestData(t *testing.T) {
	ts := setupServer(t)
	alice, bob := token(t, "alice"), token(t, "bob")

	t.Run("NewUserGetsEmptyList", func(t *testing.T) {
		resp, body := request(t, http.MethodGet, ts.URL+"/api/data", alice, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []any{}, body["sessions"])
		assert.Equal(t, 0.0, body["totalHours"])
	})

	t.Run("PutThenGet", func(t *testing.T) {
		payload := `{"sessions":[{"id":"s1","date":"2024-01-15","startTime":"09:00","endTime":"17:30","breakMinutes":30,"category":"Study","netMinutes":480}],"totalHours":1234}`
		resp, body := request(t, http.MethodPut, ts.URL+"/api/data", alice, payload)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])

		resp, body = request(t, http.MethodGet, ts.URL+"/api/data", alice, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["sessions"], 1)
		assert.Equal(t, 8.0, body["totalHours"])

		_, body = request(t, http.MethodGet, ts.URL+"/api/data", bob, "")
		assert.Equal(t, []any{}, body["sessions"])
	})

	t.Run("PostIsAccepted", func(t *testing.T) {
		resp, _ := request(t, http.MethodPost, ts.URL+"/api/data", bob, `{"sessions":[]}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("RejectsMalformedBody", func(t *testing.T) {
		resp, _ := request(t, http.MethodPut, ts.URL+"/api/data", alice, `{"sessions":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp, _ = request(t, http.MethodPut, ts.URL+"/api/data", alice, `{"totalHours":3}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Export", func(t *testing.T) {
		resp, body := request(t, http.MethodGet, ts.URL+"/api/export", alice, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 500.0, body["target"])
		assert.Len(t, body["sessions"], 1)
		assert.NotEmpty(t, body["exportDate"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupServer(t)
	request(t, http.MethodGet, ts.URL+"/health", "", "")
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hourbox_http_requests_total")
}

// Two devices sharing one account through the real client stack.
func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	ts := setupServer(t)
	alice := token(t, "alice")

	newManager := func() *session.Manager {
		db, err := database.NewDB(":memory:")
		require.NoError(t, err)
		require.NoError(t, db.Init(ctx))
		t.Cleanup(func() { db.Close(ctx) })
		remote, err := httpstore.New(ts.URL, alice, 5*time.Second)
		require.NoError(t, err)
		return session.NewManager(repository.NewMetadataRepository(db, 0), remote)
	}

	laptop := newManager()
	assert.Equal(t, session.LOAD_SOURCE_REMOTE, laptop.Load(ctx).Source)
	_, err := laptop.AddSession(ctx, session.Fields{
		Date: "2024-01-15", StartTime: "09:00", EndTime: "17:30", BreakMinutes: 30, Category: "Study",
	})
	require.NoError(t, err)
	assert.True(t, laptop.LastSync().Pushed)

	phone := newManager()
	result := phone.Load(ctx)
	assert.Equal(t, session.LOAD_SOURCE_REMOTE, result.Source)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 8.0, phone.TotalNetHours())

	t.Run("BadTokenIsUnauthorized", func(t *testing.T) {
		remote, err := httpstore.New(ts.URL, "garbage", 5*time.Second)
		require.NoError(t, err)
		_, err = remote.Fetch(ctx)
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
	})
}
