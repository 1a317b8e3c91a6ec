package httpstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hourbox/backend"
	"hourbox/config"
	"hourbox/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("InvalidURL", func(t *testing.T) {
		_, err := New("not a url", "tok", time.Second)
		assert.Error(t, err)
	})

	t.Run("UnsupportedScheme", func(t *testing.T) {
		_, err := New("ftp://example.test", "tok", time.Second)
		assert.Error(t, err)
	})

	t.Run("FromConfigDisabled", func(t *testing.T) {
		_, err := NewFromConfig(&config.Config{Remote: &config.Remote{Enabled: false}})
		assert.Error(t, err)
	})

	t.Run("FromConfig", func(t *testing.T) {
		store, err := NewFromConfig(&config.Config{Remote: &config.Remote{
			Enabled: true, URL: "http://example.test/", Token: "tok", TimeoutSeconds: 2,
		}})
		require.NoError(t, err)
		assert.Equal(t, "http://example.test", store.baseURL)
		assert.Equal(t, 2*time.Second, store.client.Timeout)
	})
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsBearerAndDecodes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, DATA_PATH, r.URL.Path)
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"sessions":[{"id":"a","date":"2024-03-01","startTime":"09:00","endTime":"10:00","breakMinutes":0,"category":"coding","netMinutes":60}],"totalHours":1}`)
		}))
		defer server.Close()

		store, err := New(server.URL, "secret-token", time.Second)
		require.NoError(t, err)
		doc, err := store.Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, doc.Sessions, 1)
		assert.Equal(t, "a", doc.Sessions[0].Id)
		assert.Equal(t, float64(1), doc.TotalHours)
	})

	t.Run("NullSessionsBecomeEmpty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"sessions":null,"totalHours":0}`)
		}))
		defer server.Close()

		store, _ := New(server.URL, "tok", time.Second)
		doc, err := store.Fetch(ctx)
		require.NoError(t, err)
		assert.NotNil(t, doc.Sessions)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"invalid or expired token"}`)
		}))
		defer server.Close()

		store, _ := New(server.URL, "expired", time.Second)
		_, err := store.Fetch(ctx)
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
		var statusErr *backend.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "invalid or expired token", statusErr.Message)
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		store, _ := New(server.URL, "tok", time.Second)
		_, err := store.Fetch(ctx)
		assert.ErrorIs(t, err, backend.ErrUnavailable)
		assert.NotErrorIs(t, err, backend.ErrUnauthorized)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `<html>`)
		}))
		defer server.Close()

		store, _ := New(server.URL, "tok", time.Second)
		_, err := store.Fetch(ctx)
		assert.ErrorIs(t, err, backend.ErrUnavailable)
	})

	t.Run("NetworkError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		store, _ := New(url, "tok", time.Second)
		_, err := store.Fetch(ctx)
		assert.ErrorIs(t, err, backend.ErrUnavailable)
	})

	t.Run("MissingTokenSkipsRequest", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		store, _ := New(server.URL, "", time.Second)
		_, err := store.Fetch(ctx)
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestPush(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var doc session.Document
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
			assert.Len(t, doc.Sessions, 1)
			assert.Equal(t, 7.5, doc.TotalHours)
			io.WriteString(w, `{"success":true}`)
		}))
		defer server.Close()

		store, _ := New(server.URL, "tok", time.Second)
		err := store.Push(ctx, session.NewDocument([]session.Session{{Id: "a", NetMinutes: 450}}))
		assert.NoError(t, err)
	})

	t.Run("NotAcknowledged", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"success":false}`)
		}))
		defer server.Close()

		store, _ := New(server.URL, "tok", time.Second)
		err := store.Push(ctx, session.NewDocument(nil))
		assert.ErrorIs(t, err, backend.ErrUnavailable)
	})

	t.Run("Forbidden", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		store, _ := New(server.URL, "tok", time.Second)
		err := store.Push(ctx, session.NewDocument(nil))
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
	})
}

func TestExportAndHealth(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EXPORT_PATH:
			io.WriteString(w, `{"exportDate":"2024-03-02T10:00:00Z","target":500,"sessions":[]}`)
		case HEALTH_PATH:
			assert.Empty(t, r.Header.Get("Authorization"))
			io.WriteString(w, `{"status":"ok"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store, _ := New(server.URL, "tok", time.Second)
	snapshot, err := store.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(500), snapshot.Target)
	assert.NoError(t, store.Health(ctx))
}
