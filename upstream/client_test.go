package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, "test-token", 5*time.Second), srv
}

func TestGet_UnwrapsEnvelopeData(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "OK",
			"data":    map[string]any{"name": "algebra"},
		})
	})
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	err := client.Get(context.Background(), "/courses/1", map[string]string{"page": "5"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "algebra", out.Name)
}

func TestGet_EnvelopeFalseStatusIsError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Course not found!",
		})
	})
	defer srv.Close()

	var out map[string]any
	err := client.Get(context.Background(), "/courses/999", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Course not found!")
}

func TestDelete_EnvelopeFalseStatusIsError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Cannot delete!",
		})
	})
	defer srv.Close()

	err := client.Delete(context.Background(), "/notifications/3", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot delete!")
}

func TestHTTPErrorStatusIsError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	var out map[string]any
	err := client.Get(context.Background(), "/notifications", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNullDataLeavesOutUntouched(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Deleted!",
			"data":    nil,
		})
	})
	defer srv.Close()

	out := []string{"sentinel"}
	err := client.Get(context.Background(), "/notifications", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"sentinel"}, out)
}

func TestPost_SendsBodyAndDecodes(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["content"])
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"id": 12},
		})
	})
	defer srv.Close()

	var out struct {
		ID uint `json:"id"`
	}
	err := client.Post(context.Background(), "/notifications/send", map[string]string{"content": "hello"}, &out)
	require.NoError(t, err)
	assert.Equal(t, uint(12), out.ID)
}

func TestSetToken_ReplacesBearer(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer rotated", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"status": true})
	})
	defer srv.Close()

	client.SetToken("rotated")
	err := client.Get(context.Background(), "/health", nil, nil)
	require.NoError(t, err)
}
