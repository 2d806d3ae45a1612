package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ideasnet/server/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerAttachment(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(apiclient.VerifyResponse{})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	client.Tokens().SetToken("abc123")

	_, err := client.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestUnauthorizedClearsTokenAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	client.Tokens().SetToken("stale-token")

	hookFired := false
	client.OnUnauthorized = func() { hookFired = true }

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid token", apiErr.Err)

	assert.True(t, hookFired)
	assert.Empty(t, client.Tokens().Token())
}

func TestGetCachingAndInvalidation(t *testing.T) {
	var listHits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/ideas":
			atomic.AddInt32(&listHits, 1)
			json.NewEncoder(w).Encode([]apiclient.Idea{{ID: "1", Title: "Cached"}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/ideas":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(apiclient.Idea{ID: "2", Title: "New"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		}
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	ctx := context.Background()

	// Two reads, one round trip.
	_, err := client.Ideas(ctx, "")
	require.NoError(t, err)
	ideas, err := client.Ideas(ctx, "")
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listHits))

	// A mutation invalidates the list.
	_, err = client.CreateIdea(ctx, apiclient.IdeaInput{Title: "New"})
	require.NoError(t, err)

	_, err = client.Ideas(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&listHits))
}

func TestErrorBodyDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "Missing required fields",
			"message": "Please provide: email",
			"fields":  []string{"email"},
		})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	_, err := client.Register(context.Background(), apiclient.RegisterInput{})
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields", apiErr.Err)
	assert.Equal(t, []string{"email"}, apiErr.Fields)
	assert.Contains(t, apiErr.Error(), "Please provide: email")
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiclient.AuthResponse{
			Message: "Login successful",
			Token:   "fresh-token",
		})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	_, err := client.Login(context.Background(), "a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", client.Tokens().Token())
}
