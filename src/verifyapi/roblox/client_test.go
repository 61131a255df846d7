package roblox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/1001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 1001,
			"name": "siph",
			"displayName": "Sip",
			"description": "verify: ab12cd34",
			"created": "2020-01-01T00:00:00Z"
		}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).User(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), p.ID)
	assert.Equal(t, "siph", p.Name)
	assert.Equal(t, "Sip", p.DisplayName)
	assert.Equal(t, "verify: ab12cd34", p.Description)
	assert.Equal(t, "2020-01-01T00:00:00Z", p.Created)
}

func TestUserNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"code":3,"message":"The user id is invalid."}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).User(context.Background(), "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "invalid")
}

func TestUserRawPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errors":[{"code":9,"message":"Too many requests"}]}`))
	}))
	defer srv.Close()

	status, body, err := NewClient(srv.URL).UserRaw(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, string(body), "Too many requests")
}
