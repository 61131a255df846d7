package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOAuth(tokenURL string) *OAuth {
	o := NewOAuth("client-id", "client-secret", "https://example.com/verify-options")
	o.tokenURL = tokenURL
	return o
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostFormValue("grant_type"))
		assert.Equal(t, "client-id", r.PostFormValue("client_id"))
		assert.Equal(t, "the-code", r.PostFormValue("code"))
		assert.Equal(t, "https://example.com/verify-options", r.PostFormValue("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok123","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	tok, err := testOAuth(srv.URL).ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok)
}

func TestExchangeCodeSurfacesErrorDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid \"code\" in request."}`))
	}))
	defer srv.Close()

	_, err := testOAuth(srv.URL).ExchangeCode(context.Background(), "bad")
	require.Error(t, err)
	assert.Equal(t, `Invalid "code" in request.`, err.Error())
}

func TestExchangeCodeNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	_, err := testOAuth(srv.URL).ExchangeCode(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream broke")
}

func TestClientCredentialsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostFormValue("grant_type"))
		assert.Equal(t, "role_connections.write", r.PostFormValue("scope"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"app-tok","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	tok, err := testOAuth(srv.URL).ClientCredentialsToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "app-tok", tok)
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewOAuth("id", "secret", "").Configured())
	assert.False(t, NewOAuth("", "", "").Configured())
	assert.False(t, NewOAuth("id", "", "").Configured())
}
