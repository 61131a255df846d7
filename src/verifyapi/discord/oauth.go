package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const apiBase = "https://discord.com/api/v10"

// OAuth performs token exchanges against the Discord OAuth2 endpoint.
type OAuth struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	client       *http.Client
}

func NewOAuth(clientID, clientSecret, redirectURI string) *OAuth {
	return &OAuth{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		tokenURL:     apiBase + "/oauth2/token",
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether client credentials are present. Metadata
// publishing is skipped entirely when they are not.
func (o *OAuth) Configured() bool {
	return o.clientID != "" && o.clientSecret != ""
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ExchangeCode trades an authorization code for a user access token. The
// remote error description is surfaced as the error text when present.
func (o *OAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {o.clientID},
		"client_secret": {o.clientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {o.redirectURI},
	}
	return o.token(ctx, form)
}

// ClientCredentialsToken obtains an application-scoped token for writing
// role-connection metadata.
func (o *OAuth) ClientCredentialsToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {o.clientID},
		"client_secret": {o.clientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {"role_connections.write"},
	}
	return o.token(ctx, form)
}

func (o *OAuth) token(ctx context.Context, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var tok tokenResponse
	decodeErr := json.Unmarshal(body, &tok)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && tok.ErrorDescription != "" {
			return "", fmt.Errorf("%s", tok.ErrorDescription)
		}
		return "", fmt.Errorf("oauth token: status %d: %s", resp.StatusCode, body)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("oauth token: decode: %w", decodeErr)
	}
	return tok.AccessToken, nil
}

// BearerUser fetches the authenticated user for a user access token.
func (o *OAuth) BearerUser(accessToken string) (*discordgo.User, error) {
	s, err := discordgo.New("Bearer " + accessToken)
	if err != nil {
		return nil, err
	}
	u, err := s.User("@me")
	if err != nil {
		return nil, fmt.Errorf("fetch user: %s", restDetail(err))
	}
	return u, nil
}
