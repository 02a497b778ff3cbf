package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"markeep/internal/config"
	domainerrors "markeep/internal/errors"
	"markeep/internal/models"
)

// Provider responses larger than this are treated as malformed.
const maxProviderResponseBytes = 1 << 20

// OAuthProfile is the identity an OAuth provider vouches for.
type OAuthProfile struct {
	Provider       string
	ProviderUserID string
	Email          string
	Nickname       string
}

// OAuthProvider exchanges an authorization code for the signed-in user's
// profile. Implementations return *domainerrors.Error with CodeAuthProvider on
// any failure.
type OAuthProvider interface {
	Name() string
	Exchange(ctx context.Context, code, state string) (*OAuthProfile, error)
}

// NewHTTPClient returns the client used for every provider call. The timeout
// bounds the whole exchange, including reading the body.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewProviders builds the providers that have a client id configured.
func NewProviders(cfg config.OAuthConfig, client *http.Client) map[string]OAuthProvider {
	providers := make(map[string]OAuthProvider)
	if cfg.Google.ClientID != "" {
		providers[models.ProviderGoogle] = NewGoogleProvider(cfg.Google, client)
	}
	if cfg.Naver.ClientID != "" {
		providers[models.ProviderNaver] = NewNaverProvider(cfg.Naver, client)
	}
	if cfg.Kakao.ClientID != "" {
		providers[models.ProviderKakao] = NewKakaoProvider(cfg.Kakao, client)
	}
	return providers
}

// tokenResponse covers the fields the three providers share.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        any    `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func exchangeToken(ctx context.Context, client *http.Client, endpoint string, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	var tok tokenResponse
	if err := doJSON(client, req, &tok); err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	// Naver reports grant errors with a 200 status.
	if tok.Error != "" {
		return nil, fmt.Errorf("token exchange rejected: %s: %s", tok.Error, tok.ErrorDescription)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("empty access token in response")
	}

	return &tok, nil
}

func fetchProfile(ctx context.Context, client *http.Client, endpoint, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	if err := doJSON(client, req, out); err != nil {
		return fmt.Errorf("profile fetch: %w", err)
	}
	return nil
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func providerError(provider string, err error) error {
	return domainerrors.AuthProvider(provider, err)
}
