package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"markeep/internal/config"
	"markeep/internal/models"
)

const (
	defaultGoogleTokenURL   = "https://oauth2.googleapis.com/token"
	defaultGoogleProfileURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type GoogleProvider struct {
	cfg    config.ProviderConfig
	client *http.Client
}

func NewGoogleProvider(cfg config.ProviderConfig, client *http.Client) *GoogleProvider {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultGoogleTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultGoogleProfileURL
	}
	return &GoogleProvider{cfg: cfg, client: client}
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
}

func (p *GoogleProvider) Name() string { return models.ProviderGoogle }

// Exchange ignores state; Google validates it on the client side.
func (p *GoogleProvider) Exchange(ctx context.Context, code, _ string) (*OAuthProfile, error) {
	tok, err := exchangeToken(ctx, p.client, p.cfg.TokenURL, url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {p.cfg.ClientID},
		"client_secret": {p.cfg.ClientSecret},
		"redirect_uri":  {p.cfg.RedirectURI},
	})
	if err != nil {
		return nil, providerError(p.Name(), err)
	}

	var info googleUserInfo
	if err := fetchProfile(ctx, p.client, p.cfg.ProfileURL, tok.AccessToken, &info); err != nil {
		return nil, providerError(p.Name(), err)
	}

	if info.Sub == "" {
		return nil, providerError(p.Name(), errors.New("empty sub in user info response"))
	}
	if info.Email == "" {
		return nil, providerError(p.Name(), errors.New("email claim missing"))
	}
	if info.EmailVerified != nil && !*info.EmailVerified {
		return nil, providerError(p.Name(), errors.New("email is not verified"))
	}

	return &OAuthProfile{
		Provider:       p.Name(),
		ProviderUserID: info.Sub,
		Email:          info.Email,
		Nickname:       info.Name,
	}, nil
}

var _ OAuthProvider = (*GoogleProvider)(nil)
