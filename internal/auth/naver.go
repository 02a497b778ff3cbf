package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"markeep/internal/config"
	"markeep/internal/models"
)

const (
	defaultNaverTokenURL   = "https://nid.naver.com/oauth2.0/token"
	defaultNaverProfileURL = "https://openapi.naver.com/v1/nid/me"

	naverResultOK = "00"
)

type NaverProvider struct {
	cfg    config.ProviderConfig
	client *http.Client
}

func NewNaverProvider(cfg config.ProviderConfig, client *http.Client) *NaverProvider {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultNaverTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultNaverProfileURL
	}
	return &NaverProvider{cfg: cfg, client: client}
}

type naverProfileResponse struct {
	ResultCode string `json:"resultcode"`
	Message    string `json:"message"`
	Response   struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Name     string `json:"name"`
	} `json:"response"`
}

func (p *NaverProvider) Name() string { return models.ProviderNaver }

// Exchange requires the state the login was started with; Naver rejects the
// grant without it.
func (p *NaverProvider) Exchange(ctx context.Context, code, state string) (*OAuthProfile, error) {
	tok, err := exchangeToken(ctx, p.client, p.cfg.TokenURL, url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"state":         {state},
		"client_id":     {p.cfg.ClientID},
		"client_secret": {p.cfg.ClientSecret},
	})
	if err != nil {
		return nil, providerError(p.Name(), err)
	}

	var profile naverProfileResponse
	if err := fetchProfile(ctx, p.client, p.cfg.ProfileURL, tok.AccessToken, &profile); err != nil {
		return nil, providerError(p.Name(), err)
	}

	if profile.ResultCode != naverResultOK {
		return nil, providerError(p.Name(), fmt.Errorf("profile result %q: %s", profile.ResultCode, profile.Message))
	}
	if profile.Response.ID == "" {
		return nil, providerError(p.Name(), errors.New("empty id in profile response"))
	}
	if profile.Response.Email == "" {
		return nil, providerError(p.Name(), errors.New("email claim missing"))
	}

	nickname := profile.Response.Nickname
	if nickname == "" {
		nickname = profile.Response.Name
	}

	return &OAuthProfile{
		Provider:       p.Name(),
		ProviderUserID: profile.Response.ID,
		Email:          profile.Response.Email,
		Nickname:       nickname,
	}, nil
}

var _ OAuthProvider = (*NaverProvider)(nil)
