package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"markeep/internal/config"
	"markeep/internal/models"
)

const (
	defaultKakaoTokenURL   = "https://kauth.kakao.com/oauth/token"
	defaultKakaoProfileURL = "https://kapi.kakao.com/v2/user/me"
)

type KakaoProvider struct {
	cfg    config.ProviderConfig
	client *http.Client
}

func NewKakaoProvider(cfg config.ProviderConfig, client *http.Client) *KakaoProvider {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultKakaoTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultKakaoProfileURL
	}
	return &KakaoProvider{cfg: cfg, client: client}
}

type kakaoUserResponse struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email           string `json:"email"`
		IsEmailValid    *bool  `json:"is_email_valid"`
		IsEmailVerified *bool  `json:"is_email_verified"`
		Profile         struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
	Properties struct {
		Nickname string `json:"nickname"`
	} `json:"properties"`
}

func (p *KakaoProvider) Name() string { return models.ProviderKakao }

func (p *KakaoProvider) Exchange(ctx context.Context, code, _ string) (*OAuthProfile, error) {
	form := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"client_id":    {p.cfg.ClientID},
		"redirect_uri": {p.cfg.RedirectURI},
	}
	// The client secret is optional for Kakao apps.
	if p.cfg.ClientSecret != "" {
		form.Set("client_secret", p.cfg.ClientSecret)
	}

	tok, err := exchangeToken(ctx, p.client, p.cfg.TokenURL, form)
	if err != nil {
		return nil, providerError(p.Name(), err)
	}

	var user kakaoUserResponse
	if err := fetchProfile(ctx, p.client, p.cfg.ProfileURL, tok.AccessToken, &user); err != nil {
		return nil, providerError(p.Name(), err)
	}

	account := user.KakaoAccount
	if user.ID == 0 {
		return nil, providerError(p.Name(), errors.New("empty id in user response"))
	}
	if account.Email == "" {
		return nil, providerError(p.Name(), errors.New("email claim missing"))
	}
	if (account.IsEmailValid != nil && !*account.IsEmailValid) ||
		(account.IsEmailVerified != nil && !*account.IsEmailVerified) {
		return nil, providerError(p.Name(), errors.New("email is not verified"))
	}

	nickname := account.Profile.Nickname
	if nickname == "" {
		nickname = user.Properties.Nickname
	}

	return &OAuthProfile{
		Provider:       p.Name(),
		ProviderUserID: strconv.FormatInt(user.ID, 10),
		Email:          account.Email,
		Nickname:       nickname,
	}, nil
}

var _ OAuthProvider = (*KakaoProvider)(nil)
