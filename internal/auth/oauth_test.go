package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"markeep/internal/config"
	domainerrors "markeep/internal/errors"
	"markeep/internal/models"
)

// fakeProvider serves a token endpoint and a profile endpoint the way the real
// providers do.
type fakeProvider struct {
	t            *testing.T
	tokenStatus  int
	tokenBody    any
	profileBody  any
	gotForm      map[string]string
	gotBearer    string
	profileDelay time.Duration
}

func (f *fakeProvider) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(f.t, http.MethodPost, r.Method)
		require.NoError(f.t, r.ParseForm())
		f.gotForm = map[string]string{}
		for k := range r.PostForm {
			f.gotForm[k] = r.PostForm.Get(k)
		}
		status := f.tokenStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(f.tokenBody)
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		f.gotBearer = r.Header.Get("Authorization")
		if f.profileDelay > 0 {
			time.Sleep(f.profileDelay)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.profileBody)
	})
	srv := httptest.NewServer(mux)
	f.t.Cleanup(srv.Close)
	return srv
}

func providerConfig(srv *httptest.Server) config.ProviderConfig {
	return config.ProviderConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:3000/callback",
		TokenURL:     srv.URL + "/token",
		ProfileURL:   srv.URL + "/profile",
	}
}

func okToken() map[string]any {
	return map[string]any{"access_token": "provider-access-token", "token_type": "bearer", "expires_in": 3600}
}

func TestGoogleProvider_Exchange_Success(t *testing.T) {
	fake := &fakeProvider{
		t:         t,
		tokenBody: okToken(),
		profileBody: map[string]any{
			"sub": "google-sub-1", "email": "user@gmail.com", "email_verified": true, "name": "Google User",
		},
	}
	srv := fake.server()

	p := NewGoogleProvider(providerConfig(srv), NewHTTPClient(5*time.Second))
	profile, err := p.Exchange(context.Background(), "auth-code", "")
	require.NoError(t, err)

	require.Equal(t, models.ProviderGoogle, profile.Provider)
	require.Equal(t, "google-sub-1", profile.ProviderUserID)
	require.Equal(t, "user@gmail.com", profile.Email)
	require.Equal(t, "Google User", profile.Nickname)

	require.Equal(t, "auth-code", fake.gotForm["code"])
	require.Equal(t, "authorization_code", fake.gotForm["grant_type"])
	require.Equal(t, "client-secret", fake.gotForm["client_secret"])
	require.Equal(t, "http://localhost:3000/callback", fake.gotForm["redirect_uri"])
	require.Equal(t, "Bearer provider-access-token", fake.gotBearer)
}

func TestGoogleProvider_Exchange_Failures(t *testing.T) {
	cases := []struct {
		name    string
		fake    *fakeProvider
		timeout time.Duration
	}{
		{
			name: "token endpoint rejects code",
			fake: &fakeProvider{tokenStatus: http.StatusBadRequest, tokenBody: map[string]any{"error": "invalid_grant"}},
		},
		{
			name: "empty access token",
			fake: &fakeProvider{tokenBody: map[string]any{"token_type": "bearer"}},
		},
		{
			name: "missing email",
			fake: &fakeProvider{tokenBody: okToken(), profileBody: map[string]any{"sub": "s", "name": "n"}},
		},
		{
			name: "unverified email",
			fake: &fakeProvider{tokenBody: okToken(), profileBody: map[string]any{"sub": "s", "email": "a@b.c", "email_verified": false}},
		},
		{
			name: "malformed profile",
			fake: &fakeProvider{tokenBody: okToken(), profileBody: "not an object"},
		},
		{
			name:    "profile endpoint too slow",
			fake:    &fakeProvider{tokenBody: okToken(), profileBody: map[string]any{"sub": "s", "email": "a@b.c"}, profileDelay: 300 * time.Millisecond},
			timeout: 50 * time.Millisecond,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fake.t = t
			srv := tc.fake.server()
			timeout := tc.timeout
			if timeout == 0 {
				timeout = 5 * time.Second
			}

			p := NewGoogleProvider(providerConfig(srv), NewHTTPClient(timeout))
			_, err := p.Exchange(context.Background(), "code", "")
			require.Error(t, err)
			require.ErrorIs(t, err, domainerrors.ErrAuthProvider)
		})
	}
}

func TestNaverProvider_Exchange(t *testing.T) {
	fake := &fakeProvider{
		t:         t,
		tokenBody: map[string]any{"access_token": "naver-token", "token_type": "bearer", "expires_in": "3600"},
		profileBody: map[string]any{
			"resultcode": "00",
			"message":    "success",
			"response":   map[string]any{"id": "naver-id-1", "email": "user@naver.com", "nickname": "", "name": "Naver Name"},
		},
	}
	srv := fake.server()

	p := NewNaverProvider(providerConfig(srv), NewHTTPClient(5*time.Second))
	profile, err := p.Exchange(context.Background(), "code", "state-123")
	require.NoError(t, err)
	require.Equal(t, models.ProviderNaver, profile.Provider)
	require.Equal(t, "user@naver.com", profile.Email)
	require.Equal(t, "Naver Name", profile.Nickname)
	require.Equal(t, "state-123", fake.gotForm["state"])
	require.Equal(t, "Bearer naver-token", fake.gotBearer)
}

func TestNaverProvider_ErrorWithOKStatus(t *testing.T) {
	fake := &fakeProvider{
		t:         t,
		tokenBody: map[string]any{"error": "invalid_request", "error_description": "no valid data in session"},
	}
	srv := fake.server()

	p := NewNaverProvider(providerConfig(srv), NewHTTPClient(5*time.Second))
	_, err := p.Exchange(context.Background(), "code", "state")
	require.ErrorIs(t, err, domainerrors.ErrAuthProvider)
}

func TestNaverProvider_BadResultCode(t *testing.T) {
	fake := &fakeProvider{
		t:           t,
		tokenBody:   okToken(),
		profileBody: map[string]any{"resultcode": "024", "message": "Authentication failed"},
	}
	srv := fake.server()

	p := NewNaverProvider(providerConfig(srv), NewHTTPClient(5*time.Second))
	_, err := p.Exchange(context.Background(), "code", "state")
	require.ErrorIs(t, err, domainerrors.ErrAuthProvider)
}

func TestKakaoProvider_Exchange(t *testing.T) {
	fake := &fakeProvider{
		t:         t,
		tokenBody: okToken(),
		profileBody: map[string]any{
			"id": 987654321,
			"kakao_account": map[string]any{
				"email":             "user@kakao.com",
				"is_email_valid":    true,
				"is_email_verified": true,
				"profile":           map[string]any{"nickname": "kakao-nick"},
			},
		},
	}
	srv := fake.server()

	p := NewKakaoProvider(providerConfig(srv), NewHTTPClient(5*time.Second))
	profile, err := p.Exchange(context.Background(), "code", "")
	require.NoError(t, err)
	require.Equal(t, "987654321", profile.ProviderUserID)
	require.Equal(t, "user@kakao.com", profile.Email)
	require.Equal(t, "kakao-nick", profile.Nickname)
	require.Equal(t, "client-secret", fake.gotForm["client_secret"])
}

func TestKakaoProvider_UnverifiedEmail(t *testing.T) {
	fake := &fakeProvider{
		t:         t,
		tokenBody: okToken(),
		profileBody: map[string]any{
			"id":            1,
			"kakao_account": map[string]any{"email": "user@kakao.com", "is_email_verified": false},
		},
	}
	srv := fake.server()

	p := NewKakaoProvider(providerConfig(srv), NewHTTPClient(5*time.Second))
	_, err := p.Exchange(context.Background(), "code", "")
	require.ErrorIs(t, err, domainerrors.ErrAuthProvider)
}

func TestNewProviders_OnlyConfigured(t *testing.T) {
	providers := NewProviders(config.OAuthConfig{
		Google: config.ProviderConfig{ClientID: "g"},
		Kakao:  config.ProviderConfig{ClientID: "k"},
	}, NewHTTPClient(time.Second))

	require.Len(t, providers, 2)
	require.Contains(t, providers, models.ProviderGoogle)
	require.Contains(t, providers, models.ProviderKakao)
	require.NotContains(t, providers, models.ProviderNaver)
}
