package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"markeep/internal/auth"
	"markeep/internal/mail"
)

// 1x1 transparent PNG.
var tinyPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("login")

	resp := env.signUp(t, email, "password123")
	require.NotZero(t, resp.ID)
	require.Equal(t, email, resp.Email)
	require.Equal(t, "nick", resp.Nickname)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.True(t, resp.RefreshTokenExpiresAt.After(resp.AccessTokenExpiresAt))
}

func TestLoginHandler_FailuresLookTheSame(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("same")
	env.signUp(t, email, "password123")

	wrongPassword := env.do(t, http.MethodPost, "/user/login", LoginRequest{Email: email, Password: "nope-nope"}, "")
	unknownEmail := env.do(t, http.MethodPost, "/user/login", LoginRequest{Email: uniqueEmail("ghost"), Password: "nope-nope"}, "")

	a := requireError(t, wrongPassword, http.StatusBadRequest, "INVALID_CREDENTIALS")
	b := requireError(t, unknownEmail, http.StatusBadRequest, "INVALID_CREDENTIALS")
	require.Equal(t, a, b)
}

func TestLoginHandler_Validation(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/user/login", map[string]string{"password": "x"}, "")
	resp := requireError(t, rr, http.StatusBadRequest, "VALIDATION")
	require.Contains(t, resp.Details, "email")

	req := httptest.NewRequest(http.MethodPost, "/user/login", bytes.NewBufferString("{not json"))
	rr = httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")
}

func TestJoinHandler_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("dup")
	env.signUp(t, email, "password123")

	rr := env.do(t, http.MethodPost, "/user/join", JoinRequest{
		Email: email, Password: "password123", Nickname: "again", Code: "123456",
	}, "")
	requireError(t, rr, http.StatusBadRequest, "ALREADY_EXISTS")
}

func TestJoinHandler_WrongCode(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("code")

	rr := env.do(t, http.MethodGet, "/user/join?email="+email, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	msg, ok := env.mailer.Last(email)
	require.True(t, ok)

	wrong := "000000"
	if mail.CodeFrom(msg) == wrong {
		wrong = "111111"
	}
	rr = env.do(t, http.MethodPost, "/user/join", JoinRequest{
		Email: email, Password: "password123", Nickname: "nick", Code: wrong,
	}, "")
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")
}

func TestCheckEmailHandler_MissingEmail(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/user/join", nil, "")
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")
}

func TestCheckEmailHandler(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("check")

	rr := env.do(t, http.MethodGet, "/user/join?email="+email, nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	check := decode[DuplicateCheckResponse](t, rr)
	require.False(t, check.Duplicate)
	require.True(t, check.CodeSent)
	first, ok := env.mailer.Last(email)
	require.True(t, ok)
	require.Len(t, mail.CodeFrom(first), 6)

	env.signUp(t, email, "password123")
	before, ok := env.mailer.Last(email)
	require.True(t, ok)

	rr = env.do(t, http.MethodGet, "/user/join?email="+strings.ToUpper(email), nil, "")
	requireError(t, rr, http.StatusBadRequest, "ALREADY_EXISTS")
	after, _ := env.mailer.Last(email)
	require.Equal(t, before, after, "no code is mailed to a registered email")
}

func TestPasswordReset(t *testing.T) {
	env := newTestEnv(t)
	email := uniqueEmail("reset")
	login := env.signUp(t, email, "password123")

	rr := env.do(t, http.MethodPut, "/user/password?email="+uniqueEmail("nobody"), nil, "")
	requireError(t, rr, http.StatusBadRequest, "INVALID_ARGUMENT")

	rr = env.do(t, http.MethodPut, "/user/password?email="+email, nil, "")
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
	msg, ok := env.mailer.Last(email)
	require.True(t, ok)

	rr = env.do(t, http.MethodPatch, "/user/password", UpdatePasswordRequest{
		Email: email, Code: mail.CodeFrom(msg), Password: "brand-new-pass",
	}, "")
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodPost, "/user/login", LoginRequest{Email: email, Password: "password123"}, "")
	requireError(t, rr, http.StatusBadRequest, "INVALID_CREDENTIALS")

	rr = env.do(t, http.MethodPost, "/user/login", LoginRequest{Email: email, Password: "brand-new-pass"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// Every earlier session was revoked.
	rr = env.do(t, http.MethodPost, "/user/refresh", RefreshTokenRequest{RefreshToken: login.RefreshToken}, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestOAuthLoginHandlers(t *testing.T) {
	env := newTestEnv(t)

	email := uniqueEmail("kakao")
	env.providers["kakao"].set(&auth.OAuthProfile{Provider: "kakao", Email: email, Nickname: "kk"}, nil)

	rr := env.do(t, http.MethodGet, "/user/kakao-login?code=abc", nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	first := decode[LoginResponse](t, rr)
	require.True(t, first.NewUser)
	require.Equal(t, email, first.Email)

	rr = env.do(t, http.MethodGet, "/user/kakao-login?code=def", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	second := decode[LoginResponse](t, rr)
	require.False(t, second.NewUser)
	require.Equal(t, first.ID, second.ID)

	env.providers["google"].set(&auth.OAuthProfile{Provider: "google", Email: email, Nickname: "gg"}, nil)
	rr = env.do(t, http.MethodPost, "/user/google-login", GoogleLoginRequest{Code: "xyz"}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, first.ID, decode[LoginResponse](t, rr).ID)

	rr = env.do(t, http.MethodGet, "/user/profile", nil, second.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code)
	profile := decode[ProfileResponse](t, rr)
	require.ElementsMatch(t, []string{"google", "kakao"}, profile.LinkedProviders)
	require.False(t, profile.HasPassword)
}

func TestOAuthLoginHandlers_BadInput(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/user/naver-login?code=abc", nil, "")
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")

	rr = env.do(t, http.MethodGet, "/user/kakao-login", nil, "")
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")

	rr = env.do(t, http.MethodPost, "/user/google-login", map[string]string{}, "")
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")
}

func TestOAuthLoginHandlers_ProviderFailure(t *testing.T) {
	env := newTestEnv(t)
	env.providers["naver"].set(nil, errors.New("token endpoint unavailable"))

	rr := env.do(t, http.MethodGet, "/user/naver-login?code=abc&state=xyz", nil, "")
	resp := requireError(t, rr, http.StatusUnauthorized, "AUTH_PROVIDER")
	require.NotContains(t, resp.Message, "unavailable")
}

func TestRefreshAndLogout(t *testing.T) {
	env := newTestEnv(t)
	login := env.signUp(t, uniqueEmail("refresh"), "password123")

	rr := env.do(t, http.MethodPost, "/user/refresh", RefreshTokenRequest{RefreshToken: login.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rotated := decode[LoginResponse](t, rr)
	require.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	rr = env.do(t, http.MethodPost, "/user/refresh", RefreshTokenRequest{RefreshToken: login.RefreshToken}, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")

	rr = env.do(t, http.MethodPost, "/user/logout", RefreshTokenRequest{RefreshToken: rotated.RefreshToken}, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodPost, "/user/refresh", RefreshTokenRequest{RefreshToken: rotated.RefreshToken}, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestProfileHandler(t *testing.T) {
	env := newTestEnv(t)
	login := env.signUp(t, uniqueEmail("profile"), "password123")

	rr := env.do(t, http.MethodGet, "/user/profile", nil, "")
	requireError(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")

	folderID := env.createFolder(t, login.AccessToken, "profile folder")
	rr = env.do(t, http.MethodPost, "/folders/"+strconv.FormatInt(folderID, 10)+"/sites",
		AddSiteRequest{URL: "https://example.com"}, login.AccessToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/user/profile", nil, login.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	profile := decode[ProfileResponse](t, rr)
	require.Equal(t, login.ID, profile.ID)
	require.True(t, profile.HasPassword)
	require.Empty(t, profile.LinkedProviders)
	require.Nil(t, profile.ProfileImageURL)
	require.EqualValues(t, 1, profile.Stats.FolderCount)
	require.EqualValues(t, 1, profile.Stats.SiteCount)
}

func uploadImage(t *testing.T, env *testEnv, token, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/user/profile/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	return rr
}

func TestProfileImage(t *testing.T) {
	env := newTestEnv(t)
	login := env.signUp(t, uniqueEmail("avatar"), "password123")
	imagePath := "/users/" + strconv.FormatInt(login.ID, 10) + "/profile-image"

	rr := env.do(t, http.MethodGet, imagePath, nil, "")
	requireError(t, rr, http.StatusNotFound, "NOT_FOUND")

	rr = uploadImage(t, env, login.AccessToken, "image", []byte("definitely not an image"))
	requireError(t, rr, http.StatusBadRequest, "INVALID_ARGUMENT")

	rr = uploadImage(t, env, login.AccessToken, "avatar", tinyPNG)
	requireError(t, rr, http.StatusBadRequest, "VALIDATION")

	rr = uploadImage(t, env, login.AccessToken, "image", tinyPNG)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodGet, imagePath, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.Equal(t, tinyPNG, body)

	rr = env.do(t, http.MethodGet, "/user/profile", nil, login.AccessToken)
	profile := decode[ProfileResponse](t, rr)
	require.NotNil(t, profile.ProfileImageURL)
	require.Equal(t, "http://markeep.test"+imagePath, *profile.ProfileImageURL)
}
