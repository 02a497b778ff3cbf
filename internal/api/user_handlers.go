package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"markeep/internal/account"
	domainerrors "markeep/internal/errors"
	"markeep/internal/models"
)

// maxImageFormBytes bounds the whole multipart body; the storage layer
// enforces the configured image size on the file part itself.
const maxImageFormBytes = 16 << 20

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"password123"`
}

// LoginResponse is returned by every login, OAuth login and refresh.
type LoginResponse struct {
	ID                    int64     `json:"id" example:"1"`
	Email                 string    `json:"email" example:"user@example.com"`
	Nickname              string    `json:"nickname" example:"markeeper"`
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	NewUser               bool      `json:"newUser,omitempty"`
}

func newLoginResponse(res *account.LoginResult) LoginResponse {
	return LoginResponse{
		ID:                    res.User.ID,
		Email:                 res.User.Email,
		Nickname:              res.User.Nickname,
		AccessToken:           res.Tokens.AccessToken,
		AccessTokenExpiresAt:  res.Tokens.AccessExpiresAt,
		RefreshToken:          res.Tokens.RefreshToken,
		RefreshTokenExpiresAt: res.Tokens.RefreshExpiresAt,
		NewUser:               res.Created,
	}
}

type JoinRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"password123"`
	Nickname string `json:"nickname" validate:"required,max=50" example:"markeeper"`
	Code     string `json:"code" validate:"required,len=6,numeric" example:"123456"`
}

type UpdatePasswordRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Code     string `json:"code" validate:"required,len=6,numeric" example:"123456"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"newpassword123"`
}

type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required" example:"4/0AX4XfWh..."`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type DuplicateCheckResponse struct {
	Email     string `json:"email" example:"user@example.com"`
	Duplicate bool   `json:"duplicate" example:"false"`
	CodeSent  bool   `json:"codeSent" example:"true"`
}

type ProfileResponse struct {
	ID              int64            `json:"id" example:"1"`
	Email           string           `json:"email" example:"user@example.com"`
	Nickname        string           `json:"nickname" example:"markeeper"`
	ProfileImageURL *string          `json:"profileImageUrl"`
	HasPassword     bool             `json:"hasPassword"`
	LinkedProviders []string         `json:"linkedProviders"`
	Stats           models.UserStats `json:"stats"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// @Summary      Log in with email and password
// @Description  Verifies the credentials and opens a session. An unknown email and a wrong password produce the same response.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Login credentials"
// @Success      200          {object}  LoginResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      429          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /user/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.accounts.Login(r.Context(), req.Email, req.Password, clientInfo(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newLoginResponse(res))
}

// @Summary      Check an email and send a join code
// @Description  Mails a six digit join code to a free email. A registered email is rejected with ALREADY_EXISTS.
// @Tags         user
// @Produce      json
// @Param        email  query     string  true  "Email to check"
// @Success      200    {object}  DuplicateCheckResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      429    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /user/join [get]
func (s *Server) CheckEmailHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	if err := s.accounts.SendJoinCode(r.Context(), email); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, DuplicateCheckResponse{Email: email, CodeSent: true})
}

// @Summary      Join
// @Description  Creates a local account. The code is the one mailed by GET /user/join.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        user  body      JoinRequest  true  "New account"
// @Success      200   {object}  models.User
// @Failure      400   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /user/join [post]
func (s *Server) JoinHandler(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.accounts.Join(r.Context(), account.JoinInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		Code:     req.Code,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

// @Summary      Send a password reset code
// @Description  Mails a six digit reset code to a registered email.
// @Tags         user
// @Param        email  query     string  true  "Registered email"
// @Success      204    {null}    nil     "No Content"
// @Failure      400    {object}  ErrorResponse
// @Failure      429    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /user/password [put]
func (s *Server) PasswordResetCodeHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.SendPasswordResetCode(r.Context(), r.URL.Query().Get("email")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Reset the password
// @Description  Sets a new password using a mailed reset code. Every session of the user is terminated.
// @Tags         user
// @Accept       json
// @Param        reset  body      UpdatePasswordRequest  true  "Reset request"
// @Success      204    {null}    nil  "No Content"
// @Failure      400    {object}  ErrorResponse
// @Failure      429    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /user/password [patch]
func (s *Server) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.accounts.UpdatePassword(r.Context(), req.Email, req.Code, req.Password); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Log in with Google
// @Description  Exchanges a Google authorization code, creating the account on first login.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request  body      GoogleLoginRequest  true  "Authorization code"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Router       /user/google-login [post]
func (s *Server) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.oauthLogin(w, r, models.ProviderGoogle, req.Code, "")
}

// @Summary      Log in with Naver
// @Description  Exchanges a Naver authorization code and state, creating the account on first login.
// @Tags         user
// @Produce      json
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "State sent with the authorization request"
// @Success      200    {object}  LoginResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      429    {object}  ErrorResponse
// @Router       /user/naver-login [get]
func (s *Server) NaverLoginHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("state") == "" {
		s.writeError(w, r, domainerrors.Validation("state is required"))
		return
	}
	s.oauthLogin(w, r, models.ProviderNaver, q.Get("code"), q.Get("state"))
}

// @Summary      Log in with Kakao
// @Description  Exchanges a Kakao authorization code, creating the account on first login.
// @Tags         user
// @Produce      json
// @Param        code  query     string  true  "Authorization code"
// @Success      200   {object}  LoginResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /user/kakao-login [get]
func (s *Server) KakaoLoginHandler(w http.ResponseWriter, r *http.Request) {
	s.oauthLogin(w, r, models.ProviderKakao, r.URL.Query().Get("code"), "")
}

func (s *Server) oauthLogin(w http.ResponseWriter, r *http.Request, provider, code, state string) {
	res, err := s.accounts.OAuthLogin(r.Context(), provider, code, state, clientInfo(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newLoginResponse(res))
}

// @Summary      Refresh tokens
// @Description  Trades a refresh token for a new token pair. The old refresh token stops working.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshTokenRequest  true  "Refresh token"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /user/refresh [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.accounts.Refresh(r.Context(), req.RefreshToken, clientInfo(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newLoginResponse(res))
}

// @Summary      Log out
// @Description  Ends the session behind the refresh token.
// @Tags         user
// @Accept       json
// @Param        request  body      RefreshTokenRequest  true  "Refresh token"
// @Success      204      {null}    nil  "No Content"
// @Failure      400      {object}  ErrorResponse
// @Router       /user/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.accounts.Logout(r.Context(), req.RefreshToken); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Get the current user's profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /user/profile [get]
func (s *Server) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	profile, err := s.accounts.Profile(r.Context(), claims.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	u := profile.User
	resp := ProfileResponse{
		ID:              u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		HasPassword:     u.HasPassword(),
		LinkedProviders: u.LinkedProviders(),
		Stats:           *profile.Stats,
		CreatedAt:       u.CreatedAt,
	}
	if u.ProfileImage != nil {
		url := s.profileImageURL(u.ID)
		resp.ProfileImageURL = &url
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) profileImageURL(userID int64) string {
	return fmt.Sprintf("%s/users/%d/profile-image", s.config.AppHost, userID)
}

// @Summary      Upload a profile image
// @Description  Replaces the current user's profile image. PNG, JPEG, GIF and WebP are accepted.
// @Tags         user
// @Accept       multipart/form-data
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      204    {null}    nil  "No Content"
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Router       /user/profile/image [put]
func (s *Server) UploadProfileImageHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImageFormBytes)
	reader, err := r.MultipartReader()
	if err != nil {
		s.writeError(w, r, domainerrors.Validation("multipart form expected"))
		return
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.writeError(w, r, domainerrors.Validation("invalid multipart body"))
			return
		}

		if part.FormName() != "image" {
			part.Close()
			continue
		}

		err = s.accounts.UpdateProfileImage(r.Context(), claims.UserID, part)
		part.Close()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeError(w, r, domainerrors.ValidationWithDetails("validation failed", map[string]string{"image": "is required"}))
}

// @Summary      Get a user's profile image
// @Tags         user
// @Produce      image/png,image/jpeg,image/gif,image/webp
// @Param        userId  path      int  true  "User ID"
// @Success      200     {file}    file
// @Failure      404     {object}  ErrorResponse
// @Router       /users/{userId}/profile-image [get]
func (s *Server) ProfileImageHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(chi.URLParam(r, "userId"), "user id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	f, err := s.accounts.ProfileImage(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.writeError(w, r, domainerrors.Internal(err))
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	http.ServeContent(w, r, "", info.ModTime(), f)
}
