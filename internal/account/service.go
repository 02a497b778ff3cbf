// Package account implements sign-up, local and OAuth login, token refresh
// and the password reset flow on top of the database store.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"markeep/internal/auth"
	"markeep/internal/database"
	domainerrors "markeep/internal/errors"
	"markeep/internal/mail"
	"markeep/internal/metrics"
	"markeep/internal/models"
	"markeep/internal/storage"
)

const (
	methodLocal       = "local"
	maxNicknameLength = 50

	defaultMaxCodeAttempts = 5
)

// ClientInfo identifies the device a session is opened from.
type ClientInfo struct {
	UserAgent string
	IP        string
}

// LoginResult is returned by every successful login or refresh.
type LoginResult struct {
	User    *models.User
	Tokens  *auth.TokenPair
	Created bool
}

// Deps are the collaborators a Service is built from.
type Deps struct {
	Store     *database.Store
	Tokens    *auth.TokenIssuer
	Providers map[string]auth.OAuthProvider
	Mailer    mail.Sender
	Images    *storage.LocalStorage
	Codes     mail.CodeGenerator
	CodeTTL   time.Duration

	// MaxCodeAttempts is how many wrong guesses discard a mailed code.
	MaxCodeAttempts int
	Metrics         metrics.LoginRecorder
	Logger          *slog.Logger
}

type Service struct {
	store     *database.Store
	tokens    *auth.TokenIssuer
	providers map[string]auth.OAuthProvider
	mailer    mail.Sender
	images    *storage.LocalStorage
	codes     mail.CodeGenerator
	codeTTL   time.Duration
	attempts  int
	metrics   metrics.LoginRecorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(deps Deps) *Service {
	attempts := deps.MaxCodeAttempts
	if attempts <= 0 {
		attempts = defaultMaxCodeAttempts
	}
	return &Service{
		store:     deps.Store,
		tokens:    deps.Tokens,
		providers: deps.Providers,
		mailer:    deps.Mailer,
		images:    deps.Images,
		codes:     deps.Codes,
		codeTTL:   deps.CodeTTL,
		attempts:  attempts,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

// dummyHash is compared against when the account does not exist so that a
// missing email costs the same bcrypt round as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	hash, err := auth.HashPassword("markeep-timing-equalizer")
	if err != nil {
		panic(err)
	}
	return hash
})

// Login checks an email and password and opens a session. Unknown emails,
// wrong passwords and OAuth-only accounts all fail with the same error.
func (s *Service) Login(ctx context.Context, email, password string, client ClientInfo) (*LoginResult, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.metrics.RecordLogin(methodLocal, metrics.ResultError)
		return nil, domainerrors.Internal(err)
	}

	hash := dummyHash()
	if user != nil && user.HasPassword() {
		hash = *user.PasswordHash
	}
	match := auth.CheckPasswordHash(password, hash)

	if user == nil || !user.HasPassword() || !match {
		s.metrics.RecordLogin(methodLocal, metrics.ResultRejected)
		return nil, domainerrors.InvalidCredentials()
	}

	tokens, err := s.openSession(ctx, s.store.Queries, user, client)
	if err != nil {
		s.metrics.RecordLogin(methodLocal, metrics.ResultError)
		return nil, domainerrors.Internal(err)
	}

	s.metrics.RecordLogin(methodLocal, metrics.ResultSuccess)
	s.logger.Info("user logged in", slog.Int64("user_id", user.ID), slog.String("method", methodLocal))

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// OAuthLogin trades an authorization code for the provider's profile, finds or
// creates the matching user and opens a session. The provider round trip
// finishes before any database work starts.
func (s *Service) OAuthLogin(ctx context.Context, provider, code, state string, client ClientInfo) (*LoginResult, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, domainerrors.InvalidArgument("unsupported login provider: " + provider)
	}
	if strings.TrimSpace(code) == "" {
		return nil, domainerrors.Validation("authorization code is required")
	}

	start := s.now()
	profile, err := p.Exchange(ctx, code, state)
	s.metrics.ObserveOAuthExchange(provider, s.now().Sub(start))
	if err != nil {
		s.metrics.RecordLogin(provider, metrics.ResultRejected)
		s.logger.Warn("oauth exchange failed", slog.String("provider", provider), slog.Any("error", err))
		var de *domainerrors.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, domainerrors.AuthProvider(provider, err)
	}

	user, created, err := s.store.UpsertOAuthUser(ctx, database.UpsertOAuthUserParams{
		Provider: provider,
		Email:    normalizeEmail(profile.Email),
		Nickname: nicknameFor(profile),
	})
	if err != nil {
		s.metrics.RecordLogin(provider, metrics.ResultError)
		return nil, domainerrors.Internal(err)
	}

	tokens, err := s.openSession(ctx, s.store.Queries, user, client)
	if err != nil {
		s.metrics.RecordLogin(provider, metrics.ResultError)
		return nil, domainerrors.Internal(err)
	}

	s.metrics.RecordLogin(provider, metrics.ResultSuccess)
	s.logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("method", provider),
		slog.Bool("created", created),
	)

	return &LoginResult{User: user, Tokens: tokens, Created: created}, nil
}

// JoinInput is a validated sign-up request.
type JoinInput struct {
	Email    string
	Password string
	Nickname string
	Code     string
}

// Join registers a local account. The mailed join code is consumed in the
// same transaction that creates the user.
func (s *Service) Join(ctx context.Context, in JoinInput) (*models.User, error) {
	email := normalizeEmail(in.Email)

	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	if exists {
		return nil, errEmailTaken()
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}

	var (
		user *models.User
		miss bool
	)
	err = s.store.ExecTx(ctx, func(q *database.Queries) error {
		ok, err := q.ConsumeVerificationCode(ctx, email, string(mail.PurposeJoin), in.Code)
		if err != nil {
			return err
		}
		if !ok {
			miss = true
			return errInvalidCode()
		}

		user, err = q.CreateUser(ctx, database.CreateUserParams{
			Email:        email,
			Nickname:     strings.TrimSpace(in.Nickname),
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		if miss {
			s.recordCodeMiss(ctx, email, mail.PurposeJoin)
		}
		if errors.Is(err, database.ErrEmailTaken) {
			return nil, errEmailTaken()
		}
		return nil, domainerrors.From(err)
	}

	s.logger.Info("user joined", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *Service) IsDuplicate(ctx context.Context, email string) (bool, error) {
	exists, err := s.store.EmailExists(ctx, normalizeEmail(email))
	if err != nil {
		return false, domainerrors.Internal(err)
	}
	return exists, nil
}

// SendJoinCode mails a sign-up code to an address that is not registered yet.
func (s *Service) SendJoinCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domainerrors.Validation("email is required")
	}

	exists, err := s.IsDuplicate(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return errEmailTaken()
	}

	return s.sendCode(ctx, email, mail.PurposeJoin)
}

// SendPasswordResetCode mails a reset code to a registered address.
func (s *Service) SendPasswordResetCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domainerrors.Validation("email is required")
	}

	exists, err := s.IsDuplicate(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.InvalidArgument("email is not registered")
	}

	return s.sendCode(ctx, email, mail.PurposePasswordReset)
}

func (s *Service) sendCode(ctx context.Context, email string, purpose mail.Purpose) error {
	code := s.codes()
	if err := s.store.SaveVerificationCode(ctx, email, string(purpose), code, s.now().Add(s.codeTTL)); err != nil {
		return domainerrors.Internal(err)
	}

	if err := s.mailer.Send(ctx, mail.CodeMessage(email, purpose, code)); err != nil {
		return domainerrors.Internal(err)
	}

	s.logger.Info("verification code sent", slog.String("purpose", string(purpose)))
	return nil
}

// recordCodeMiss runs after the failed transaction has rolled back so the
// counter survives it.
func (s *Service) recordCodeMiss(ctx context.Context, email string, purpose mail.Purpose) {
	discarded, err := s.store.RecordFailedCodeAttempt(ctx, email, string(purpose), s.attempts)
	if err != nil {
		s.logger.Error("failed to record verification code attempt", slog.Any("error", err))
		return
	}
	if discarded {
		s.logger.Warn("verification code discarded after repeated misses", slog.String("purpose", string(purpose)))
	}
}

// UpdatePassword applies a password reset and signs the user out everywhere.
func (s *Service) UpdatePassword(ctx context.Context, email, code, password string) error {
	email = normalizeEmail(email)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domainerrors.Internal(err)
	}

	var (
		userID int64
		miss   bool
	)
	err = s.store.ExecTx(ctx, func(q *database.Queries) error {
		ok, err := q.ConsumeVerificationCode(ctx, email, string(mail.PurposePasswordReset), code)
		if err != nil {
			return err
		}
		if !ok {
			miss = true
			return errInvalidCode()
		}

		user, err := q.GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return domainerrors.InvalidArgument("email is not registered")
		}
		userID = user.ID

		if _, err := q.UpdateUserPassword(ctx, email, hash); err != nil {
			return err
		}
		return q.DeleteAllSessionsForUser(ctx, user.ID)
	})
	if err != nil {
		if miss {
			s.recordCodeMiss(ctx, email, mail.PurposePasswordReset)
		}
		return domainerrors.From(err)
	}

	s.logger.Info("password updated", slog.Int64("user_id", userID))
	return nil
}

// Refresh rotates a refresh token: the old session is removed and a new one
// opened in the same transaction.
func (s *Service) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, domainerrors.Validation("refresh token is required")
	}

	var result LoginResult
	err := s.store.ExecTx(ctx, func(q *database.Queries) error {
		user, err := q.GetUserByRefreshToken(ctx, refreshToken)
		if err != nil {
			return err
		}
		if user == nil {
			return domainerrors.Unauthorized("invalid or expired refresh token")
		}

		deleted, err := q.DeleteSessionByRefreshToken(ctx, refreshToken)
		if err != nil {
			return err
		}
		if !deleted {
			// A concurrent refresh rotated this token first.
			return domainerrors.Unauthorized("invalid or expired refresh token")
		}

		result.User = user
		result.Tokens, err = s.openSession(ctx, q, user, client)
		return err
	})
	if err != nil {
		return nil, domainerrors.From(err)
	}

	return &result, nil
}

// Logout ends the session behind refreshToken. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domainerrors.Validation("refresh token is required")
	}
	if _, err := s.store.DeleteSessionByRefreshToken(ctx, refreshToken); err != nil {
		return domainerrors.Internal(err)
	}
	return nil
}

func (s *Service) ListSessions(ctx context.Context, userID int64) ([]models.Session, error) {
	sessions, err := s.store.ListSessionsForUser(ctx, userID)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	return sessions, nil
}

func (s *Service) DeleteSession(ctx context.Context, userID int64, sessionID uuid.UUID) error {
	deleted, err := s.store.DeleteSessionByID(ctx, sessionID, userID)
	if err != nil {
		return domainerrors.Internal(err)
	}
	if !deleted {
		return domainerrors.NotFound("session not found")
	}
	return nil
}

func (s *Service) TerminateAllSessions(ctx context.Context, userID int64) error {
	if err := s.store.DeleteAllSessionsForUser(ctx, userID); err != nil {
		return domainerrors.Internal(err)
	}
	return nil
}

// Profile is the signed-in user's own view of their account.
type Profile struct {
	User  *models.User
	Stats *models.UserStats
}

func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	err := s.store.ExecReadTx(ctx, func(q *database.Queries) error {
		var err error
		profile.User, err = q.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if profile.User == nil {
			return domainerrors.NotFound("user not found")
		}
		profile.Stats, err = q.GetUserStats(ctx, userID)
		return err
	})
	if err != nil {
		return nil, domainerrors.From(err)
	}
	return &profile, nil
}

func (s *Service) openSession(ctx context.Context, q *database.Queries, user *models.User, client ClientInfo) (*auth.TokenPair, error) {
	tokens, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	err = q.CreateSession(ctx, database.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    client.UserAgent,
		ClientIP:     client.IP,
		ExpiresAt:    tokens.RefreshExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nicknameFor falls back to the local part of the email when the provider
// shares no display name.
func nicknameFor(profile *auth.OAuthProfile) string {
	nick := strings.TrimSpace(profile.Nickname)
	if nick == "" {
		nick, _, _ = strings.Cut(profile.Email, "@")
	}
	if runes := []rune(nick); len(runes) > maxNicknameLength {
		nick = string(runes[:maxNicknameLength])
	}
	return nick
}

func errEmailTaken() error {
	return domainerrors.AlreadyExists("email is already registered")
}

func errInvalidCode() error {
	return domainerrors.Validation("invalid or expired verification code")
}
