package database

import (
	"context"
	"errors"
	"fmt"

	"markeep/internal/models"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, nickname, password_hash, profile_image,
	google_linked, naver_linked, kakao_linked, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Nickname,
		&user.PasswordHash,
		&user.ProfileImage,
		&user.GoogleLinked,
		&user.NaverLinked,
		&user.KakaoLinked,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// oauthLinkColumns whitelists the column a provider login may flip. Provider
// names never reach the SQL text any other way.
var oauthLinkColumns = map[string]string{
	models.ProviderGoogle: "google_linked",
	models.ProviderNaver:  "naver_linked",
	models.ProviderKakao:  "kakao_linked",
}

type CreateUserParams struct {
	Email        string
	Nickname     string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (email, nickname, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, arg.Email, arg.Nickname, arg.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(q.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(q.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (q *Queries) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

type UpsertOAuthUserParams struct {
	Provider string
	Email    string
	Nickname string
}

// UpsertOAuthUser finds the account registered under arg.Email or creates it,
// marking the provider as linked either way. It is a single statement, so two
// concurrent first logins for the same email resolve to one row. inserted
// reports whether the row was created by this call.
func (q *Queries) UpsertOAuthUser(ctx context.Context, arg UpsertOAuthUserParams) (user *models.User, inserted bool, err error) {
	column, ok := oauthLinkColumns[arg.Provider]
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownProvider, arg.Provider)
	}

	query := fmt.Sprintf(`
		INSERT INTO users (email, nickname, %[1]s)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email) DO UPDATE SET %[1]s = TRUE
		RETURNING %[2]s, (xmax = 0) AS inserted`, column, userColumns)

	var u models.User
	err = q.db.QueryRow(ctx, query, arg.Email, arg.Nickname).Scan(
		&u.ID,
		&u.Email,
		&u.Nickname,
		&u.PasswordHash,
		&u.ProfileImage,
		&u.GoogleLinked,
		&u.NaverLinked,
		&u.KakaoLinked,
		&u.CreatedAt,
		&inserted,
	)
	if err != nil {
		return nil, false, err
	}
	return &u, inserted, nil
}

// UpdateUserPassword reports whether a user with the given email existed.
func (q *Queries) UpdateUserPassword(ctx context.Context, email string, newPasswordHash string) (bool, error) {
	query := `UPDATE users SET password_hash = $1 WHERE email = $2`
	res, err := q.db.Exec(ctx, query, newPasswordHash, email)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// UpdateUserProfileImage stores the new image key and returns the previous one
// so the caller can remove the old file.
func (q *Queries) UpdateUserProfileImage(ctx context.Context, userID int64, imageKey string) (*string, error) {
	query := `
		UPDATE users u
		SET profile_image = $1
		FROM (SELECT id, profile_image FROM users WHERE id = $2 FOR UPDATE) old
		WHERE u.id = old.id
		RETURNING old.profile_image
	`
	var previous *string
	err := q.db.QueryRow(ctx, query, imageKey, userID).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return previous, nil
}

func (q *Queries) GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM folders WHERE user_id = $1),
			(SELECT count(*) FROM sites s JOIN folders f ON f.id = s.folder_id WHERE f.user_id = $1),
			(SELECT COALESCE(sum(pin_count), 0) FROM folders WHERE user_id = $1)
	`
	var stats models.UserStats
	err := q.db.QueryRow(ctx, query, userID).Scan(&stats.FolderCount, &stats.SiteCount, &stats.PinsReceived)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
