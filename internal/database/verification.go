package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// SaveVerificationCode stores the code for (email, purpose), replacing any
// earlier one and its failed attempts.
func (q *Queries) SaveVerificationCode(ctx context.Context, email, purpose, code string, expiresAt time.Time) error {
	query := `
		INSERT INTO verification_codes (email, purpose, code, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, purpose)
		DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, attempts = 0, created_at = NOW()
	`
	_, err := q.db.Exec(ctx, query, email, purpose, code, expiresAt)
	return err
}

// ConsumeVerificationCode deletes a matching, unexpired code and reports
// whether one was found. A code can be consumed once.
func (q *Queries) ConsumeVerificationCode(ctx context.Context, email, purpose, code string) (bool, error) {
	query := `
		DELETE FROM verification_codes
		WHERE email = $1 AND purpose = $2 AND code = $3 AND expires_at > NOW()
	`
	res, err := q.db.Exec(ctx, query, email, purpose, code)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// IncrementCodeAttempts bumps the failed attempt counter and returns the new
// value, or 0 when no code is outstanding.
func (q *Queries) IncrementCodeAttempts(ctx context.Context, email, purpose string) (int, error) {
	query := `
		UPDATE verification_codes
		SET attempts = attempts + 1
		WHERE email = $1 AND purpose = $2
		RETURNING attempts
	`
	var attempts int
	err := q.db.QueryRow(ctx, query, email, purpose).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return attempts, nil
}

func (q *Queries) DeleteVerificationCode(ctx context.Context, email, purpose string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM verification_codes WHERE email = $1 AND purpose = $2`, email, purpose)
	return err
}

// RecordFailedCodeAttempt counts a wrong guess against the outstanding code
// for (email, purpose). Once maxAttempts guesses have missed, the code is
// deleted and a new one has to be requested. It reports whether the code was
// discarded.
func (s *Store) RecordFailedCodeAttempt(ctx context.Context, email, purpose string, maxAttempts int) (bool, error) {
	var discarded bool
	err := s.ExecTx(ctx, func(q *Queries) error {
		attempts, err := q.IncrementCodeAttempts(ctx, email, purpose)
		if err != nil {
			return err
		}
		if attempts == 0 || attempts < maxAttempts {
			return nil
		}
		discarded = true
		return q.DeleteVerificationCode(ctx, email, purpose)
	})
	if err != nil {
		return false, err
	}
	return discarded, nil
}
