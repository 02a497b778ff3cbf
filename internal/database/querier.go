package database

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

var (
	ErrEmailTaken      = errors.New("email is already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrFolderNotFound  = errors.New("folder not found")
	ErrAlreadyPinned   = errors.New("folder is already pinned")
	ErrNotPinned       = errors.New("folder is not pinned")
	ErrDuplicateTag    = errors.New("folder already has this tag")
	ErrUnknownProvider = errors.New("unknown oauth provider")
)

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error) bool {
	return isPgError(err, pgerrcode.UniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return isPgError(err, pgerrcode.ForeignKeyViolation)
}
