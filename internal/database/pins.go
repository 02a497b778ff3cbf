package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// PinResult is the folder state after a pin or unpin, plus the event written
// to the owner's journal.
type PinResult struct {
	FolderID int64
	OwnerID  int64
	PinCount int
	Event    *Event
}

type pinEventPayload struct {
	FolderID int64 `json:"folderId"`
	PinnedBy int64 `json:"pinnedBy"`
	PinCount int   `json:"pinCount"`
}

func (q *Queries) InsertPin(ctx context.Context, userID int64, folderID int64) error {
	_, err := q.db.Exec(ctx, `INSERT INTO folder_pins (user_id, folder_id) VALUES ($1, $2)`, userID, folderID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyPinned
		}
		if isForeignKeyViolation(err) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}

func (q *Queries) DeletePin(ctx context.Context, userID int64, folderID int64) (bool, error) {
	res, err := q.db.Exec(ctx, `DELETE FROM folder_pins WHERE user_id = $1 AND folder_id = $2`, userID, folderID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// AdjustPinCount adds delta to the folder's pin count, never letting it drop
// below zero.
func (q *Queries) AdjustPinCount(ctx context.Context, folderID int64, delta int) (ownerID int64, pinCount int, err error) {
	query := `
		UPDATE folders
		SET pin_count = GREATEST(pin_count + $2, 0)
		WHERE id = $1
		RETURNING user_id, pin_count
	`
	err = q.db.QueryRow(ctx, query, folderID, delta).Scan(&ownerID, &pinCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrFolderNotFound
		}
		return 0, 0, err
	}
	return ownerID, pinCount, nil
}

func (q *Queries) IsPinned(ctx context.Context, userID int64, folderID int64) (bool, error) {
	var pinned bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM folder_pins WHERE user_id = $1 AND folder_id = $2)`,
		userID, folderID,
	).Scan(&pinned)
	return pinned, err
}

// PinFolder records that userID pinned the folder and bumps its pin count in
// the same transaction.
func (s *Store) PinFolder(ctx context.Context, userID int64, folderID int64) (*PinResult, error) {
	return s.changePin(ctx, userID, folderID, true)
}

// UnpinFolder reverses PinFolder. ErrNotPinned is returned when there was no
// pin to remove.
func (s *Store) UnpinFolder(ctx context.Context, userID int64, folderID int64) (*PinResult, error) {
	return s.changePin(ctx, userID, folderID, false)
}

func (s *Store) changePin(ctx context.Context, userID int64, folderID int64, pin bool) (*PinResult, error) {
	result := &PinResult{FolderID: folderID}

	err := s.ExecTx(ctx, func(q *Queries) error {
		delta, eventType := 1, EventFolderPinned
		if pin {
			if err := q.InsertPin(ctx, userID, folderID); err != nil {
				return err
			}
		} else {
			removed, err := q.DeletePin(ctx, userID, folderID)
			if err != nil {
				return err
			}
			if !removed {
				return ErrNotPinned
			}
			delta, eventType = -1, EventFolderUnpinned
		}

		var err error
		result.OwnerID, result.PinCount, err = q.AdjustPinCount(ctx, folderID, delta)
		if err != nil {
			return err
		}

		result.Event, err = q.LogEvent(ctx, result.OwnerID, eventType, pinEventPayload{
			FolderID: folderID,
			PinnedBy: userID,
			PinCount: result.PinCount,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
