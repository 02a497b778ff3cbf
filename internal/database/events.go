package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventFolderPinned   = "folder.pinned"
	EventFolderUnpinned = "folder.unpinned"
)

type Event struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"-"`
	EventType string          `json:"eventType"`
	EventTime time.Time       `json:"eventTime"`
	Payload   json.RawMessage `json:"payload"`
}

// LogEvent appends an event to userID's journal and returns the stored row.
func (q *Queries) LogEvent(ctx context.Context, userID int64, eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `
		INSERT INTO event_journal (user_id, event_type, payload)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, event_type, event_time, payload
	`
	var event Event
	err = q.db.QueryRow(ctx, query, userID, eventType, payloadBytes).Scan(
		&event.ID,
		&event.UserID,
		&event.EventType,
		&event.EventTime,
		&event.Payload,
	)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (q *Queries) GetEventsSince(ctx context.Context, userID int64, sinceID int64) ([]Event, error) {
	query := `
		SELECT id, user_id, event_type, event_time, payload
		FROM event_journal
		WHERE user_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT 100
	`
	rows, err := q.db.Query(ctx, query, userID, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
