package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// GestureEvent is one discrete recognized gesture within a session.
type GestureEvent struct {
	ID        string
	SessionID string
	Gesture   string
	Planet    string
	FiredAt   time.Time
}

// EventRepository provides access to gesture events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the gesture event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts a gesture event.
func (r *EventRepository) Record(sessionID, gesture, planet string, firedAt time.Time) (*GestureEvent, error) {
	event := &GestureEvent{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Gesture:   gesture,
		Planet:    planet,
		FiredAt:   firedAt,
	}

	_, err := r.db.Exec(
		`INSERT INTO gesture_events (id, session_id, gesture, planet, fired_at)
		 VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.SessionID, event.Gesture, event.Planet, event.FiredAt,
	)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// ListBySession returns all events of a session in firing order.
func (r *EventRepository) ListBySession(sessionID string) ([]*GestureEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, gesture, planet, fired_at
		 FROM gesture_events WHERE session_id = ? ORDER BY fired_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*GestureEvent
	for rows.Next() {
		event := &GestureEvent{}
		if err := rows.Scan(&event.ID, &event.SessionID, &event.Gesture, &event.Planet, &event.FiredAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
