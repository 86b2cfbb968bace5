package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is one run of the tracking pipeline.
type Session struct {
	ID        string
	Profile   string
	StartedAt time.Time
	EndedAt   *time.Time
}

// SessionRepository provides access to tracking sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start creates and returns a new open session.
func (r *SessionRepository) Start(profile string) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		Profile:   profile,
		StartedAt: time.Now(),
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, profile, started_at) VALUES (?, ?, ?)`,
		session.ID, session.Profile, session.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// End closes a session.
func (r *SessionRepository) End(id string) error {
	res, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		time.Now(), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	session := &Session{}
	var ended sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, profile, started_at, ended_at FROM sessions WHERE id = ?`,
		id,
	).Scan(&session.ID, &session.Profile, &session.StartedAt, &ended)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ended.Valid {
		session.EndedAt = &ended.Time
	}
	return session, nil
}

// List returns all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, profile, started_at, ended_at FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session := &Session{}
		var ended sql.NullTime
		if err := rows.Scan(&session.ID, &session.Profile, &session.StartedAt, &ended); err != nil {
			return nil, err
		}
		if ended.Valid {
			session.EndedAt = &ended.Time
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
