package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Throw is one recorded ball throw: the frozen launch parameters plus the
// predicted landing.
type Throw struct {
	ID         string
	SessionID  string
	Planet     string
	Speed      float64
	Angle      float64
	Gravity    float64
	LandingX   float64
	LandingZ   float64
	FlightTime float64
	ThrownAt   time.Time
}

// ThrowRepository provides access to recorded throws.
type ThrowRepository struct {
	db *sql.DB
}

// Throws returns the throw repository for this store.
func (s *Store) Throws() *ThrowRepository {
	return &ThrowRepository{db: s.db}
}

// Record inserts a throw.
func (r *ThrowRepository) Record(t *Throw) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	_, err := r.db.Exec(
		`INSERT INTO throws (id, session_id, planet, speed, angle, gravity,
		                     landing_x, landing_z, flight_time, thrown_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.SessionID, t.Planet, t.Speed, t.Angle, t.Gravity,
		t.LandingX, t.LandingZ, t.FlightTime, t.ThrownAt,
	)
	return err
}

// ListBySession returns all throws of a session in throw order.
func (r *ThrowRepository) ListBySession(sessionID string) ([]*Throw, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, planet, speed, angle, gravity,
		        landing_x, landing_z, flight_time, thrown_at
		 FROM throws WHERE session_id = ? ORDER BY thrown_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var throws []*Throw
	for rows.Next() {
		t := &Throw{}
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Planet, &t.Speed, &t.Angle, &t.Gravity,
			&t.LandingX, &t.LandingZ, &t.FlightTime, &t.ThrownAt); err != nil {
			return nil, err
		}
		throws = append(throws, t)
	}

	return throws, rows.Err()
}
