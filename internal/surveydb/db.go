// Package surveydb persists processed session summaries to a local
// SQLite database so repeated field measurements at the same sites can
// be compared later. The schema is managed by embedded migrations.
package surveydb

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/magnetic.report/internal/report"
	"github.com/banshee-data/magnetic.report/internal/smooth"
	"github.com/banshee-data/magnetic.report/internal/timeutil"
)

// DB wraps the archive database handle.
type DB struct {
	*sql.DB

	// Clock stamps processed_at on insert. Tests may swap in a MockClock.
	Clock timeutil.Clock
}

// Open opens (creating if needed) the archive at path and applies any
// pending schema migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("surveydb: open %s: %w", path, err)
	}

	db := &DB{DB: sqlDB, Clock: timeutil.RealClock{}}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Session is one archived processing run.
type Session struct {
	SessionID   string
	SourceFile  string
	Location    string
	SampleCount int
	Plan        smooth.Plan
	Summary     report.Summary
	ProcessedAt time.Time
}

// InsertSession stores a processed session and returns its id. A blank
// SessionID is replaced with a fresh uuid.
func (db *DB) InsertSession(s Session) (string, error) {
	id := s.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	window := 0
	if s.Plan.Enabled {
		window = s.Plan.WindowLength
	}

	_, err := db.Exec(
		`INSERT INTO sessions (
			session_id, source_file, location, sample_count,
			window_length, smoothing_enabled,
			dip_mean, dip_min, dip_max,
			declination_mean, declination_min, declination_max,
			bz_min, bz_max,
			total_field_min, total_field_max,
			processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, s.SourceFile, s.Location, s.SampleCount,
		window, s.Plan.Enabled,
		nullable(s.Summary.Dip.Mean), nullable(s.Summary.Dip.Min), nullable(s.Summary.Dip.Max),
		nullable(s.Summary.Declination.Mean), nullable(s.Summary.Declination.Min), nullable(s.Summary.Declination.Max),
		nullable(s.Summary.Bz.Min), nullable(s.Summary.Bz.Max),
		nullable(s.Summary.TotalField.Min), nullable(s.Summary.TotalField.Max),
		db.Clock.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("surveydb: insert session: %w", err)
	}
	return id, nil
}

// ListSessions returns archived sessions for a location, newest first.
// An empty location matches every session.
func (db *DB) ListSessions(location string) ([]Session, error) {
	query := `SELECT session_id, source_file, location, sample_count,
		window_length, smoothing_enabled,
		dip_mean, dip_min, dip_max,
		declination_mean, declination_min, declination_max,
		bz_min, bz_max, total_field_min, total_field_max,
		processed_at
	FROM sessions`
	args := []any{}
	if location != "" {
		query += ` WHERE location = ?`
		args = append(args, location)
	}
	query += ` ORDER BY processed_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("surveydb: list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var dipMean, dipMin, dipMax sql.NullFloat64
		var declMean, declMin, declMax sql.NullFloat64
		var bzMin, bzMax, totalMin, totalMax sql.NullFloat64
		if err := rows.Scan(
			&s.SessionID, &s.SourceFile, &s.Location, &s.SampleCount,
			&s.Plan.WindowLength, &s.Plan.Enabled,
			&dipMean, &dipMin, &dipMax,
			&declMean, &declMin, &declMax,
			&bzMin, &bzMax, &totalMin, &totalMax,
			&s.ProcessedAt,
		); err != nil {
			return nil, fmt.Errorf("surveydb: scan session: %w", err)
		}
		s.Summary.Samples = s.SampleCount
		s.Summary.Dip = report.ColumnStats{Mean: floatOrNaN(dipMean), Min: floatOrNaN(dipMin), Max: floatOrNaN(dipMax)}
		s.Summary.Declination = report.ColumnStats{Mean: floatOrNaN(declMean), Min: floatOrNaN(declMin), Max: floatOrNaN(declMax)}
		s.Summary.Bz = report.ColumnStats{Mean: math.NaN(), Min: floatOrNaN(bzMin), Max: floatOrNaN(bzMax)}
		s.Summary.TotalField = report.ColumnStats{Mean: math.NaN(), Min: floatOrNaN(totalMin), Max: floatOrNaN(totalMax)}
		out = append(out, s)
	}
	return out, rows.Err()
}

// floatOrNaN maps NULL back to NaN, the in-memory missing marker.
func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// nullable maps NaN to NULL; SQLite has no NaN representation.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
