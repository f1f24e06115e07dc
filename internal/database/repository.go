package database

import (
	"database/sql"
	"fmt"
)

// Repository handles reading persistence
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveReading stores a reading record
func (r *Repository) SaveReading(reading *Reading) error {
	stmt, err := r.db.GetPreparedStatement("insert_reading")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		reading.ID, reading.Question, reading.Category, reading.Polarity,
		reading.Verdict, reading.Score, reading.Confidence, reading.Negated,
		reading.Factors, reading.Narrative, reading.IPAddress, reading.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}

	return nil
}

// GetReading retrieves a single reading by ID
func (r *Repository) GetReading(id string) (*Reading, error) {
	stmt, err := r.db.GetPreparedStatement("get_reading")
	if err != nil {
		return nil, err
	}

	var reading Reading
	var factors, narrative sql.NullString

	err = stmt.QueryRow(id).Scan(
		&reading.ID, &reading.Question, &reading.Category, &reading.Polarity,
		&reading.Verdict, &reading.Score, &reading.Confidence, &reading.Negated,
		&factors, &narrative, &reading.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading: %w", err)
	}

	reading.Factors = factors.String
	reading.Narrative = narrative.String

	return &reading, nil
}

// ListRecent returns the most recent readings, newest first
func (r *Repository) ListRecent(limit int) ([]*Reading, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	stmt, err := r.db.GetPreparedStatement("list_readings")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()

	readings := make([]*Reading, 0, limit)
	for rows.Next() {
		var reading Reading
		var factors, narrative sql.NullString

		if err := rows.Scan(
			&reading.ID, &reading.Question, &reading.Category, &reading.Polarity,
			&reading.Verdict, &reading.Score, &reading.Confidence, &reading.Negated,
			&factors, &narrative, &reading.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}

		reading.Factors = factors.String
		reading.Narrative = narrative.String
		readings = append(readings, &reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}

	return readings, nil
}

// DeleteByID removes a reading. Returns false if no row matched.
func (r *Repository) DeleteByID(id string) (bool, error) {
	stmt, err := r.db.GetPreparedStatement("delete_reading")
	if err != nil {
		return false, err
	}

	res, err := stmt.Exec(id)
	if err != nil {
		return false, fmt.Errorf("failed to delete reading: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}

	return affected > 0, nil
}

// Stats aggregates stored readings by verdict
func (r *Repository) Stats() (*HistoryStats, error) {
	stats := &HistoryStats{
		VerdictCounts: make(map[string]int),
	}

	stmt, err := r.db.GetPreparedStatement("verdict_counts")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query verdict counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, fmt.Errorf("failed to scan verdict count: %w", err)
		}
		stats.VerdictCounts[verdict] = count
		stats.TotalReadings += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verdict counts: %w", err)
	}

	var avgScore sql.NullFloat64
	err = r.db.QueryRow(`SELECT AVG(score) FROM readings`).Scan(&avgScore)
	if err != nil {
		return nil, fmt.Errorf("failed to query average score: %w", err)
	}
	stats.AverageScore = avgScore.Float64

	err = r.db.QueryRow(`SELECT COUNT(*) FROM readings WHERE negated = 1`).Scan(&stats.NegatedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query negated count: %w", err)
	}

	return stats, nil
}
