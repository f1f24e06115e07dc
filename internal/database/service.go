package database

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/astralhq/cosmic-counsel/internal/oracle"
)

// ReadingService provides business logic for reading history
type ReadingService struct {
	repo *Repository
}

// NewReadingService creates a new reading service
func NewReadingService(repo *Repository) *ReadingService {
	return &ReadingService{repo: repo}
}

// Record persists a scoring result along with its narrative
func (s *ReadingService) Record(question string, result *oracle.ScoringResult, narrative, ipAddress string) (*Reading, error) {
	factorsJSON, err := json.Marshal(result.Factors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal factors: %w", err)
	}

	reading := NewReading(
		question,
		string(result.Category),
		string(result.Polarity),
		string(result.Verdict),
		result.Score,
		result.Confidence,
		result.Negated,
		string(factorsJSON),
		narrative,
		ipAddress,
	)

	if err := s.repo.SaveReading(reading); err != nil {
		return nil, err
	}

	return reading, nil
}

// RecordAsync persists a reading in the background, logging failures
func (s *ReadingService) RecordAsync(question string, result *oracle.ScoringResult, narrative, ipAddress string) {
	go func() {
		if _, err := s.Record(question, result, narrative, ipAddress); err != nil {
			slog.Error("Failed to record reading", "error", err)
		}
	}()
}

// History returns the most recent readings
func (s *ReadingService) History(limit int) ([]*Reading, error) {
	return s.repo.ListRecent(limit)
}

// Stats returns aggregate statistics over stored readings
func (s *ReadingService) Stats() (*HistoryStats, error) {
	return s.repo.Stats()
}

// Delete removes a reading by ID. Returns false if it did not exist.
func (s *ReadingService) Delete(id string) (bool, error) {
	return s.repo.DeleteByID(id)
}
