package database

import (
	"time"

	"github.com/google/uuid"
)

// Reading represents a stored rule-based reading
type Reading struct {
	ID         string    `json:"id" db:"id"`
	Question   string    `json:"question" db:"question"`
	Category   string    `json:"category" db:"category"`
	Polarity   string    `json:"polarity" db:"polarity"`
	Verdict    string    `json:"verdict" db:"verdict"`
	Score      int       `json:"score" db:"score"`
	Confidence float64   `json:"confidence" db:"confidence"`
	Negated    bool      `json:"negated" db:"negated"`
	Factors    string    `json:"factors,omitempty" db:"factors"` // JSON array
	Narrative  string    `json:"narrative,omitempty" db:"narrative"`
	IPAddress  string    `json:"-" db:"ip_address"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// HistoryStats summarizes stored readings
type HistoryStats struct {
	TotalReadings int            `json:"total_readings"`
	VerdictCounts map[string]int `json:"verdict_counts"`
	AverageScore  float64        `json:"average_score"`
	NegatedCount  int            `json:"negated_count"`
}

// NewReading creates a new reading record with a generated ID
func NewReading(question, category, polarity, verdict string, score int, confidence float64, negated bool, factors, narrative, ipAddress string) *Reading {
	return &Reading{
		ID:         uuid.New().String(),
		Question:   question,
		Category:   category,
		Polarity:   polarity,
		Verdict:    verdict,
		Score:      score,
		Confidence: confidence,
		Negated:    negated,
		Factors:    factors,
		Narrative:  narrative,
		IPAddress:  ipAddress,
		CreatedAt:  time.Now(),
	}
}
