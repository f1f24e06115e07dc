package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralhq/cosmic-counsel/internal/oracle"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func testReading(question, verdict string, score int, createdAt time.Time) *Reading {
	r := NewReading(question, "career", "push", verdict, score, 0.8, false, "[]", "the stars say so", "127.0.0.1")
	r.CreatedAt = createdAt
	return r
}

func TestSaveAndGetReading(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	reading := testReading("Should I ask for a raise?", "mildly_favorable", 40, time.Now())
	require.NoError(t, repo.SaveReading(reading))

	got, err := repo.GetReading(reading.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, reading.ID, got.ID)
	assert.Equal(t, reading.Question, got.Question)
	assert.Equal(t, "career", got.Category)
	assert.Equal(t, "push", got.Polarity)
	assert.Equal(t, "mildly_favorable", got.Verdict)
	assert.Equal(t, 40, got.Score)
	assert.InDelta(t, 0.8, got.Confidence, 0.001)
	assert.False(t, got.Negated)
	assert.Equal(t, "the stars say so", got.Narrative)
}

func TestGetReadingMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	got, err := repo.GetReading("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		r := testReading("question", "ambiguous", i, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.SaveReading(r))
	}

	readings, err := repo.ListRecent(3)
	require.NoError(t, err)
	require.Len(t, readings, 3)

	assert.Equal(t, 4, readings[0].Score)
	assert.Equal(t, 3, readings[1].Score)
	assert.Equal(t, 2, readings[2].Score)
}

func TestListRecentDefaultLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	readings, err := repo.ListRecent(0)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestDeleteByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	reading := testReading("delete me", "ambiguous", 0, time.Now())
	require.NoError(t, repo.SaveReading(reading))

	deleted, err := repo.DeleteByID(reading.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetReading(reading.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.DeleteByID(reading.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	now := time.Now()
	require.NoError(t, repo.SaveReading(testReading("q1", "strongly_favorable", 80, now)))
	require.NoError(t, repo.SaveReading(testReading("q2", "strongly_favorable", 60, now)))
	require.NoError(t, repo.SaveReading(testReading("q3", "ambiguous", 10, now)))

	negated := testReading("q4", "mildly_unfavorable", -30, now)
	negated.Negated = true
	require.NoError(t, repo.SaveReading(negated))

	stats, err := repo.Stats()
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalReadings)
	assert.Equal(t, 2, stats.VerdictCounts["strongly_favorable"])
	assert.Equal(t, 1, stats.VerdictCounts["ambiguous"])
	assert.Equal(t, 1, stats.VerdictCounts["mildly_unfavorable"])
	assert.InDelta(t, 30.0, stats.AverageScore, 0.001)
	assert.Equal(t, 1, stats.NegatedCount)
}

func TestStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	stats, err := repo.Stats()
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalReadings)
	assert.Empty(t, stats.VerdictCounts)
	assert.Zero(t, stats.AverageScore)
}

func TestServiceRecordMarshalsFactors(t *testing.T) {
	db := newTestDB(t)
	svc := NewReadingService(NewRepository(db))

	result := &oracle.ScoringResult{
		Verdict:    oracle.MildlyFavorable,
		Score:      42,
		Category:   oracle.Career,
		Confidence: 0.8,
		Polarity:   oracle.Push,
		Factors: []oracle.ScoringFactor{
			{Description: "Jupiter trine natal Sun", Points: 12, Source: "transit"},
		},
	}

	reading, err := svc.Record("Should I ask for a raise?", result, "fortune smiles", "127.0.0.1")
	require.NoError(t, err)

	got, err := NewRepository(db).GetReading(reading.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Contains(t, got.Factors, "Jupiter trine natal Sun")
	assert.Equal(t, "fortune smiles", got.Narrative)
	assert.Equal(t, string(oracle.Career), got.Category)
}
