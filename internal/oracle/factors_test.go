package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

func TestScoreRetrogrades(t *testing.T) {
	e := newQuietEngine()

	tests := []struct {
		name        string
		category    Category
		retrogrades []types.Planet
		expectedPts []int
	}{
		{
			name:        "mercury retrograde hits communication hardest",
			category:    Communication,
			retrogrades: []types.Planet{types.Mercury},
			expectedPts: []int{-12},
		},
		{
			name:        "mercury retrograde hits career less",
			category:    Career,
			retrogrades: []types.Planet{types.Mercury},
			expectedPts: []int{-8},
		},
		{
			name:        "irrelevant retrograde contributes nothing",
			category:    Communication,
			retrogrades: []types.Planet{types.Pluto},
			expectedPts: nil,
		},
		{
			name:        "multiple relevant retrogrades stack",
			category:    Finance,
			retrogrades: []types.Planet{types.Venus, types.Jupiter},
			expectedPts: []int{-8, -6},
		},
		{
			name:        "no retrogrades",
			category:    Career,
			retrogrades: nil,
			expectedPts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &types.AstroContext{Retrogrades: tt.retrogrades}
			factors := e.scoreRetrogrades(tt.category, ctx)
			require.Len(t, factors, len(tt.expectedPts))
			for i, pts := range tt.expectedPts {
				assert.Equal(t, pts, factors[i].Points)
				assert.Equal(t, "retrograde", factors[i].Source)
			}
		})
	}
}

func TestScoreMoonPhase(t *testing.T) {
	e := newQuietEngine()

	total := 0
	positive, negative := 0, 0
	for phase, expected := range DefaultTunables().PhasePoints {
		factors := e.scoreMoonPhase(&types.AstroContext{MoonPhase: phase})
		require.Len(t, factors, 1, "phase %s", phase)
		assert.Equal(t, expected, factors[0].Points)
		total += factors[0].Points
		if factors[0].Points > 0 {
			positive++
		} else {
			negative++
		}
	}

	// Mixed-sign by design so no half of the cycle dominates.
	assert.Greater(t, positive, 0)
	assert.Greater(t, negative, 0)
	assert.LessOrEqual(t, abs(total), 5, "phase table should stay near neutral overall")

	assert.Nil(t, e.scoreMoonPhase(&types.AstroContext{}), "unknown phase is not applicable")
}

func TestScoreMoonSign(t *testing.T) {
	e := newQuietEngine()

	helpful := e.scoreMoonSign(Relationship, &types.AstroContext{MoonSign: types.Libra})
	require.Len(t, helpful, 1)
	assert.Equal(t, DefaultTunables().MoonSignHelp, helpful[0].Points)

	hindering := e.scoreMoonSign(Relationship, &types.AstroContext{MoonSign: types.Capricorn})
	require.Len(t, hindering, 1)
	assert.Equal(t, DefaultTunables().MoonSignHinder, hindering[0].Points)

	assert.Nil(t, e.scoreMoonSign(Relationship, &types.AstroContext{MoonSign: types.Gemini}),
		"sign in neither table contributes nothing")
	assert.Nil(t, e.scoreMoonSign(Relationship, &types.AstroContext{}))
}

func TestScoreDayRuler(t *testing.T) {
	e := newQuietEngine()
	tun := DefaultTunables()

	t.Run("positive bonus at solid confidence", func(t *testing.T) {
		factors := e.scoreDayRuler(Relationship, tun.ConfidenceHigh, &types.AstroContext{DayRuler: types.Venus})
		require.Len(t, factors, 1)
		assert.Equal(t, 6, factors[0].Points)
	})

	t.Run("positive bonus halved at low confidence", func(t *testing.T) {
		factors := e.scoreDayRuler(Relationship, 0.4, &types.AstroContext{DayRuler: types.Venus})
		require.Len(t, factors, 1)
		assert.Equal(t, 3, factors[0].Points, "reduced, not dropped")
	})

	t.Run("penalty never softened", func(t *testing.T) {
		factors := e.scoreDayRuler(Conflict, 0.4, &types.AstroContext{DayRuler: types.Venus})
		require.Len(t, factors, 1)
		assert.Equal(t, -4, factors[0].Points)
	})

	t.Run("no matrix entry contributes nothing", func(t *testing.T) {
		assert.Nil(t, e.scoreDayRuler(Spiritual, tun.ConfidenceHigh, &types.AstroContext{DayRuler: types.Venus}))
	})

	t.Run("missing day ruler is not applicable", func(t *testing.T) {
		assert.Nil(t, e.scoreDayRuler(Relationship, tun.ConfidenceHigh, &types.AstroContext{}))
	})
}

func TestEveryDayRulerHasBothSigns(t *testing.T) {
	r := NewRegistry()

	for planet, row := range r.dayRuler {
		hasPositive, hasNegative := false, false
		for _, pts := range row {
			if pts > 0 {
				hasPositive = true
			}
			if pts < 0 {
				hasNegative = true
			}
		}
		assert.True(t, hasPositive, "%s needs a favored category", planet)
		assert.True(t, hasNegative, "%s needs a resisted category", planet)
	}
}

func TestScoreDignities(t *testing.T) {
	e := newQuietEngine()

	ctx := &types.AstroContext{
		Dignities: []types.Dignity{
			{Planet: types.Venus, Grade: types.Exalted, Strength: 2},
			{Planet: types.Mars, Grade: types.Fall, Strength: -2},
			{Planet: types.Moon, Grade: types.Peregrine, Strength: 0},
			{Planet: types.Mercury, Grade: types.Domicile, Strength: 3},
		},
	}

	factors := e.scoreDignities(Relationship, ctx)
	// Venus and Mars are relationship-relevant; peregrine Moon is zero
	// strength and Mercury is out of set.
	require.Len(t, factors, 2)
	assert.Equal(t, 6, factors[0].Points)
	assert.Equal(t, -6, factors[1].Points)

	assert.Nil(t, e.scoreDignities(Relationship, &types.AstroContext{}))
}

func TestScorePatterns(t *testing.T) {
	e := newQuietEngine()
	tun := DefaultTunables()

	tests := []struct {
		name     string
		category Category
		pattern  types.Pattern
		expected int
	}{
		{
			name:     "grand trine with relevant planet",
			category: Career,
			pattern:  types.Pattern{Name: types.GrandTrine, Planets: []types.Planet{types.Sun, types.Neptune, types.Uranus}},
			expected: tun.PatternPoints[types.GrandTrine],
		},
		{
			name:     "t-square with relevant planet",
			category: Conflict,
			pattern:  types.Pattern{Name: types.TSquare, Planets: []types.Planet{types.Mars, types.Moon, types.Venus}},
			expected: tun.PatternPoints[types.TSquare],
		},
		{
			name:     "pattern with no relevant planet is skipped",
			category: Communication,
			pattern:  types.Pattern{Name: types.GrandCross, Planets: []types.Planet{types.Sun, types.Moon, types.Venus, types.Mars}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &types.AstroContext{Patterns: []types.Pattern{tt.pattern}}
			factors := e.scorePatterns(tt.category, ctx)
			if tt.expected == 0 {
				assert.Empty(t, factors)
				return
			}
			require.Len(t, factors, 1)
			assert.Equal(t, tt.expected, factors[0].Points)
		})
	}
}

func TestStressfulPatternsOutweighHarmonious(t *testing.T) {
	tun := DefaultTunables()
	assert.Greater(t, abs(tun.PatternPoints[types.TSquare]), abs(tun.PatternPoints[types.GrandTrine]))
	assert.Greater(t, abs(tun.PatternPoints[types.GrandCross]), abs(tun.PatternPoints[types.GrandTrine]))
}

func TestScoreNodes(t *testing.T) {
	e := newQuietEngine()
	tun := DefaultTunables()

	t.Run("moon near north node", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions: map[types.Planet]float64{types.Moon: 100},
			NorthNode: 103, SouthNode: 283,
		}
		factors := e.scoreNodes(ctx)
		require.Len(t, factors, 1)
		assert.Equal(t, tun.NorthNodePoints, factors[0].Points)
	})

	t.Run("moon near south node", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions: map[types.Planet]float64{types.Moon: 280},
			NorthNode: 100, SouthNode: 283,
		}
		factors := e.scoreNodes(ctx)
		require.Len(t, factors, 1)
		assert.Equal(t, tun.SouthNodePoints, factors[0].Points)
	})

	t.Run("node match wraps across zero", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions: map[types.Planet]float64{types.Moon: 358},
			NorthNode: 2, SouthNode: 182,
		}
		factors := e.scoreNodes(ctx)
		require.Len(t, factors, 1)
		assert.Equal(t, tun.NorthNodePoints, factors[0].Points)
	})

	t.Run("moon far from both nodes", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions: map[types.Planet]float64{types.Moon: 50},
			NorthNode: 150, SouthNode: 330,
		}
		assert.Nil(t, e.scoreNodes(ctx))
	})

	t.Run("missing moon position is not applicable", func(t *testing.T) {
		assert.Nil(t, e.scoreNodes(&types.AstroContext{NorthNode: 100}))
	})
}

func TestScoreFortune(t *testing.T) {
	e := newQuietEngine()
	tun := DefaultTunables()

	t.Run("benefic conjunct fortune point", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions:    map[types.Planet]float64{types.Jupiter: 201},
			FortunePoint: 200,
		}
		factors := e.scoreFortune(ctx)
		require.Len(t, factors, 1)
		assert.Equal(t, tun.FortuneBenefic, factors[0].Points)
	})

	t.Run("malefic conjunct fortune point weighs more", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions:    map[types.Planet]float64{types.Saturn: 199},
			FortunePoint: 200,
		}
		factors := e.scoreFortune(ctx)
		require.Len(t, factors, 1)
		assert.Equal(t, tun.FortuneMalefic, factors[0].Points)
		assert.Greater(t, abs(tun.FortuneMalefic), abs(tun.FortuneBenefic))
	})

	t.Run("neutral planet contributes nothing", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions:    map[types.Planet]float64{types.Mercury: 200},
			FortunePoint: 200,
		}
		assert.Nil(t, e.scoreFortune(ctx))
	})

	t.Run("out of orb contributes nothing", func(t *testing.T) {
		ctx := &types.AstroContext{
			Positions:    map[types.Planet]float64{types.Jupiter: 220},
			FortunePoint: 200,
		}
		assert.Nil(t, e.scoreFortune(ctx))
	})

	t.Run("no positions is not applicable", func(t *testing.T) {
		assert.Nil(t, e.scoreFortune(&types.AstroContext{FortunePoint: 200}))
	})
}

func TestScoreAlignment(t *testing.T) {
	e := newQuietEngine()
	tun := DefaultTunables()

	t.Run("push with waxing moon and expansive ruler", func(t *testing.T) {
		ctx := &types.AstroContext{MoonPhase: types.WaxingCrescent, DayRuler: types.Mars}
		factors := e.scoreAlignment(Push, ctx)
		require.Len(t, factors, 2)
		assert.Equal(t, tun.AlignmentBonus, factors[0].Points)
		assert.Equal(t, tun.AlignmentBonus, factors[1].Points)
	})

	t.Run("push against waning moon and restraining ruler", func(t *testing.T) {
		ctx := &types.AstroContext{MoonPhase: types.WaningGibbous, DayRuler: types.Saturn}
		factors := e.scoreAlignment(Push, ctx)
		require.Len(t, factors, 2)
		assert.Equal(t, tun.MisalignmentPenalty, factors[0].Points)
		assert.Equal(t, tun.MisalignmentPenalty, factors[1].Points)
	})

	t.Run("pull with waning moon", func(t *testing.T) {
		ctx := &types.AstroContext{MoonPhase: types.LastQuarter}
		factors := e.scoreAlignment(Pull, ctx)
		require.Len(t, factors, 1)
		assert.Equal(t, tun.AlignmentBonus, factors[0].Points)
	})

	t.Run("push during mars retrograde takes extra penalty", func(t *testing.T) {
		ctx := &types.AstroContext{
			MoonPhase:   types.WaxingCrescent,
			Retrogrades: []types.Planet{types.Mars},
		}
		factors := e.scoreAlignment(Push, ctx)
		require.Len(t, factors, 2)
		assert.Equal(t, tun.PushRetroPenalty, factors[1].Points)
	})

	t.Run("neutral polarity is not applicable", func(t *testing.T) {
		ctx := &types.AstroContext{MoonPhase: types.WaxingCrescent, DayRuler: types.Mars}
		assert.Nil(t, e.scoreAlignment(Neutral, ctx))
	})

	t.Run("empty context yields nothing", func(t *testing.T) {
		assert.Nil(t, e.scoreAlignment(Push, &types.AstroContext{}))
	})
}
