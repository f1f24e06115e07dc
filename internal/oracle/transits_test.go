package oracle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

func TestScoreTransitsSkipsIrrelevantPlanets(t *testing.T) {
	e := newQuietEngine()

	ctx := &types.AstroContext{
		Transits: []types.TransitAspect{
			// Neither Neptune nor Uranus is in the career relevance set.
			{Transiting: types.Neptune, Natal: types.Uranus, Aspect: types.Square, Orb: 0.5, Applying: true},
		},
	}
	assert.Nil(t, e.scoreTransits(Career, ctx))
}

func TestScoreTransitsEmptyContext(t *testing.T) {
	e := newQuietEngine()
	assert.Nil(t, e.scoreTransits(Career, &types.AstroContext{}))
}

func TestScoreTransitsCapsAtMaxTransits(t *testing.T) {
	tun := DefaultTunables()
	tun.MaxTransits = 2
	tun.VarianceBound = 0
	e := NewEngineWithSource(tun, rand.NewSource(1))

	transit := types.TransitAspect{
		Transiting: types.Jupiter, Natal: types.Sun,
		Aspect: types.Trine, Orb: 1.0, Applying: false,
	}
	ctx := &types.AstroContext{
		Transits: []types.TransitAspect{transit, transit, transit, transit},
	}

	factors := e.scoreTransits(Career, ctx)
	assert.Len(t, factors, 2)
}

func TestConjunctionSignFollowsTransitingPlanet(t *testing.T) {
	e := newQuietEngine()

	tests := []struct {
		name       string
		transiting types.Planet
		positive   bool
	}{
		{name: "benefic conjunction is positive", transiting: types.Jupiter, positive: true},
		{name: "malefic conjunction is negative", transiting: types.Saturn, positive: false},
		{name: "neutral conjunction is mildly positive", transiting: types.Mercury, positive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &types.AstroContext{
				Transits: []types.TransitAspect{
					{Transiting: tt.transiting, Natal: types.Sun, Aspect: types.Conjunction, Orb: 1.0},
				},
			}
			factors := e.scoreTransits(Career, ctx)
			require.Len(t, factors, 1)
			if tt.positive {
				assert.Greater(t, factors[0].Points, 0)
			} else {
				assert.Less(t, factors[0].Points, 0)
			}
		})
	}
}

func TestTenseAspectsOutweighHarmoniousOnes(t *testing.T) {
	e := newQuietEngine()

	square := &types.AstroContext{
		Transits: []types.TransitAspect{
			{Transiting: types.Saturn, Natal: types.Sun, Aspect: types.Square, Orb: 1.0},
		},
	}
	trine := &types.AstroContext{
		Transits: []types.TransitAspect{
			{Transiting: types.Saturn, Natal: types.Sun, Aspect: types.Trine, Orb: 1.0},
		},
	}

	squareFactors := e.scoreTransits(Career, square)
	trineFactors := e.scoreTransits(Career, trine)
	require.Len(t, squareFactors, 1)
	require.Len(t, trineFactors, 1)

	assert.Greater(t, abs(squareFactors[0].Points), abs(trineFactors[0].Points),
		"caution must outweigh ease at equal orb")
}

func TestDualRelevanceAndApplyingScaleUp(t *testing.T) {
	e := newQuietEngine()

	single := &types.AstroContext{
		Transits: []types.TransitAspect{
			// Venus is not career-relevant, Sun is.
			{Transiting: types.Venus, Natal: types.Sun, Aspect: types.Trine, Orb: 2.0},
		},
	}
	dual := &types.AstroContext{
		Transits: []types.TransitAspect{
			{Transiting: types.Jupiter, Natal: types.Sun, Aspect: types.Trine, Orb: 2.0},
		},
	}
	dualApplying := &types.AstroContext{
		Transits: []types.TransitAspect{
			{Transiting: types.Jupiter, Natal: types.Sun, Aspect: types.Trine, Orb: 2.0, Applying: true},
		},
	}

	singlePts := e.scoreTransits(Career, single)[0].Points
	dualPts := e.scoreTransits(Career, dual)[0].Points
	dualApplyingPts := e.scoreTransits(Career, dualApplying)[0].Points

	assert.Greater(t, dualPts, singlePts)
	assert.Greater(t, dualApplyingPts, dualPts)
}

func TestOrbScale(t *testing.T) {
	e := newQuietEngine()

	assert.InDelta(t, 1.0, e.orbScale(0), 1e-9)
	assert.InDelta(t, 0.5, e.orbScale(4), 1e-9)
	assert.InDelta(t, 0.25, e.orbScale(8), 1e-9, "floor applies at max orb")
	assert.InDelta(t, 0.25, e.orbScale(30), 1e-9, "beyond max orb clamps to floor")
	assert.InDelta(t, 1.0, e.orbScale(-1), 1e-9, "negative orbs treated as exact")
}

func TestArcSeparation(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{name: "same point", a: 10, b: 10, expected: 0},
		{name: "simple difference", a: 10, b: 40, expected: 30},
		{name: "wraps at 180", a: 350, b: 10, expected: 20},
		{name: "opposition", a: 0, b: 180, expected: 180},
		{name: "across zero", a: 359, b: 1, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, arcSeparation(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.expected, arcSeparation(tt.b, tt.a), 1e-9)
		})
	}
}
