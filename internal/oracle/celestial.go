package oracle

import (
	"fmt"
	"math"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// scoreMoonPhase applies the fixed eight-phase lookup. Values are small and
// mixed-sign so the engine never develops a standing preference for new or
// full moons. An unknown phase name is not applicable rather than an error.
func (e *Engine) scoreMoonPhase(ctx *types.AstroContext) []ScoringFactor {
	points, ok := e.tunables.PhasePoints[ctx.MoonPhase]
	if !ok || points == 0 {
		return nil
	}
	return []ScoringFactor{{
		Description: fmt.Sprintf("moon in %s phase", ctx.MoonPhase),
		Points:      points,
		Source:      "moon_phase",
	}}
}

// scoreMoonSign checks the Moon's sign against the category's helpful and
// hindering sign tables. A sign in neither table contributes nothing.
func (e *Engine) scoreMoonSign(cat Category, ctx *types.AstroContext) []ScoringFactor {
	if ctx.MoonSign == "" {
		return nil
	}

	meta := e.registry.Meta(cat)
	switch {
	case meta.HelpfulSigns[ctx.MoonSign]:
		return []ScoringFactor{{
			Description: fmt.Sprintf("moon in %s supports %s matters", ctx.MoonSign, cat),
			Points:      e.tunables.MoonSignHelp,
			Source:      "moon_sign",
		}}
	case meta.HinderingSigns[ctx.MoonSign]:
		return []ScoringFactor{{
			Description: fmt.Sprintf("moon in %s works against %s matters", ctx.MoonSign, cat),
			Points:      e.tunables.MoonSignHinder,
			Source:      "moon_sign",
		}}
	}
	return nil
}

// scoreNodes checks the Moon's separation from each lunar node. A small-orb
// match to the ascending node reads as alignment with growth; the descending
// node is a mild drag, not a hard penalty.
func (e *Engine) scoreNodes(ctx *types.AstroContext) []ScoringFactor {
	moonLon, ok := ctx.Positions[types.Moon]
	if !ok {
		return nil
	}

	var factors []ScoringFactor
	if sep := arcSeparation(moonLon, ctx.NorthNode); sep <= e.tunables.NodeOrb {
		factors = append(factors, ScoringFactor{
			Description: fmt.Sprintf("moon within %.1f° of the north node", sep),
			Points:      e.tunables.NorthNodePoints,
			Source:      "lunar_nodes",
		})
	}
	if sep := arcSeparation(moonLon, ctx.SouthNode); sep <= e.tunables.NodeOrb {
		factors = append(factors, ScoringFactor{
			Description: fmt.Sprintf("moon within %.1f° of the south node", sep),
			Points:      e.tunables.SouthNodePoints,
			Source:      "lunar_nodes",
		})
	}
	return factors
}

// scoreFortune looks for transiting planets conjunct the part of fortune.
// A malefic sitting on the fortune point outweighs a benefic boosting it.
func (e *Engine) scoreFortune(ctx *types.AstroContext) []ScoringFactor {
	if len(ctx.Positions) == 0 {
		return nil
	}

	var factors []ScoringFactor
	for _, p := range planetOrder {
		lon, ok := ctx.Positions[p]
		if !ok {
			continue
		}
		sep := arcSeparation(lon, ctx.FortunePoint)
		if sep > e.tunables.FortuneOrb {
			continue
		}
		switch {
		case p.Benefic():
			factors = append(factors, ScoringFactor{
				Description: fmt.Sprintf("%s conjunct the part of fortune (%.1f°)", p, sep),
				Points:      e.tunables.FortuneBenefic,
				Source:      "fortune_point",
			})
		case p.Malefic():
			factors = append(factors, ScoringFactor{
				Description: fmt.Sprintf("%s pressing on the part of fortune (%.1f°)", p, sep),
				Points:      e.tunables.FortuneMalefic,
				Source:      "fortune_point",
			})
		}
	}
	return factors
}

// planetOrder fixes iteration order over position maps so factor output is
// deterministic for identical input.
var planetOrder = []types.Planet{
	types.Sun, types.Moon, types.Mercury, types.Venus, types.Mars,
	types.Jupiter, types.Saturn, types.Uranus, types.Neptune, types.Pluto,
}

// arcSeparation returns the shortest angular distance between two ecliptic
// longitudes, wrapping at 180 degrees.
func arcSeparation(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
