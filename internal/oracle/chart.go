package oracle

import (
	"fmt"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// scoreRetrogrades penalizes retrograde planets, but only the ones the
// category's severity map names. A communication-ruling retrograde hits
// communication and timing questions harder than, say, health ones; a
// retrograde nobody in the map cares about contributes nothing.
func (e *Engine) scoreRetrogrades(cat Category, ctx *types.AstroContext) []ScoringFactor {
	if len(ctx.Retrogrades) == 0 {
		return nil
	}

	penalties := e.registry.Meta(cat).RetroPenalties

	var factors []ScoringFactor
	for _, p := range ctx.Retrogrades {
		points, ok := penalties[p]
		if !ok || points == 0 {
			continue
		}
		factors = append(factors, ScoringFactor{
			Description: fmt.Sprintf("%s retrograde clouds %s matters", p, cat),
			Points:      points,
			Source:      "retrograde",
		})
	}
	return factors
}

// scoreDayRuler applies the day-of-week ruler's row of the category matrix.
// A positive bonus is halved when classification confidence sits below the
// solid threshold, so a weakly-matched question does not benefit fully from
// incidental timing. Penalties are never softened.
func (e *Engine) scoreDayRuler(cat Category, confidence float64, ctx *types.AstroContext) []ScoringFactor {
	if ctx.DayRuler == "" {
		return nil
	}

	points := e.registry.DayRulerPoints(ctx.DayRuler, cat)
	if points == 0 {
		return nil
	}

	desc := fmt.Sprintf("%s rules today and favors %s matters", ctx.DayRuler, cat)
	if points > 0 && confidence < e.tunables.ConfidenceSolid {
		points /= 2
		desc = fmt.Sprintf("%s rules today and mildly favors %s matters", ctx.DayRuler, cat)
	}
	if points < 0 {
		desc = fmt.Sprintf("%s rules today and resists %s matters", ctx.DayRuler, cat)
	}
	if points == 0 {
		return nil
	}

	return []ScoringFactor{{
		Description: desc,
		Points:      points,
		Source:      "day_ruler",
	}}
}

// scoreDignities multiplies each category-relevant natal planet's dignity
// strength by a fixed constant. Peregrine (neutral) placements carry zero
// strength and drop out naturally.
func (e *Engine) scoreDignities(cat Category, ctx *types.AstroContext) []ScoringFactor {
	if len(ctx.Dignities) == 0 {
		return nil
	}

	var factors []ScoringFactor
	for _, d := range ctx.Dignities {
		if !e.registry.Relevant(cat, d.Planet) || d.Strength == 0 {
			continue
		}
		points := d.Strength * e.tunables.DignityMultiplier
		factors = append(factors, ScoringFactor{
			Description: fmt.Sprintf("natal %s is %s", d.Planet, d.Grade),
			Points:      points,
			Source:      "dignity",
		})
	}
	return factors
}

// scorePatterns applies fixed deltas for named natal configurations, gated
// on at least one involved planet being category-relevant. Stressful
// patterns cost more than harmonious ones pay, mirroring the transit
// asymmetry.
func (e *Engine) scorePatterns(cat Category, ctx *types.AstroContext) []ScoringFactor {
	if len(ctx.Patterns) == 0 {
		return nil
	}

	var factors []ScoringFactor
	for _, pat := range ctx.Patterns {
		points, ok := e.tunables.PatternPoints[pat.Name]
		if !ok || points == 0 {
			continue
		}

		involved := false
		for _, p := range pat.Planets {
			if e.registry.Relevant(cat, p) {
				involved = true
				break
			}
		}
		if !involved {
			continue
		}

		factors = append(factors, ScoringFactor{
			Description: fmt.Sprintf("natal %s touches %s matters", pat.Name, cat),
			Points:      points,
			Source:      "pattern",
		})
	}
	return factors
}
