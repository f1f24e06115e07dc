package oracle

import (
	"fmt"
	"math"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// scoreTransits scores the active transit aspects that touch the category's
// relevance set. Transits arrive pre-sorted by significance, so only the
// first MaxTransits are considered.
//
// Base points per aspect type come from the tunable table; tense aspects are
// deliberately heavier than harmonious ones. A conjunction takes its sign
// from the transiting planet's benefic/malefic classification. Points fade
// linearly as orb widens toward MaxOrb, grow when both ends of the aspect are
// category-relevant, and grow again when the aspect is applying.
func (e *Engine) scoreTransits(cat Category, ctx *types.AstroContext) []ScoringFactor {
	if len(ctx.Transits) == 0 {
		return nil
	}

	transits := ctx.Transits
	if len(transits) > e.tunables.MaxTransits {
		transits = transits[:e.tunables.MaxTransits]
	}

	var factors []ScoringFactor
	for _, tr := range transits {
		transitRelevant := e.registry.Relevant(cat, tr.Transiting)
		natalRelevant := e.registry.Relevant(cat, tr.Natal)
		if !transitRelevant && !natalRelevant {
			continue
		}

		base := e.aspectBase(tr)
		if base == 0 {
			continue
		}

		points := float64(base) * e.orbScale(tr.Orb)
		if transitRelevant && natalRelevant {
			points *= e.tunables.DualRelevanceScale
		}
		if tr.Applying {
			points *= e.tunables.ApplyingScale
		}

		rounded := int(math.Round(points))
		if rounded == 0 {
			continue
		}

		state := "separating"
		if tr.Applying {
			state = "applying"
		}
		factors = append(factors, ScoringFactor{
			Description: fmt.Sprintf("%s %s to natal %s (%.1f° orb, %s)",
				tr.Transiting, tr.Aspect, tr.Natal, tr.Orb, state),
			Points: rounded,
			Source: "transits",
		})
	}
	return factors
}

func (e *Engine) aspectBase(tr types.TransitAspect) int {
	if tr.Aspect == types.Conjunction {
		switch {
		case tr.Transiting.Benefic():
			return e.tunables.ConjunctionBenefic
		case tr.Transiting.Malefic():
			return e.tunables.ConjunctionMalefic
		default:
			return e.tunables.ConjunctionNeutral
		}
	}
	return e.tunables.AspectPoints[tr.Aspect]
}

// orbScale fades influence linearly from 1 at exact aspect to MinOrbScale at
// MaxOrb. Orbs beyond the maximum are treated as the maximum; the ephemeris
// collaborator should not emit them.
func (e *Engine) orbScale(orb float64) float64 {
	if orb < 0 {
		orb = 0
	}
	if orb > e.tunables.MaxOrb {
		orb = e.tunables.MaxOrb
	}
	scale := 1 - orb/e.tunables.MaxOrb
	if scale < e.tunables.MinOrbScale {
		scale = e.tunables.MinOrbScale
	}
	return scale
}
