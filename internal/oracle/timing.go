package oracle

import (
	"fmt"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// dayRulerTemperament classifies each day ruler as expansive (push),
// restraining (pull) or neither, for the polarity alignment check.
var dayRulerTemperament = map[types.Planet]Polarity{
	types.Sun:     Push,
	types.Mars:    Push,
	types.Jupiter: Push,
	types.Moon:    Pull,
	types.Saturn:  Pull,
	types.Neptune: Pull,
}

// scoreAlignment cross-checks the question's push/pull polarity against
// cosmic timing: the lunar waxing/waning state and the day ruler's
// temperament. Alignment with either is rewarded, mismatch penalized, and a
// push question during a Mars retrograde takes a further fixed penalty.
// Neutral questions have no directional bias to check.
func (e *Engine) scoreAlignment(polarity Polarity, ctx *types.AstroContext) []ScoringFactor {
	if polarity == Neutral {
		return nil
	}

	var factors []ScoringFactor

	if ctx.MoonPhase != "" {
		lunarWants := Pull
		lunarWord := "waning"
		if ctx.MoonPhase.Waxing() {
			lunarWants = Push
			lunarWord = "waxing"
		}
		if polarity == lunarWants {
			factors = append(factors, ScoringFactor{
				Description: fmt.Sprintf("%s intent flows with the %s moon", polarity, lunarWord),
				Points:      e.tunables.AlignmentBonus,
				Source:      "timing_alignment",
			})
		} else {
			factors = append(factors, ScoringFactor{
				Description: fmt.Sprintf("%s intent pushes against the %s moon", polarity, lunarWord),
				Points:      e.tunables.MisalignmentPenalty,
				Source:      "timing_alignment",
			})
		}
	}

	if temperament, ok := dayRulerTemperament[ctx.DayRuler]; ok {
		if polarity == temperament {
			factors = append(factors, ScoringFactor{
				Description: fmt.Sprintf("%s intent matches %s's temperament", polarity, ctx.DayRuler),
				Points:      e.tunables.AlignmentBonus,
				Source:      "timing_alignment",
			})
		} else {
			factors = append(factors, ScoringFactor{
				Description: fmt.Sprintf("%s intent runs counter to %s's temperament", polarity, ctx.DayRuler),
				Points:      e.tunables.MisalignmentPenalty,
				Source:      "timing_alignment",
			})
		}
	}

	if polarity == Push && ctx.Retrograde(types.Mars) {
		factors = append(factors, ScoringFactor{
			Description: "pushing forward while mars is retrograde",
			Points:      e.tunables.PushRetroPenalty,
			Source:      "timing_alignment",
		})
	}

	return factors
}
