package narrative

import (
	"fmt"
	"strings"

	"github.com/astralhq/cosmic-counsel/internal/oracle"
)

// Generator composes user-facing prose from a structured scoring result.
// Output is deterministic for a given result.
type Generator struct{}

// NewGenerator creates a narrative generator
func NewGenerator() *Generator {
	return &Generator{}
}

var verdictOpeners = map[oracle.Verdict][]string{
	oracle.StronglyFavorable: {
		"The heavens align emphatically in your favor.",
		"Rarely do the stars speak with such clarity.",
		"A strong current of cosmic support runs beneath this question.",
	},
	oracle.MildlyFavorable: {
		"The signs lean gently toward yes.",
		"A favorable breeze stirs, though not a gale.",
		"The omens are encouraging, if understated.",
	},
	oracle.Ambiguous: {
		"The sky offers no firm answer today.",
		"The signals cross and cancel; the heavens hold their counsel.",
		"Neither blessing nor warning dominates this chart.",
	},
	oracle.MildlyUnfavorable: {
		"A note of caution threads through the stars.",
		"The signs lean away, softly but noticeably.",
		"The chart counsels patience over action.",
	},
	oracle.StronglyUnfavorable: {
		"The heavens counsel strongly against this course.",
		"Stern aspects dominate this chart.",
		"The stars close ranks against the question.",
	},
	oracle.Unclassifiable: {
		"Your question drifts beyond the reach of the chart.",
		"The stars cannot find a shape in this question.",
	},
}

var categoryPhrases = map[oracle.Category]string{
	oracle.Relationship:  "matters of the heart",
	oracle.Career:        "your working life",
	oracle.Finance:       "money and material affairs",
	oracle.Communication: "words and messages",
	oracle.Conflict:      "confrontation and friction",
	oracle.Timing:        "the timing of this undertaking",
	oracle.Health:        "body and vitality",
	oracle.Social:        "your social sphere",
	oracle.Creative:      "creative endeavors",
	oracle.Spiritual:     "the inner path",
	oracle.General:       "the question you carry",
}

// Compose renders a short narrative for a reading
func (g *Generator) Compose(result *oracle.ScoringResult) string {
	openers := verdictOpeners[result.Verdict]
	if len(openers) == 0 {
		openers = verdictOpeners[oracle.Ambiguous]
	}
	// Deterministic pick keyed on the score keeps repeated readings varied
	// without a random source.
	idx := abs(result.Score) % len(openers)

	var b strings.Builder
	b.WriteString(openers[idx])

	phrase := categoryPhrases[result.Category]
	if phrase == "" {
		phrase = categoryPhrases[oracle.General]
	}

	if result.Verdict == oracle.Unclassifiable {
		b.WriteString(" Ask again with a clearer intention, and the chart may answer.")
		return b.String()
	}

	fmt.Fprintf(&b, " Concerning %s, the chart settles at %+d.", phrase, result.Score)

	if top := dominantFactors(result.Factors, 2); len(top) > 0 {
		b.WriteString(" Most influential: ")
		b.WriteString(strings.Join(top, "; "))
		b.WriteString(".")
	}

	if result.Negated {
		b.WriteString(" Because you asked about holding back, the reading is given for restraint rather than action.")
	}

	return b.String()
}

// dominantFactors returns the descriptions of the strongest factors,
// skipping zero-point entries.
func dominantFactors(factors []oracle.ScoringFactor, n int) []string {
	out := make([]string, 0, n)
	for _, f := range factors {
		if f.Points == 0 {
			continue
		}
		out = append(out, f.Description)
		if len(out) == n {
			break
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
