package oracle

import "strings"

// Classifier assigns exactly one category to a question with a banded
// confidence signal. It is deterministic: the same text always yields the
// same category and confidence.
type Classifier struct {
	registry *Registry
	tunables Tunables
}

// NewClassifier creates a classifier over the given registry and constants.
func NewClassifier(registry *Registry, tunables Tunables) *Classifier {
	return &Classifier{registry: registry, tunables: tunables}
}

// Classify maps question text to a category and a confidence in [0, 1].
//
// Each category is scored by counting keyword occurrences in the lower-cased
// question; substring containment for phrases, word-boundary matches for the
// registry's exact keywords. The strictly highest total wins; ties and
// zero-match inputs resolve to General. Confidence is banded, not continuous:
// any non-zero match is high, zero matches is low. Empty input is valid and
// resolves to General at low confidence.
func (c *Classifier) Classify(question string) (Category, float64) {
	text := strings.ToLower(question)

	best := General
	bestScore := 0
	tied := false

	for _, cat := range Categories() {
		score := c.matchCount(cat, text)
		switch {
		case score > bestScore:
			best = cat
			bestScore = score
			tied = false
		case score == bestScore && score > 0 && cat != best:
			tied = true
		}
	}

	if bestScore == 0 {
		return General, c.tunables.ConfidenceLow
	}
	if tied {
		// Ambiguous between categories; fall back but keep the high band,
		// since the text did match known vocabulary.
		return General, c.tunables.ConfidenceHigh
	}
	return best, c.tunables.ConfidenceHigh
}

func (c *Classifier) matchCount(cat Category, text string) int {
	meta := c.registry.Meta(cat)

	count := 0
	for _, kw := range meta.Keywords {
		count += strings.Count(text, kw)
	}
	for _, re := range c.registry.exactRes[cat] {
		count += len(re.FindAllStringIndex(text, -1))
	}
	return count
}
