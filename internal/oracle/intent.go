package oracle

import (
	"regexp"
	"strings"
)

// negationPatterns recognize negated modal phrasing. Matching is a boolean OR
// over the list; order carries no weight. Direct questions about reducing
// actions ("should I quit...", "should I wait...") are not negation, they are
// pull polarity — negation is asking whether to refrain from something else
// ("should I not...", "should I avoid...", "should I refuse...").
var negationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bshould\s+i\s+not\b`),
	regexp.MustCompile(`\bshouldn'?t\s+i\b`),
	regexp.MustCompile(`\bshould\s+i\s+(avoid|skip|stop|refuse|reject|delay|stay\s+away)\b`),
	regexp.MustCompile(`\bis\s+it\s+a\s+bad\s+(idea|time)\b`),
	regexp.MustCompile(`\bdon'?t\s+i\b`),
	regexp.MustCompile(`\bavoid\b`),
	regexp.MustCompile(`\bstay\s+away\b`),
}

// pushKeywords intensify an activity, pullKeywords reduce one. The polarity
// vote is a plain majority; no keyword is weighted above another.
var pushKeywords = []string{
	"start", "begin", "launch", "extra", "more", "confront", "invest",
	"gamble", "commit", "hustle", "push", "grow", "expand", "ask for",
	"pursue", "accelerate", "double down", "go all in",
}

var pullKeywords = []string{
	"rest", "quit", "decline", "wait", "slow down", "pause", "postpone",
	"cancel", "skip", "withdraw", "step back", "take a break", "give up",
	"hold off", "less",
}

// HasNegativeIntent reports whether the question asks about refraining from
// an action rather than taking one. The aggregator inverts the verdict and
// score when this is set.
func HasNegativeIntent(question string) bool {
	text := strings.ToLower(question)
	for _, re := range negationPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// DetectPolarity reads the question's directional bias. Strictly more push
// matches yields Push, strictly more pull matches yields Pull; equality,
// including zero matches on both sides, is Neutral.
func DetectPolarity(question string) Polarity {
	text := strings.ToLower(question)

	pushes := 0
	for _, kw := range pushKeywords {
		pushes += strings.Count(text, kw)
	}
	pulls := 0
	for _, kw := range pullKeywords {
		pulls += strings.Count(text, kw)
	}

	switch {
	case pushes > pulls:
		return Push
	case pulls > pushes:
		return Pull
	default:
		return Neutral
	}
}
