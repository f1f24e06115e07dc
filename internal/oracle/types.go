package oracle

// Category is the topical bucket a question is classified into. Exactly one
// category is assigned per question; General is the fallback.
type Category string

const (
	Relationship  Category = "relationship"
	Career        Category = "career"
	Finance       Category = "finance"
	Communication Category = "communication"
	Conflict      Category = "conflict"
	Timing        Category = "timing"
	Health        Category = "health"
	Social        Category = "social"
	General       Category = "general"
	Creative      Category = "creative"
	Spiritual     Category = "spiritual"
)

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{
		Relationship, Career, Finance, Communication, Conflict,
		Timing, Health, Social, General, Creative, Spiritual,
	}
}

// Polarity is a directional reading of the question: push toward action,
// pull toward restraint, or neither.
type Polarity string

const (
	Push    Polarity = "push"
	Pull    Polarity = "pull"
	Neutral Polarity = "neutral"
)

// Verdict is the discrete outcome mapped from the clamped score.
type Verdict string

const (
	StronglyFavorable   Verdict = "strongly_favorable"
	MildlyFavorable     Verdict = "mildly_favorable"
	Ambiguous           Verdict = "ambiguous"
	MildlyUnfavorable   Verdict = "mildly_unfavorable"
	StronglyUnfavorable Verdict = "strongly_unfavorable"
	Unclassifiable      Verdict = "unclassifiable"
)

// FlipVerdict maps a verdict to its opposite. The mapping is involutive:
// flipping twice returns the original verdict.
func FlipVerdict(v Verdict) Verdict {
	switch v {
	case StronglyFavorable:
		return StronglyUnfavorable
	case MildlyFavorable:
		return MildlyUnfavorable
	case MildlyUnfavorable:
		return MildlyFavorable
	case StronglyUnfavorable:
		return StronglyFavorable
	default:
		return v
	}
}

// ScoringFactor is one attributable contribution to the final score.
type ScoringFactor struct {
	Description string `json:"description"`
	Points      int    `json:"points"`
	Source      string `json:"source"`
}

// ScoringResult is the engine's full output for one question.
type ScoringResult struct {
	Verdict    Verdict         `json:"verdict"`
	Score      int             `json:"score"`
	Category   Category        `json:"category"`
	Confidence float64         `json:"confidence"`
	Polarity   Polarity        `json:"polarity"`
	Negated    bool            `json:"negated"`
	Factors    []ScoringFactor `json:"factors"`
}
