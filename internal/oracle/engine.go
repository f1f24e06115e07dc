package oracle

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// Engine runs the full classification-and-scoring pipeline. It holds only
// immutable configuration plus the injected random source; every call is
// independent and no state survives between calls. One instance serves
// concurrent requests, so the variance generator is guarded by a mutex
// (rand.Rand itself is not safe for concurrent use).
type Engine struct {
	registry   *Registry
	tunables   Tunables
	classifier *Classifier

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates an engine with the shipped registry and a time-seeded
// variance source.
func NewEngine(tunables Tunables) *Engine {
	return NewEngineWithSource(tunables, rand.NewSource(time.Now().UnixNano()))
}

// NewEngineWithSource creates an engine with an explicit random source so
// tests can pin a seed and assert exact scores.
func NewEngineWithSource(tunables Tunables, src rand.Source) *Engine {
	registry := NewRegistry()
	return &Engine{
		registry:   registry,
		tunables:   tunables,
		classifier: NewClassifier(registry, tunables),
		rng:        rand.New(src),
	}
}

// Classifier exposes the engine's classifier for callers that only need
// category resolution.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Score converts a question plus an astrological context into a verdict. It
// never fails: input ambiguity resolves to the Unclassifiable verdict, and
// missing optional context fields make individual scorers not applicable.
func (e *Engine) Score(question string, ctx *types.AstroContext) ScoringResult {
	category, confidence := e.classifier.Classify(question)
	negated := HasNegativeIntent(question)
	polarity := DetectPolarity(question)

	// Too vague to read: no scorer runs, including variance.
	if confidence < e.tunables.ConfidenceFloor {
		return ScoringResult{
			Verdict:    Unclassifiable,
			Score:      0,
			Category:   category,
			Confidence: confidence,
			Polarity:   polarity,
			Negated:    negated,
			Factors: []ScoringFactor{{
				Description: "the question is too vague to match any known theme",
				Points:      0,
				Source:      "classifier",
			}},
		}
	}

	var factors []ScoringFactor
	if confidence < e.tunables.ConfidenceSolid {
		factors = append(factors, ScoringFactor{
			Description: "the question only weakly matches its theme",
			Points:      e.tunables.WeakSignalPenalty,
			Source:      "classifier",
		})
	}

	if ctx != nil {
		factors = append(factors, e.scoreTransits(category, ctx)...)
		factors = append(factors, e.scoreRetrogrades(category, ctx)...)
		factors = append(factors, e.scoreMoonPhase(ctx)...)
		factors = append(factors, e.scoreMoonSign(category, ctx)...)
		factors = append(factors, e.scoreDayRuler(category, confidence, ctx)...)
		factors = append(factors, e.scoreDignities(category, ctx)...)
		factors = append(factors, e.scorePatterns(category, ctx)...)
		factors = append(factors, e.scoreNodes(ctx)...)
		factors = append(factors, e.scoreFortune(ctx)...)
		factors = append(factors, e.scoreAlignment(polarity, ctx)...)
	}

	factors = append(factors, e.varianceFactor())

	total := 0
	for _, f := range factors {
		total += f.Points
	}
	score := clampScore(total, e.tunables.ScoreMin, e.tunables.ScoreMax)

	verdict := e.verdictFor(score)
	if negated {
		verdict = FlipVerdict(verdict)
		score = -score
	}

	// Sort for display prioritization only; the sum is already fixed.
	sort.SliceStable(factors, func(i, j int) bool {
		return abs(factors[i].Points) > abs(factors[j].Points)
	})

	return ScoringResult{
		Verdict:    verdict,
		Score:      score,
		Category:   category,
		Confidence: confidence,
		Polarity:   polarity,
		Negated:    negated,
		Factors:    factors,
	}
}

// varianceFactor draws the bounded "cosmic variance" term, the engine's only
// non-determinism. It is always emitted, even at zero, so the factor list is
// never empty.
func (e *Engine) varianceFactor() ScoringFactor {
	bound := e.tunables.VarianceBound
	points := 0
	if bound > 0 {
		e.rngMu.Lock()
		points = e.rng.Intn(2*bound+1) - bound
		e.rngMu.Unlock()
	}
	return ScoringFactor{
		Description: fmt.Sprintf("cosmic variance (%+d)", points),
		Points:      points,
		Source:      "variance",
	}
}

// verdictFor maps a clamped score to its band. The bands partition
// [ScoreMin, ScoreMax] exhaustively with no overlap.
func (e *Engine) verdictFor(score int) Verdict {
	switch {
	case score >= e.tunables.StrongCutoff:
		return StronglyFavorable
	case score >= e.tunables.MildCutoff:
		return MildlyFavorable
	case score > -e.tunables.MildCutoff:
		return Ambiguous
	case score > -e.tunables.StrongCutoff:
		return MildlyUnfavorable
	default:
		return StronglyUnfavorable
	}
}

func clampScore(score, lo, hi int) int {
	if score < lo {
		return lo
	}
	if score > hi {
		return hi
	}
	return score
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
