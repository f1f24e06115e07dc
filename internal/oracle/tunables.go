package oracle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// Tunables collects every scoring constant in one versioned table so a tuning
// change is a data diff, not a logic diff. Zero values are never valid; always
// start from DefaultTunables.
type Tunables struct {
	Version string `yaml:"version"`

	// Classifier confidence bands and aggregator thresholds.
	ConfidenceHigh  float64 `yaml:"confidence_high"`
	ConfidenceLow   float64 `yaml:"confidence_low"`
	ConfidenceFloor float64 `yaml:"confidence_floor"` // below: short-circuit to unclassifiable
	ConfidenceSolid float64 `yaml:"confidence_solid"` // below: weak-signal penalty applies

	WeakSignalPenalty int `yaml:"weak_signal_penalty"`

	// Transit scoring. Tense aspects outweigh harmonious ones on purpose;
	// the engine leans cautious.
	AspectPoints       map[types.AspectType]int `yaml:"aspect_points"`
	ConjunctionBenefic int                      `yaml:"conjunction_benefic"`
	ConjunctionMalefic int                      `yaml:"conjunction_malefic"`
	ConjunctionNeutral int                      `yaml:"conjunction_neutral"`
	MaxOrb             float64                  `yaml:"max_orb"`
	MinOrbScale        float64                  `yaml:"min_orb_scale"`
	DualRelevanceScale float64                  `yaml:"dual_relevance_scale"`
	ApplyingScale      float64                  `yaml:"applying_scale"`
	MaxTransits        int                      `yaml:"max_transits"`

	// Lunar phase table, small and mixed-sign so no phase dominates.
	PhasePoints map[types.MoonPhase]int `yaml:"phase_points"`

	// Moon sign affinity magnitudes.
	MoonSignHelp   int `yaml:"moon_sign_help"`
	MoonSignHinder int `yaml:"moon_sign_hinder"`

	// Dignity and pattern scoring.
	DignityMultiplier int                       `yaml:"dignity_multiplier"`
	PatternPoints     map[types.PatternType]int `yaml:"pattern_points"`

	// Node and fortune-point activation.
	NodeOrb           float64 `yaml:"node_orb"`
	NorthNodePoints   int     `yaml:"north_node_points"`
	SouthNodePoints   int     `yaml:"south_node_points"`
	FortuneOrb        float64 `yaml:"fortune_orb"`
	FortuneBenefic    int     `yaml:"fortune_benefic"`
	FortuneMalefic    int     `yaml:"fortune_malefic"`

	// Polarity-vs-timing alignment.
	AlignmentBonus      int `yaml:"alignment_bonus"`
	MisalignmentPenalty int `yaml:"misalignment_penalty"`
	PushRetroPenalty    int `yaml:"push_retro_penalty"`

	// Aggregation.
	VarianceBound int `yaml:"variance_bound"` // variance drawn from [-bound, bound]
	ScoreMin      int `yaml:"score_min"`
	ScoreMax      int `yaml:"score_max"`

	// Verdict bands. Bands partition [ScoreMin, ScoreMax]:
	// [StrongCutoff, max] strongly favorable, [MildCutoff, StrongCutoff)
	// mildly favorable, (-MildCutoff, MildCutoff) ambiguous, mirrored below.
	StrongCutoff int `yaml:"strong_cutoff"`
	MildCutoff   int `yaml:"mild_cutoff"`
}

// DefaultTunables returns the shipped constant table.
func DefaultTunables() Tunables {
	return Tunables{
		Version: "v1",

		ConfidenceHigh:  0.8,
		ConfidenceLow:   0.2,
		ConfidenceFloor: 0.3,
		ConfidenceSolid: 0.6,

		WeakSignalPenalty: -6,

		AspectPoints: map[types.AspectType]int{
			types.Trine:      8,
			types.Sextile:    5,
			types.Square:     -12,
			types.Opposition: -10,
			types.Quincunx:   -4,
		},
		ConjunctionBenefic: 9,
		ConjunctionMalefic: -11,
		ConjunctionNeutral: 3,
		MaxOrb:             8.0,
		MinOrbScale:        0.25,
		DualRelevanceScale: 1.5,
		ApplyingScale:      1.2,
		MaxTransits:        8,

		PhasePoints: map[types.MoonPhase]int{
			types.NewMoon:        4,
			types.WaxingCrescent: 3,
			types.FirstQuarter:   -2,
			types.WaxingGibbous:  2,
			types.FullMoon:       -3,
			types.WaningGibbous:  -1,
			types.LastQuarter:    -2,
			types.WaningCrescent: 1,
		},

		MoonSignHelp:   6,
		MoonSignHinder: -6,

		DignityMultiplier: 3,
		PatternPoints: map[types.PatternType]int{
			types.GrandTrine: 8,
			types.Stellium:   5,
			types.TSquare:    -12,
			types.GrandCross: -15,
		},

		NodeOrb:         6.0,
		NorthNodePoints: 7,
		SouthNodePoints: -4,
		FortuneOrb:      5.0,
		FortuneBenefic:  8,
		FortuneMalefic:  -12,

		AlignmentBonus:      5,
		MisalignmentPenalty: -5,
		PushRetroPenalty:    -8,

		VarianceBound: 5,
		ScoreMin:      -100,
		ScoreMax:      100,

		StrongCutoff: 60,
		MildCutoff:   25,
	}
}

// LoadTunables reads a YAML override file on top of the defaults, so a partial
// file only changes the constants it names.
func LoadTunables(path string) (Tunables, error) {
	tun := DefaultTunables()

	data, err := os.ReadFile(path)
	if err != nil {
		return tun, fmt.Errorf("failed to read tunables file: %w", err)
	}

	if err := yaml.Unmarshal(data, &tun); err != nil {
		return tun, fmt.Errorf("failed to parse tunables file: %w", err)
	}

	if err := tun.Validate(); err != nil {
		return tun, err
	}

	return tun, nil
}

// Validate rejects constant tables that would break the engine's invariants.
func (t Tunables) Validate() error {
	if t.ScoreMin >= t.ScoreMax {
		return fmt.Errorf("invalid score range [%d, %d]", t.ScoreMin, t.ScoreMax)
	}
	if t.MildCutoff <= 0 || t.StrongCutoff <= t.MildCutoff || t.StrongCutoff > t.ScoreMax {
		return fmt.Errorf("verdict cutoffs must satisfy 0 < mild (%d) < strong (%d) <= max (%d)",
			t.MildCutoff, t.StrongCutoff, t.ScoreMax)
	}
	if t.ConfidenceFloor > t.ConfidenceSolid {
		return fmt.Errorf("confidence floor %.2f exceeds solid threshold %.2f",
			t.ConfidenceFloor, t.ConfidenceSolid)
	}
	if t.VarianceBound < 0 {
		return fmt.Errorf("variance bound must be non-negative, got %d", t.VarianceBound)
	}
	if t.MaxOrb <= 0 {
		return fmt.Errorf("max orb must be positive, got %f", t.MaxOrb)
	}
	return nil
}
