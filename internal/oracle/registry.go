package oracle

import (
	"regexp"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// CategoryMeta holds every per-category table the pipeline consults. Keeping
// the keyword list, planet relevance set, retrograde severities, moon sign
// affinities and day-ruler row together means adding or tuning a category is
// one edit site.
type CategoryMeta struct {
	// Keywords are matched by lower-cased substring containment.
	Keywords []string

	// ExactKeywords are short, ambiguity-prone words matched on word
	// boundaries only ("work" must not fire inside "workout").
	ExactKeywords []string

	// RelevantPlanets gates transit, dignity and pattern scoring.
	RelevantPlanets map[types.Planet]bool

	// RetroPenalties maps a retrograde planet to its penalty for this
	// category; planets absent from the map are not relevant.
	RetroPenalties map[types.Planet]int

	// HelpfulSigns and HinderingSigns are disjoint; a moon sign in neither
	// contributes nothing.
	HelpfulSigns   map[types.ZodiacSign]bool
	HinderingSigns map[types.ZodiacSign]bool
}

// Registry is the immutable category-metadata table plus the cross-category
// day-ruler matrix, built once at startup.
type Registry struct {
	categories map[Category]*CategoryMeta
	exactRes   map[Category][]*regexp.Regexp

	// dayRuler[planet][category] is the signed day-of-week adjustment.
	// Every planet has at least one positive and one negative row entry so
	// no single day is uniformly lucky or unlucky.
	dayRuler map[types.Planet]map[Category]int
}

// Meta returns the metadata for a category, falling back to General for
// unknown values so lookups are total.
func (r *Registry) Meta(c Category) *CategoryMeta {
	if m, ok := r.categories[c]; ok {
		return m
	}
	return r.categories[General]
}

// DayRulerPoints returns the signed adjustment for the given day ruler and
// category, zero when the matrix has no entry.
func (r *Registry) DayRulerPoints(ruler types.Planet, c Category) int {
	row, ok := r.dayRuler[ruler]
	if !ok {
		return 0
	}
	return row[c]
}

// Relevant reports whether the planet belongs to the category's relevance set.
func (r *Registry) Relevant(c Category, p types.Planet) bool {
	return r.Meta(c).RelevantPlanets[p]
}

// NewRegistry builds the shipped category metadata.
func NewRegistry() *Registry {
	r := &Registry{
		categories: map[Category]*CategoryMeta{
			Relationship: {
				Keywords: []string{
					"love", "crush", "relationship", "partner", "boyfriend",
					"girlfriend", "marry", "marriage", "soulmate", "romantic",
					"breakup", "break up", "think about me", "miss me",
					"like me", "text him", "text her", "dating", "my ex",
				},
				RelevantPlanets: planetSet(types.Venus, types.Moon, types.Mars),
				RetroPenalties: map[types.Planet]int{
					types.Venus: -10,
					types.Mars:  -5,
				},
				HelpfulSigns:   signSet(types.Libra, types.Taurus, types.Cancer, types.Pisces),
				HinderingSigns: signSet(types.Aries, types.Capricorn, types.Aquarius),
			},
			Career: {
				Keywords: []string{
					"job", "career", "boss", "promotion", "raise", "interview",
					"resign", "hired", "fired", "salary", "coworker",
					"colleague", "office", "business", "startup", "client",
				},
				ExactKeywords:   []string{"work"},
				RelevantPlanets: planetSet(types.Saturn, types.Sun, types.Jupiter, types.Mars),
				RetroPenalties: map[types.Planet]int{
					types.Mercury: -8,
					types.Saturn:  -6,
					types.Mars:    -4,
				},
				HelpfulSigns:   signSet(types.Capricorn, types.Virgo, types.Leo),
				HinderingSigns: signSet(types.Pisces, types.Cancer),
			},
			Finance: {
				Keywords: []string{
					"money", "invest", "buy", "sell", "loan", "debt", "savings",
					"spend", "afford", "crypto", "stock", "budget", "pay",
					"purchase", "lottery", "gamble",
				},
				RelevantPlanets: planetSet(types.Jupiter, types.Venus, types.Saturn),
				RetroPenalties: map[types.Planet]int{
					types.Venus:   -8,
					types.Jupiter: -6,
					types.Mercury: -5,
				},
				HelpfulSigns:   signSet(types.Taurus, types.Capricorn, types.Virgo),
				HinderingSigns: signSet(types.Sagittarius, types.Pisces),
			},
			Communication: {
				Keywords: []string{
					"tell", "say", "message", "email", "call", "talk",
					"conversation", "announce", "reply", "respond", "write",
					"confess", "admit", "explain", "apologize",
				},
				ExactKeywords:   []string{"text"},
				RelevantPlanets: planetSet(types.Mercury, types.Uranus),
				RetroPenalties: map[types.Planet]int{
					types.Mercury: -12,
				},
				HelpfulSigns:   signSet(types.Gemini, types.Libra, types.Aquarius),
				HinderingSigns: signSet(types.Scorpio, types.Taurus),
			},
			Conflict: {
				Keywords: []string{
					"fight", "argue", "argument", "confront", "enemy",
					"revenge", "lawsuit", "sue", "dispute", "stand up to",
					"defend myself", "grudge", "threaten",
				},
				RelevantPlanets: planetSet(types.Mars, types.Pluto, types.Saturn),
				RetroPenalties: map[types.Planet]int{
					types.Mars: -10,
				},
				HelpfulSigns:   signSet(types.Aries, types.Scorpio),
				HinderingSigns: signSet(types.Libra, types.Pisces, types.Cancer),
			},
			Timing: {
				// Phrase-level only: bare "today"/"tomorrow" shows up in
				// questions of every theme and would tie against the real
				// category.
				Keywords: []string{
					"right time", "good time", "bad time", "when should",
					"now or later", "too soon", "too late", "deadline",
					"schedule", "postpone", "best day",
				},
				RelevantPlanets: planetSet(types.Saturn, types.Mercury, types.Moon),
				RetroPenalties: map[types.Planet]int{
					types.Mercury: -10,
					types.Saturn:  -4,
				},
				HelpfulSigns:   signSet(types.Capricorn, types.Virgo, types.Cancer),
				HinderingSigns: signSet(types.Gemini, types.Sagittarius),
			},
			Health: {
				Keywords: []string{
					"health", "doctor", "sick", "diet", "sleep", "tired",
					"workout", "exercise", "therapy", "surgery", "gym",
					"healing", "recover", "fasting",
				},
				RelevantPlanets: planetSet(types.Sun, types.Mars, types.Saturn),
				RetroPenalties: map[types.Planet]int{
					types.Mars:   -6,
					types.Saturn: -4,
				},
				HelpfulSigns:   signSet(types.Virgo, types.Taurus, types.Scorpio),
				HinderingSigns: signSet(types.Pisces, types.Gemini),
			},
			Social: {
				Keywords: []string{
					"friend", "party", "invite", "hang out", "meet up",
					"gathering", "event", "social", "group", "reunion",
					"neighbor", "family dinner",
				},
				RelevantPlanets: planetSet(types.Venus, types.Mercury, types.Jupiter),
				RetroPenalties: map[types.Planet]int{
					types.Venus:   -6,
					types.Mercury: -5,
				},
				HelpfulSigns:   signSet(types.Leo, types.Libra, types.Sagittarius),
				HinderingSigns: signSet(types.Capricorn, types.Scorpio),
			},
			General: {
				// Deliberately narrow: generic modal phrasing ("should i",
				// "good idea") appears in most questions and would tie
				// against every other category, so it never counts as a
				// match. General wins by being the tie and zero-match
				// fallback, not by keywords.
				Keywords: []string{
					"decision", "choose", "decide", "option", "chance",
					"risk", "move to", "relocate", "travel", "trip", "lucky",
				},
				RelevantPlanets: planetSet(types.Sun, types.Moon, types.Jupiter, types.Saturn),
				RetroPenalties: map[types.Planet]int{
					types.Mercury: -6,
				},
				HelpfulSigns:   signSet(types.Sagittarius, types.Leo),
				HinderingSigns: signSet(types.Scorpio),
			},
			Creative: {
				Keywords: []string{
					"art", "paint", "song", "album", "novel", "poem", "design",
					"create", "creative", "project", "portfolio", "perform",
					"audition", "publish",
				},
				RelevantPlanets: planetSet(types.Venus, types.Neptune, types.Sun, types.Mercury),
				RetroPenalties: map[types.Planet]int{
					types.Venus:   -5,
					types.Neptune: -4,
				},
				HelpfulSigns:   signSet(types.Leo, types.Pisces, types.Libra),
				HinderingSigns: signSet(types.Capricorn, types.Virgo),
			},
			Spiritual: {
				Keywords: []string{
					"meditate", "meditation", "spiritual", "soul", "karma",
					"destiny", "fate", "universe", "manifest", "prayer",
					"ritual", "tarot", "energy",
				},
				RelevantPlanets: planetSet(types.Neptune, types.Jupiter, types.Pluto, types.Moon),
				RetroPenalties: map[types.Planet]int{
					types.Neptune: -6,
					types.Jupiter: -4,
				},
				HelpfulSigns:   signSet(types.Pisces, types.Scorpio, types.Cancer),
				HinderingSigns: signSet(types.Gemini, types.Aries),
			},
		},

		dayRuler: map[types.Planet]map[Category]int{
			types.Sun:     {Creative: 6, Career: 4, Conflict: -4},
			types.Moon:    {Relationship: 5, Health: 4, Finance: -4},
			types.Mars:    {Conflict: 6, Health: 4, Relationship: -5},
			types.Mercury: {Communication: 6, Timing: 4, Spiritual: -4},
			types.Jupiter: {Finance: 6, Career: 4, Conflict: -3},
			types.Venus:   {Relationship: 6, Social: 4, Conflict: -4},
			types.Saturn:  {Career: 5, Timing: 4, Social: -5},
		},
	}

	r.exactRes = make(map[Category][]*regexp.Regexp, len(r.categories))
	for cat, meta := range r.categories {
		for _, word := range meta.ExactKeywords {
			r.exactRes[cat] = append(r.exactRes[cat], regexp.MustCompile(`\b`+regexp.QuoteMeta(word)+`\b`))
		}
	}

	return r
}

func planetSet(planets ...types.Planet) map[types.Planet]bool {
	set := make(map[types.Planet]bool, len(planets))
	for _, p := range planets {
		set[p] = true
	}
	return set
}

func signSet(signs ...types.ZodiacSign) map[types.ZodiacSign]bool {
	set := make(map[types.ZodiacSign]bool, len(signs))
	for _, s := range signs {
		set[s] = true
	}
	return set
}
