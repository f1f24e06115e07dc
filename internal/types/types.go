package types

// Planet identifies one of the ten bodies the engine knows about.
type Planet string

const (
	Sun     Planet = "sun"
	Moon    Planet = "moon"
	Mercury Planet = "mercury"
	Venus   Planet = "venus"
	Mars    Planet = "mars"
	Jupiter Planet = "jupiter"
	Saturn  Planet = "saturn"
	Uranus  Planet = "uranus"
	Neptune Planet = "neptune"
	Pluto   Planet = "pluto"
)

// Benefic reports whether the planet carries a conventionally helpful influence.
func (p Planet) Benefic() bool {
	return p == Venus || p == Jupiter
}

// Malefic reports whether the planet carries a conventionally stressful influence.
func (p Planet) Malefic() bool {
	return p == Mars || p == Saturn || p == Pluto
}

// ZodiacSign is one of the twelve signs of the tropical zodiac.
type ZodiacSign string

const (
	Aries       ZodiacSign = "aries"
	Taurus      ZodiacSign = "taurus"
	Gemini      ZodiacSign = "gemini"
	Cancer      ZodiacSign = "cancer"
	Leo         ZodiacSign = "leo"
	Virgo       ZodiacSign = "virgo"
	Libra       ZodiacSign = "libra"
	Scorpio     ZodiacSign = "scorpio"
	Sagittarius ZodiacSign = "sagittarius"
	Capricorn   ZodiacSign = "capricorn"
	Aquarius    ZodiacSign = "aquarius"
	Pisces      ZodiacSign = "pisces"
)

// MoonPhase names one of the eight lunar phases.
type MoonPhase string

const (
	NewMoon        MoonPhase = "new_moon"
	WaxingCrescent MoonPhase = "waxing_crescent"
	FirstQuarter   MoonPhase = "first_quarter"
	WaxingGibbous  MoonPhase = "waxing_gibbous"
	FullMoon       MoonPhase = "full_moon"
	WaningGibbous  MoonPhase = "waning_gibbous"
	LastQuarter    MoonPhase = "last_quarter"
	WaningCrescent MoonPhase = "waning_crescent"
)

// Waxing reports whether the Moon is gaining light in this phase.
// The new moon counts as waxing; the full moon starts the waning half.
func (m MoonPhase) Waxing() bool {
	switch m {
	case NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous:
		return true
	}
	return false
}

// AspectType names the angular relationship between two planetary positions.
type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Trine       AspectType = "trine"
	Square      AspectType = "square"
	Opposition  AspectType = "opposition"
	Quincunx    AspectType = "quincunx"
)

// PatternType names a multi-planet natal configuration.
type PatternType string

const (
	GrandTrine PatternType = "grand_trine"
	TSquare    PatternType = "t_square"
	Stellium   PatternType = "stellium"
	GrandCross PatternType = "grand_cross"
)

// DignityGrade rates a natal planet's strength in its sign.
type DignityGrade string

const (
	Domicile  DignityGrade = "domicile"
	Exalted   DignityGrade = "exalted"
	Peregrine DignityGrade = "peregrine"
	Detriment DignityGrade = "detriment"
	Fall      DignityGrade = "fall"
)

// TransitAspect is a currently-forming aspect between a transiting planet and a
// natal position, pre-sorted by significance by the ephemeris collaborator.
type TransitAspect struct {
	Transiting Planet     `json:"transiting"`
	Natal      Planet     `json:"natal"`
	Aspect     AspectType `json:"aspect"`
	Orb        float64    `json:"orb"`
	Applying   bool       `json:"applying"`
}

// Dignity is a natal planet's contextual strength rating.
type Dignity struct {
	Planet   Planet       `json:"planet"`
	Grade    DignityGrade `json:"grade"`
	Strength int          `json:"strength"`
}

// Pattern is a named natal configuration and the planets involved in it.
type Pattern struct {
	Name    PatternType `json:"name"`
	Planets []Planet    `json:"planets"`
}

// AstroContext bundles everything the ephemeris collaborator computed for the
// moment a question is asked. The scoring engine treats it as read-only ground
// truth and never mutates it.
type AstroContext struct {
	Transits    []TransitAspect `json:"transits"`
	Retrogrades []Planet        `json:"retrogrades"`
	MoonPhase   MoonPhase       `json:"moon_phase"`
	MoonSign    ZodiacSign      `json:"moon_sign"`
	DayRuler    Planet          `json:"day_ruler"`
	Dignities   []Dignity       `json:"dignities"`
	Patterns    []Pattern       `json:"patterns"`

	// Ecliptic longitudes in degrees, [0, 360).
	Positions    map[Planet]float64 `json:"positions"`
	NorthNode    float64            `json:"north_node"`
	SouthNode    float64            `json:"south_node"`
	FortunePoint float64            `json:"fortune_point"`
}

// Retrograde reports whether the given planet is currently retrograde.
func (c *AstroContext) Retrograde(p Planet) bool {
	for _, r := range c.Retrogrades {
		if r == p {
			return true
		}
	}
	return false
}

// ReadingRequest is the request body for the reading endpoint.
type ReadingRequest struct {
	Question string        `json:"question" binding:"required"`
	Context  *AstroContext `json:"context" binding:"required"`
}
