package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/astralhq/cosmic-counsel/internal/types"
)

// DailyService produces a once-per-day cosmic outlook, cached by date in a Store
type DailyService struct {
	store Store
}

// NewDailyService creates a daily outlook service
func NewDailyService(store Store) *DailyService {
	return &DailyService{store: store}
}

var phaseMoods = map[types.MoonPhase]string{
	types.NewMoon:        "a day for planting seeds",
	types.WaxingCrescent: "a day for first steps",
	types.FirstQuarter:   "a day of friction and decisions",
	types.WaxingGibbous:  "a day for refinement",
	types.FullMoon:       "a day of culmination and high feeling",
	types.WaningGibbous:  "a day for sharing what you have gathered",
	types.LastQuarter:    "a day for release",
	types.WaningCrescent: "a day for rest and reflection",
}

// Outlook returns the cached outlook for a date, composing and caching it on miss
func (s *DailyService) Outlook(ctx context.Context, date time.Time, astro *types.AstroContext) (string, error) {
	key := "daily:" + date.Format("2006-01-02")

	if cached, found, err := s.store.Get(ctx, key); err != nil {
		slog.Warn("Daily outlook cache read failed", "key", key, "error", err)
	} else if found {
		return cached, nil
	}

	outlook := composeOutlook(date, astro)

	ttl := time.Until(endOfDay(date))
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.store.Set(ctx, key, outlook, ttl); err != nil {
		slog.Warn("Daily outlook cache write failed", "key", key, "error", err)
	}

	return outlook, nil
}

func composeOutlook(date time.Time, astro *types.AstroContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s belongs to %s.", date.Weekday(), planetTitle(astro.DayRuler))

	if mood, ok := phaseMoods[astro.MoonPhase]; ok {
		fmt.Fprintf(&b, " The %s moon makes this %s.", strings.ReplaceAll(string(astro.MoonPhase), "_", " "), mood)
	}

	if astro.MoonSign != "" {
		fmt.Fprintf(&b, " The Moon moves through %s.", titleCase(string(astro.MoonSign)))
	}

	switch n := len(astro.Retrogrades); {
	case n >= 3:
		fmt.Fprintf(&b, " With %d planets retrograde, expect delays and revisions.", n)
	case n > 0:
		names := make([]string, 0, n)
		for _, p := range astro.Retrogrades {
			names = append(names, planetTitle(p))
		}
		fmt.Fprintf(&b, " %s retrograde asks for a second look.", strings.Join(names, " and "))
	}

	return b.String()
}

func planetTitle(p types.Planet) string {
	if p == "" {
		return "the wandering stars"
	}
	return titleCase(string(p))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func endOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).AddDate(0, 0, 1)
}
