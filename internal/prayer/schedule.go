package prayer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/menara-digital/menara/internal/model"
)

type cachedTimes struct {
	day         string
	fingerprint string
	times       *Times
}

// Schedule caches one timetable per mosque per calendar day. A cached
// entry is invalidated the moment the day rolls over in the mosque's
// timezone or any input of the computation (coordinates, method,
// adjustments) changes — timetables are never served across a day
// boundary.
type Schedule struct {
	provider Provider

	mu      sync.Mutex
	entries map[string]cachedTimes // mosque key -> today's timetable
}

func NewSchedule(provider Provider) *Schedule {
	return &Schedule{
		provider: provider,
		entries:  map[string]cachedTimes{},
	}
}

// For returns today's adjusted timetable for a mosque. ErrNoSchedule is
// returned for mosques without coordinates.
func (s *Schedule) For(ctx context.Context, cfg *model.MosqueConfig, now time.Time) (*Times, error) {
	if cfg == nil || !cfg.HasCoordinates() {
		return nil, ErrNoSchedule
	}

	loc := cfg.Location()
	day := now.In(loc).Format("2006-01-02")
	fp := fingerprint(cfg)

	s.mu.Lock()
	entry, ok := s.entries[cfg.Key]
	s.mu.Unlock()
	if ok && entry.day == day && entry.fingerprint == fp {
		return entry.times, nil
	}

	base, err := s.provider.TimesFor(ctx, cfg.Latitude, cfg.Longitude, cfg.CalculationMethod, now.In(loc), loc)
	if err != nil {
		return nil, fmt.Errorf("compute prayer times for %s: %w", cfg.Key, err)
	}
	adjusted := base.WithAdjustments(cfg.Adjustments)

	s.mu.Lock()
	s.entries[cfg.Key] = cachedTimes{day: day, fingerprint: fp, times: adjusted}
	s.mu.Unlock()
	return adjusted, nil
}

// fingerprint captures every input of the timetable computation so a
// config edit forces a recompute within the same day.
func fingerprint(cfg *model.MosqueConfig) string {
	adj := ""
	for _, p := range []string{
		model.PrayerImsak, model.PrayerSubuh, model.PrayerSyuruq, model.PrayerDzuhur,
		model.PrayerAshar, model.PrayerMaghrib, model.PrayerIsya,
	} {
		adj += fmt.Sprintf("%s=%d;", p, cfg.Adjustments[p])
	}
	return fmt.Sprintf("%.6f|%.6f|%s|%s|%s", cfg.Latitude, cfg.Longitude, cfg.CalculationMethod, cfg.Timezone, adj)
}
