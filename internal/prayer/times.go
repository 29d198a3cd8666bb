// Package prayer supplies per-day prayer timetables to the engine. The
// astronomical computation itself lives behind the Provider interface and
// is treated as an external collaborator.
package prayer

import (
	"context"
	"errors"
	"time"

	"github.com/menara-digital/menara/internal/model"
)

// ErrNoSchedule is returned when no timetable can be computed, typically
// because the mosque has no coordinates.
var ErrNoSchedule = errors.New("no prayer schedule available")

// Times is the immutable timetable for one calendar day, every entry an
// absolute instant in the mosque's local timezone.
type Times struct {
	Imsak   time.Time
	Subuh   time.Time
	Syuruq  time.Time
	Dzuhur  time.Time
	Ashar   time.Time
	Maghrib time.Time
	Isya    time.Time
}

// ForPrayer maps a canonical prayer key to its instant.
func (t *Times) ForPrayer(name string) (time.Time, bool) {
	switch name {
	case model.PrayerImsak:
		return t.Imsak, true
	case model.PrayerSubuh:
		return t.Subuh, true
	case model.PrayerSyuruq:
		return t.Syuruq, true
	case model.PrayerDzuhur, model.PrayerJumat:
		return t.Dzuhur, true
	case model.PrayerAshar:
		return t.Ashar, true
	case model.PrayerMaghrib:
		return t.Maghrib, true
	case model.PrayerIsya:
		return t.Isya, true
	}
	return time.Time{}, false
}

// WithAdjustments returns a copy with per-prayer minute corrections applied
// additively on top of the base computation.
func (t *Times) WithAdjustments(adj map[string]int) *Times {
	if len(adj) == 0 {
		return t
	}
	out := *t
	shift := func(at time.Time, key string) time.Time {
		if m, ok := adj[key]; ok {
			return at.Add(time.Duration(m) * time.Minute)
		}
		return at
	}
	out.Imsak = shift(out.Imsak, model.PrayerImsak)
	out.Subuh = shift(out.Subuh, model.PrayerSubuh)
	out.Syuruq = shift(out.Syuruq, model.PrayerSyuruq)
	out.Dzuhur = shift(out.Dzuhur, model.PrayerDzuhur)
	out.Ashar = shift(out.Ashar, model.PrayerAshar)
	out.Maghrib = shift(out.Maghrib, model.PrayerMaghrib)
	out.Isya = shift(out.Isya, model.PrayerIsya)
	return &out
}

// Provider computes the base civil times for a location and calendar day.
type Provider interface {
	TimesFor(ctx context.Context, lat, lng float64, method string, date time.Time, loc *time.Location) (*Times, error)
}
