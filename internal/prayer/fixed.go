package prayer

import (
	"context"
	"time"
)

// Fixed is a Provider that projects a template of wall-clock times onto
// whatever date is requested. Used by tests and by offline demo setups
// where no timings API is reachable.
type Fixed struct {
	Clock Times
	Err   error
}

func (f *Fixed) TimesFor(_ context.Context, _, _ float64, _ string, date time.Time, loc *time.Location) (*Times, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	on := func(src time.Time) time.Time {
		y, m, d := date.In(loc).Date()
		return time.Date(y, m, d, src.Hour(), src.Minute(), src.Second(), 0, loc)
	}
	return &Times{
		Imsak:   on(f.Clock.Imsak),
		Subuh:   on(f.Clock.Subuh),
		Syuruq:  on(f.Clock.Syuruq),
		Dzuhur:  on(f.Clock.Dzuhur),
		Ashar:   on(f.Clock.Ashar),
		Maghrib: on(f.Clock.Maghrib),
		Isya:    on(f.Clock.Isya),
	}, nil
}
