package engine

import (
	"time"

	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
)

// Tracker turns the per-tick evaluation stream of one mosque into
// edge-triggered events: one adzan event per prayer per day, one imsak
// event per day.
//
// An event fires when a tick lands inside the trigger's calendar minute.
// A stalled loop that jumps over that minute entirely misses the event —
// deliberate behavior, the sweep on the next day picks up normally. The
// Tracker only suppresses repeats within one process; cross-process
// dedup is the Ledger's job.
type Tracker struct {
	day   string
	fired map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{fired: map[string]bool{}}
}

// Observe inspects one tick and returns the events whose trigger minute
// contains now. Simulated states and missing timetables never produce
// events.
func (t *Tracker) Observe(cfg *model.MosqueConfig, times *prayer.Times, state model.PhaseState, now time.Time) []model.EdgeEvent {
	if state.Simulated || times == nil {
		return nil
	}

	loc := cfg.Location()
	local := now.In(loc)
	day := local.Format("2006-01-02")
	if day != t.day {
		t.day = day
		t.fired = map[string]bool{}
	}

	var events []model.EdgeEvent

	if cfg.Ramadhan.Enabled {
		imsakAt := times.Subuh.Add(-time.Duration(cfg.Ramadhan.ImsakOffsetMinutes) * time.Minute)
		if sameMinute(local, imsakAt.In(loc)) && !t.fired["imsak"] {
			t.fired["imsak"] = true
			events = append(events, model.EdgeEvent{Kind: model.EdgeImsak, Day: day})
		}
	}

	for _, p := range model.DailyPrayers {
		prayerAt, ok := times.ForPrayer(p)
		if !ok {
			continue
		}
		if sameMinute(local, prayerAt.In(loc)) && !t.fired[p] {
			t.fired[p] = true
			events = append(events, model.EdgeEvent{Kind: model.EdgeAdzan, Prayer: p, Day: day})
		}
	}

	return events
}

func sameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}
