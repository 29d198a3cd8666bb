package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/menara-digital/menara/internal/model"
)

func TestTracker_FiresOncePerPrayerMinute(t *testing.T) {
	cfg := testConfig()
	times := testTimes()
	tracker := NewTracker()

	// Ticks inside the trigger minute fire exactly once.
	now := times.Dzuhur.Add(10 * time.Second)
	events := tracker.Observe(cfg, times, Evaluate(cfg, times, now), now)
	if assert.Len(t, events, 1) {
		assert.Equal(t, model.EdgeAdzan, events[0].Kind)
		assert.Equal(t, model.PrayerDzuhur, events[0].Prayer)
		assert.Equal(t, "2026-03-10", events[0].Day)
	}

	now = times.Dzuhur.Add(40 * time.Second)
	events = tracker.Observe(cfg, times, Evaluate(cfg, times, now), now)
	assert.Empty(t, events)
}

func TestTracker_StalledLoopMissesTheMinute(t *testing.T) {
	cfg := testConfig()
	times := testTimes()
	tracker := NewTracker()

	// 11:59:30, then a stall, then 12:01:10: no tick ever landed inside
	// the 12:00 minute, so the adzan event is simply missed.
	before := times.Dzuhur.Add(-30 * time.Second)
	assert.Empty(t, tracker.Observe(cfg, times, Evaluate(cfg, times, before), before))

	after := times.Dzuhur.Add(70 * time.Second)
	assert.Empty(t, tracker.Observe(cfg, times, Evaluate(cfg, times, after), after))
}

func TestTracker_DayRolloverResetsFiredSet(t *testing.T) {
	cfg := testConfig()
	times := testTimes()
	tracker := NewTracker()

	now := times.Isya
	assert.Len(t, tracker.Observe(cfg, times, Evaluate(cfg, times, now), now), 1)

	// Next day, same wall clock: the event fires again.
	nextDay := times.Isya.Add(24 * time.Hour)
	shifted := *times
	shifted.Isya = nextDay
	events := tracker.Observe(cfg, &shifted, Evaluate(cfg, &shifted, nextDay), nextDay)
	assert.Len(t, events, 1)
	assert.Equal(t, "2026-03-11", events[0].Day)
}

func TestTracker_ImsakEventOnlyInRamadhan(t *testing.T) {
	cfg := testConfig()
	times := testTimes()
	imsakAt := times.Subuh.Add(-10 * time.Minute)

	tracker := NewTracker()
	assert.Empty(t, tracker.Observe(cfg, times, Evaluate(cfg, times, imsakAt), imsakAt))

	cfg.Ramadhan.Enabled = true
	tracker = NewTracker()
	events := tracker.Observe(cfg, times, Evaluate(cfg, times, imsakAt), imsakAt)
	if assert.Len(t, events, 1) {
		assert.Equal(t, model.EdgeImsak, events[0].Kind)
		assert.Equal(t, "Imsak", events[0].DisplayLabel())
	}
}

func TestTracker_SimulatedStatesNeverFire(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation = &model.SimulationOverride{
		IsSimulating: true,
		State:        model.SimulationAdzan,
		Prayer:       model.PrayerDzuhur,
		StartedAt:    time.Now(),
	}
	times := testTimes()
	tracker := NewTracker()

	now := times.Dzuhur
	events := tracker.Observe(cfg, times, Evaluate(cfg, times, now), now)
	assert.Empty(t, events)
}

func TestTracker_NilTimetableNeverFires(t *testing.T) {
	cfg := testConfig()
	tracker := NewTracker()

	state := Evaluate(cfg, nil, time.Now())
	assert.Empty(t, tracker.Observe(cfg, nil, state, time.Now()))
}
