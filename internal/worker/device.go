package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
)

// ErrDeviceDeauthorized is returned by a ConfigSource when the server no
// longer recognizes the device (401/403). It is the one fetch failure
// that resets local device state instead of being retried silently.
var ErrDeviceDeauthorized = errors.New("device deauthorized")

// ConfigSource fetches the owning mosque's config for this device.
type ConfigSource interface {
	FetchConfig(ctx context.Context) (*model.MosqueConfig, error)
}

// RenderFunc hands one tick's result to the display renderer.
type RenderFunc func(state model.PhaseState, audio engine.AudioDecision)

// DeviceLoop is the client-side harness: a 1-second evaluation tick and a
// slower config refresh. The config is swapped atomically so the tick
// loop reads an immutable snapshot without locking; on refresh failure
// the last good snapshot keeps the display alive indefinitely.
//
// Notification dispatch from devices is disabled by default — the server
// sweep is the dispatch authority. Setting Notifier opts a device into
// best-effort dispatch (it should then share the Redis ledger).
type DeviceLoop struct {
	Source   ConfigSource
	Schedule *prayer.Schedule
	Render   RenderFunc
	Notifier *engine.Notifier

	TickInterval    time.Duration
	RefreshInterval time.Duration

	// OnDeauthorized runs once when the server rejects the device
	// identity; the loop stops afterwards.
	OnDeauthorized func()

	cfg     atomic.Pointer[model.MosqueConfig]
	tracker *engine.Tracker

	manualStop bool
	lastAudio  engine.AudioDecision
}

func NewDeviceLoop(source ConfigSource, schedule *prayer.Schedule, render RenderFunc) *DeviceLoop {
	return &DeviceLoop{
		Source:          source,
		Schedule:        schedule,
		Render:          render,
		TickInterval:    time.Second,
		RefreshInterval: 5 * time.Second,
		tracker:         engine.NewTracker(),
	}
}

// Run drives the loop until ctx is cancelled or the device is
// deauthorized. Both timers are released on exit.
func (d *DeviceLoop) Run(ctx context.Context) {
	d.refresh(ctx)

	tick := time.NewTicker(d.TickInterval)
	defer tick.Stop()
	refresh := time.NewTicker(d.RefreshInterval)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			d.Tick(ctx, now)
		case <-refresh.C:
			if err := d.refresh(ctx); errors.Is(err, ErrDeviceDeauthorized) {
				return
			}
		}
	}
}

// Tick performs one evaluation: phase, then audio, then (optionally)
// notification — in that order, each consuming the previous result.
// Exported so tests can drive the loop with explicit instants.
func (d *DeviceLoop) Tick(ctx context.Context, now time.Time) {
	cfg := d.cfg.Load()
	if cfg == nil {
		return
	}

	times, err := d.Schedule.For(ctx, cfg, now)
	if err != nil && !errors.Is(err, prayer.ErrNoSchedule) {
		log.Warn().Err(err).Str("mosque", cfg.Key).Msg("prayer schedule unavailable")
	}

	state := engine.Evaluate(cfg, times, now)
	audio := engine.ResolveAudio(cfg, times, now, state)

	// A new audio source clears any manual stop so it can autoplay.
	if !audio.SameSource(d.lastAudio) {
		d.manualStop = false
	}
	d.lastAudio = audio
	if d.manualStop {
		audio.ShouldPlay = false
	}

	if d.Render != nil {
		d.Render(state, audio)
	}

	if d.Notifier != nil {
		if events := d.tracker.Observe(cfg, times, state, now); len(events) > 0 {
			// Fire and forget: dispatch must never delay the next tick.
			go d.Notifier.MaybeNotify(context.WithoutCancel(ctx), cfg.Key, cfg, events, now)
		}
	}
}

// StopAudio latches a viewer's manual stop until the resolved source
// changes.
func (d *DeviceLoop) StopAudio() {
	d.manualStop = true
}

func (d *DeviceLoop) refresh(ctx context.Context) error {
	cfg, err := d.Source.FetchConfig(ctx)
	if err != nil {
		if errors.Is(err, ErrDeviceDeauthorized) {
			log.Error().Msg("device deauthorized, resetting local state")
			d.cfg.Store(nil)
			if d.OnDeauthorized != nil {
				d.OnDeauthorized()
			}
			return err
		}
		// Keep showing the last good state and retry on the next cycle.
		log.Warn().Err(err).Msg("config refresh failed, keeping last snapshot")
		return err
	}
	d.cfg.Store(model.Normalize(cfg))
	return nil
}
