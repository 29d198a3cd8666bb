// Package worker owns the two polling harnesses: the server-side
// per-minute sweep over all tenants and the per-second device tick loop.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
)

// ConfigLister is the slice of the config store the sweep needs.
type ConfigLister interface {
	ListMosqueConfigs() ([]model.MosqueConfig, error)
}

// StatePublisher pushes a phase change to the mosque's displays (MQTT in
// production). Nil publisher disables pushes.
type StatePublisher interface {
	PublishState(mosqueKey string, state model.PhaseState) error
}

// Sweep evaluates every tenant once per interval and is the single
// dispatch authority for notifications. One tenant's failure never
// aborts the rest of the sweep.
type Sweep struct {
	Store     ConfigLister
	Schedule  *prayer.Schedule
	Notifier  *engine.Notifier
	Publisher StatePublisher
	Interval  time.Duration

	trackers  map[string]*engine.Tracker
	lastPhase map[string]model.Phase
	stopChan  chan struct{}
}

func NewSweep(store ConfigLister, schedule *prayer.Schedule, notifier *engine.Notifier) *Sweep {
	return &Sweep{
		Store:     store,
		Schedule:  schedule,
		Notifier:  notifier,
		Interval:  time.Minute,
		trackers:  map[string]*engine.Tracker{},
		lastPhase: map[string]model.Phase{},
		stopChan:  make(chan struct{}),
	}
}

func (s *Sweep) Start(ctx context.Context) {
	go s.run(ctx)
	log.Info().Dur("interval", s.Interval).Msg("notification sweep started")
}

func (s *Sweep) Stop() {
	close(s.stopChan)
	log.Info().Msg("notification sweep stopped")
}

func (s *Sweep) run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	purge := time.NewTicker(time.Hour)
	defer purge.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx, time.Now())
		case <-purge.C:
			s.Notifier.Ledger.Purge(time.Now().Add(-48 * time.Hour))
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// SweepOnce evaluates all tenants at one instant. Exported so tests can
// drive the sweep with a fixed clock.
func (s *Sweep) SweepOnce(ctx context.Context, now time.Time) {
	configs, err := s.Store.ListMosqueConfigs()
	if err != nil {
		log.Error().Err(err).Msg("could not list mosque configs, skipping sweep")
		return
	}

	for i := range configs {
		s.sweepTenant(ctx, &configs[i], now)
	}
}

// sweepTenant isolates one tenant's evaluation: a panic or error here is
// logged and confined to this tenant.
func (s *Sweep) sweepTenant(ctx context.Context, cfg *model.MosqueConfig, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("mosque", cfg.Key).Msg("tenant evaluation panicked")
		}
	}()

	model.Normalize(cfg)

	times, err := s.Schedule.For(ctx, cfg, now)
	if err != nil && !errors.Is(err, prayer.ErrNoSchedule) {
		log.Warn().Err(err).Str("mosque", cfg.Key).Msg("prayer schedule unavailable")
	}

	state := engine.Evaluate(cfg, times, now)

	if s.Publisher != nil && s.lastPhase[cfg.Key] != state.Phase {
		if err := s.Publisher.PublishState(cfg.Key, state); err != nil {
			log.Warn().Err(err).Str("mosque", cfg.Key).Msg("could not push state to displays")
		}
	}
	s.lastPhase[cfg.Key] = state.Phase

	tracker := s.trackers[cfg.Key]
	if tracker == nil {
		tracker = engine.NewTracker()
		s.trackers[cfg.Key] = tracker
	}
	events := tracker.Observe(cfg, times, state, now)
	if len(events) > 0 {
		s.Notifier.MaybeNotify(ctx, cfg.Key, cfg, events, now)
	}
}
