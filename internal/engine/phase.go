// Package engine implements the prayer-time-driven display state machine,
// the audio schedule resolver, and the notification deduplicator. All
// evaluation entry points take `now` explicitly and are stateless per
// tick; the only state lives in the Tracker and the dedup Ledger.
package engine

import (
	"time"

	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
)

// Evaluate computes the single active display phase for a mosque at an
// instant. The config must have gone through model.Normalize.
//
// Precedence: simulation override, then the Imsak window (Ramadhan mode),
// then the first prayer of the day with an open Iqamah or Sholat window,
// otherwise NORMAL. A nil timetable degrades to NORMAL with NoSchedule
// set; it never panics the tick.
func Evaluate(cfg *model.MosqueConfig, times *prayer.Times, now time.Time) model.PhaseState {
	if sim := cfg.Simulation; sim != nil && sim.IsSimulating {
		return simulatedState(sim, now)
	}

	if times == nil {
		return model.PhaseState{Phase: model.PhaseNormal, NoSchedule: true}
	}

	if cfg.Ramadhan.Enabled {
		offset := time.Duration(cfg.Ramadhan.ImsakOffsetMinutes) * time.Minute
		imsakStart := times.Subuh.Add(-offset)
		if !now.Before(imsakStart) && now.Before(times.Subuh) {
			return model.PhaseState{
				Phase:            model.PhaseImsak,
				Prayer:           model.PrayerSubuh,
				SecondsRemaining: secondsUntil(times.Subuh, now),
			}
		}
	}

	adzanWindow := time.Duration(cfg.Adzan.WindowMinutes) * time.Minute
	for _, p := range model.DailyPrayers {
		prayerAt, ok := times.ForPrayer(p)
		if !ok || now.Before(prayerAt) {
			continue
		}

		iqamahAt := prayerAt.Add(time.Duration(cfg.Iqamah.WaitFor(p)) * time.Minute)
		if now.Before(iqamahAt) {
			return model.PhaseState{
				Phase:            model.PhaseIqamah,
				Prayer:           p,
				SecondsRemaining: secondsUntil(iqamahAt, now),
				AdzanOverlay:     now.Before(prayerAt.Add(adzanWindow)),
			}
		}

		sholatEnd := iqamahAt.Add(time.Duration(cfg.Iqamah.SholatBlankMinutes) * time.Minute)
		if now.Before(sholatEnd) {
			return model.PhaseState{
				Phase:            model.PhaseSholat,
				Prayer:           p,
				SecondsRemaining: secondsUntil(sholatEnd, now),
			}
		}
		// window fully elapsed, keep scanning later prayers
	}

	return model.PhaseState{Phase: model.PhaseNormal}
}

// simulatedState maps an operator override onto a PhaseState without
// touching the real schedule. The countdown runs from the override's
// start so testers see a moving timer.
func simulatedState(sim *model.SimulationOverride, now time.Time) model.PhaseState {
	const simWindow = 10 * time.Minute

	remaining := simWindow - now.Sub(sim.StartedAt)
	if remaining < 0 {
		remaining = 0
	}
	state := model.PhaseState{
		Prayer:           sim.Prayer,
		SecondsRemaining: int(remaining / time.Second),
		Simulated:        true,
	}

	switch sim.State {
	case model.SimulationImsak:
		state.Phase = model.PhaseImsak
	case model.SimulationAdzan:
		state.Phase = model.PhaseAdzan
		state.AdzanOverlay = true
	case model.SimulationIqamah:
		state.Phase = model.PhaseIqamah
	case model.SimulationSholat:
		state.Phase = model.PhaseSholat
	case model.SimulationPlaylist:
		state.Phase = model.PhaseNormal
		state.ForcedPlaylistID = sim.PlaylistID
		state.SecondsRemaining = 0
	default:
		state.Phase = model.PhaseNormal
		state.SecondsRemaining = 0
	}
	return state
}

// secondsUntil rounds up so a countdown only shows zero at the boundary
// itself.
func secondsUntil(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
