package engine

import (
	"time"

	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
)

// AudioDecision tells the playback collaborator what should be playing
// right now. Exactly one of URL and PlaylistID is set when ShouldPlay is
// true. Consumers reset any manual-stop latch whenever the (URL,
// PlaylistID) identity changes so a new schedule always gets a chance to
// autoplay.
type AudioDecision struct {
	URL        string `json:"url,omitempty"`
	PlaylistID string `json:"playlist_id,omitempty"`
	ShouldPlay bool   `json:"should_play"`
}

// SameSource reports whether two decisions refer to the same audio.
func (d AudioDecision) SameSource(other AudioDecision) bool {
	return d.URL == other.URL && d.PlaylistID == other.PlaylistID
}

// ResolveAudio picks the audio source for the current tick. First match
// wins, in priority order: forced playlist (simulation), phase-driven
// audio (adzan, iqamah reminder, imsak), then explicit schedule entries
// in configured array order. The global fallback URL is never
// auto-triggered.
func ResolveAudio(cfg *model.MosqueConfig, times *prayer.Times, now time.Time, state model.PhaseState) AudioDecision {
	if state.ForcedPlaylistID != "" {
		return AudioDecision{PlaylistID: state.ForcedPlaylistID, ShouldPlay: true}
	}

	if (state.Phase == model.PhaseAdzan || state.AdzanOverlay) &&
		cfg.Adzan.AudioEnabled && cfg.Adzan.AudioURL != "" {
		return AudioDecision{URL: cfg.Adzan.AudioURL, ShouldPlay: true}
	}

	if state.Phase == model.PhaseIqamah && cfg.Iqamah.ReminderEnabled &&
		cfg.Iqamah.ReminderAudioURL != "" &&
		state.SecondsRemaining <= cfg.Iqamah.ReminderLeadSeconds {
		return AudioDecision{URL: cfg.Iqamah.ReminderAudioURL, ShouldPlay: true}
	}

	if state.Phase == model.PhaseImsak && cfg.Ramadhan.ImsakAudioEnabled &&
		cfg.Ramadhan.ImsakAudioURL != "" {
		return AudioDecision{URL: cfg.Ramadhan.ImsakAudioURL, ShouldPlay: true}
	}

	// Overlaps between schedule entries are resolved by array position
	// only; there is no priority metadata.
	for _, sched := range cfg.Schedules {
		if !sched.Enabled {
			continue
		}
		trigger, ok := scheduleTrigger(cfg, times, sched, now)
		if !ok {
			continue
		}
		start, end := scheduleWindow(cfg, sched, trigger)
		if !now.Before(start) && now.Before(end) {
			return AudioDecision{PlaylistID: sched.PlaylistID, ShouldPlay: true}
		}
	}

	return AudioDecision{}
}

// scheduleTrigger resolves the anchor instant of a schedule entry for the
// current day.
func scheduleTrigger(cfg *model.MosqueConfig, times *prayer.Times, sched model.AudioSchedule, now time.Time) (time.Time, bool) {
	switch sched.Type {
	case model.ScheduleTypeManualTime:
		parsed, err := time.Parse("15:04", sched.At)
		if err != nil {
			return time.Time{}, false
		}
		loc := cfg.Location()
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, loc), true

	case model.ScheduleTypePrayerRelative:
		if times == nil {
			return time.Time{}, false
		}
		// Jumat is the Friday congregation; its schedules stay silent
		// the rest of the week even though the instant maps to Dzuhur.
		if sched.Prayer == model.PrayerJumat && now.In(cfg.Location()).Weekday() != time.Friday {
			return time.Time{}, false
		}
		prayerAt, ok := times.ForPrayer(sched.Prayer)
		if !ok {
			return time.Time{}, false
		}
		if sched.Trigger == model.TriggerIqamah {
			return prayerAt.Add(time.Duration(cfg.Iqamah.WaitFor(sched.Prayer)) * time.Minute), true
		}
		return prayerAt, true
	}
	return time.Time{}, false
}

// scheduleWindow derives the active interval from the offset sign: a
// negative offset plays up to the trigger, a non-negative offset plays
// after it for the default window, capped at the playlist length when the
// length is known.
func scheduleWindow(cfg *model.MosqueConfig, sched model.AudioSchedule, trigger time.Time) (time.Time, time.Time) {
	offset := time.Duration(sched.OffsetMinutes) * time.Minute
	if sched.OffsetMinutes < 0 {
		return trigger.Add(offset), trigger
	}

	start := trigger.Add(offset)
	window := time.Duration(model.DefaultSchedulePlayMinutes) * time.Minute
	if total := playlistDuration(cfg, sched.PlaylistID); total > 0 && total < window {
		window = total
	}
	return start, start.Add(window)
}

func playlistDuration(cfg *model.MosqueConfig, playlistID string) time.Duration {
	for _, p := range cfg.Playlists {
		if p.ID == playlistID {
			return time.Duration(p.TotalDurationSeconds()) * time.Second
		}
	}
	return 0
}
