package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/menara-digital/menara/internal/model"
)

func TestResolveAudio_ForcedPlaylistBeatsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Adzan.AudioEnabled = true
	cfg.Adzan.AudioURL = "https://cdn.example.com/adzan.mp3"
	times := testTimes()

	state := model.PhaseState{Phase: model.PhaseNormal, ForcedPlaylistID: "murottal", Simulated: true}
	decision := ResolveAudio(cfg, times, times.Dzuhur, state)

	assert.True(t, decision.ShouldPlay)
	assert.Equal(t, "murottal", decision.PlaylistID)
	assert.Empty(t, decision.URL)
}

func TestResolveAudio_AdzanAudioDuringOverlay(t *testing.T) {
	cfg := testConfig()
	cfg.Adzan.AudioEnabled = true
	cfg.Adzan.AudioURL = "https://cdn.example.com/adzan.mp3"
	times := testTimes()

	state := Evaluate(cfg, times, times.Dzuhur.Add(time.Minute))
	decision := ResolveAudio(cfg, times, times.Dzuhur.Add(time.Minute), state)

	assert.True(t, decision.ShouldPlay)
	assert.Equal(t, cfg.Adzan.AudioURL, decision.URL)

	// Audio disabled means the overlay stays silent.
	cfg.Adzan.AudioEnabled = false
	decision = ResolveAudio(cfg, times, times.Dzuhur.Add(time.Minute), state)
	assert.False(t, decision.ShouldPlay)
}

func TestResolveAudio_IqamahReminderInFinalSeconds(t *testing.T) {
	cfg := testConfig()
	cfg.Iqamah.ReminderEnabled = true
	cfg.Iqamah.ReminderAudioURL = "https://cdn.example.com/reminder.mp3"
	times := testTimes()

	iqamahAt := times.Dzuhur.Add(10 * time.Minute)

	// Five minutes out: too early for the reminder.
	now := iqamahAt.Add(-5 * time.Minute)
	decision := ResolveAudio(cfg, times, now, Evaluate(cfg, times, now))
	assert.False(t, decision.ShouldPlay)

	// Ninety seconds out: inside the default two-minute lead.
	now = iqamahAt.Add(-90 * time.Second)
	decision = ResolveAudio(cfg, times, now, Evaluate(cfg, times, now))
	assert.True(t, decision.ShouldPlay)
	assert.Equal(t, cfg.Iqamah.ReminderAudioURL, decision.URL)
}

func TestResolveAudio_ImsakAudio(t *testing.T) {
	cfg := testConfig()
	cfg.Ramadhan.Enabled = true
	cfg.Ramadhan.ImsakAudioEnabled = true
	cfg.Ramadhan.ImsakAudioURL = "https://cdn.example.com/imsak.mp3"
	times := testTimes()

	now := times.Subuh.Add(-5 * time.Minute)
	decision := ResolveAudio(cfg, times, now, Evaluate(cfg, times, now))

	assert.True(t, decision.ShouldPlay)
	assert.Equal(t, cfg.Ramadhan.ImsakAudioURL, decision.URL)
}

func TestResolveAudio_NegativeOffsetPlaysUpToTrigger(t *testing.T) {
	cfg := testConfig()
	cfg.Schedules = []model.AudioSchedule{{
		ID:            "tarhim",
		PlaylistID:    "tarhim-pl",
		Type:          model.ScheduleTypePrayerRelative,
		Prayer:        model.PrayerMaghrib,
		Trigger:       model.TriggerAdzan,
		OffsetMinutes: -10,
		Enabled:       true,
	}}
	times := testTimes()
	state := model.PhaseState{Phase: model.PhaseNormal}

	decision := ResolveAudio(cfg, times, times.Maghrib.Add(-10*time.Minute), state)
	assert.True(t, decision.ShouldPlay)
	assert.Equal(t, "tarhim-pl", decision.PlaylistID)

	// The window is half-open: nothing at the trigger itself.
	decision = ResolveAudio(cfg, times, times.Maghrib, state)
	assert.False(t, decision.ShouldPlay)

	decision = ResolveAudio(cfg, times, times.Maghrib.Add(-11*time.Minute), state)
	assert.False(t, decision.ShouldPlay)
}

func TestResolveAudio_PostTriggerWindowCappedByPlaylistLength(t *testing.T) {
	cfg := testConfig()
	cfg.Playlists = []model.AudioPlaylist{{
		ID: "kajian",
		Tracks: []model.AudioTrack{
			{ID: "a", DurationSeconds: 120},
			{ID: "b", DurationSeconds: 180},
		},
	}}
	cfg.Schedules = []model.AudioSchedule{{
		ID:            "after-subuh",
		PlaylistID:    "kajian",
		Type:          model.ScheduleTypePrayerRelative,
		Prayer:        model.PrayerSubuh,
		Trigger:       model.TriggerIqamah,
		OffsetMinutes: 0,
		Enabled:       true,
	}}
	times := testTimes()
	state := model.PhaseState{Phase: model.PhaseNormal}

	iqamahAt := times.Subuh.Add(10 * time.Minute)

	decision := ResolveAudio(cfg, times, iqamahAt.Add(4*time.Minute), state)
	assert.True(t, decision.ShouldPlay)

	// Known playlist length (5 min) caps the default 15-minute window.
	decision = ResolveAudio(cfg, times, iqamahAt.Add(6*time.Minute), state)
	assert.False(t, decision.ShouldPlay)
}

func TestResolveAudio_UnknownPlaylistLengthUsesDefaultWindow(t *testing.T) {
	cfg := testConfig()
	cfg.Playlists = []model.AudioPlaylist{{
		ID:     "kajian",
		Tracks: []model.AudioTrack{{ID: "a", DurationSeconds: 0}},
	}}
	cfg.Schedules = []model.AudioSchedule{{
		ID:         "morning",
		PlaylistID: "kajian",
		Type:       model.ScheduleTypeManualTime,
		At:         "07:00",
		Enabled:    true,
	}}
	times := testTimes()
	state := model.PhaseState{Phase: model.PhaseNormal}
	day := times.Dzuhur.Truncate(24 * time.Hour)

	decision := ResolveAudio(cfg, times, day.Add(7*time.Hour+14*time.Minute), state)
	assert.True(t, decision.ShouldPlay)

	decision = ResolveAudio(cfg, times, day.Add(7*time.Hour+15*time.Minute), state)
	assert.False(t, decision.ShouldPlay)
}

func TestResolveAudio_ArrayOrderBreaksOverlaps(t *testing.T) {
	cfg := testConfig()
	mk := func(id, playlist string) model.AudioSchedule {
		return model.AudioSchedule{
			ID:         id,
			PlaylistID: playlist,
			Type:       model.ScheduleTypeManualTime,
			At:         "09:00",
			Enabled:    true,
		}
	}
	cfg.Schedules = []model.AudioSchedule{mk("first", "pl-1"), mk("second", "pl-2")}
	times := testTimes()
	now := times.Dzuhur.Truncate(24 * time.Hour).Add(9*time.Hour + time.Minute)

	decision := ResolveAudio(cfg, times, now, model.PhaseState{Phase: model.PhaseNormal})
	assert.Equal(t, "pl-1", decision.PlaylistID)

	// Disabling the first entry promotes the second.
	cfg.Schedules[0].Enabled = false
	decision = ResolveAudio(cfg, times, now, model.PhaseState{Phase: model.PhaseNormal})
	assert.Equal(t, "pl-2", decision.PlaylistID)
}

func TestResolveAudio_JumatScheduleOnlyPlaysOnFriday(t *testing.T) {
	cfg := testConfig()
	cfg.Schedules = []model.AudioSchedule{{
		ID:            "jumat-murottal",
		PlaylistID:    "murottal-jumat",
		Type:          model.ScheduleTypePrayerRelative,
		Prayer:        model.PrayerJumat,
		Trigger:       model.TriggerAdzan,
		OffsetMinutes: -10,
		Enabled:       true,
	}}
	times := testTimes()
	state := model.PhaseState{Phase: model.PhaseNormal}

	// 2026-03-10 is a Tuesday: the Friday congregation playlist must
	// not fire even though jumat maps to the Dzuhur instant.
	decision := ResolveAudio(cfg, times, times.Dzuhur.Add(-5*time.Minute), state)
	assert.False(t, decision.ShouldPlay)

	// Same window on Friday 2026-03-13 plays.
	friday := *times
	friday.Dzuhur = times.Dzuhur.Add(3 * 24 * time.Hour)
	decision = ResolveAudio(cfg, &friday, friday.Dzuhur.Add(-5*time.Minute), state)
	assert.True(t, decision.ShouldPlay)
	assert.Equal(t, "murottal-jumat", decision.PlaylistID)
}

func TestResolveAudio_GlobalFallbackNeverAutoPlays(t *testing.T) {
	cfg := testConfig()
	cfg.GlobalAudioURL = "https://cdn.example.com/ambient.mp3"
	times := testTimes()

	decision := ResolveAudio(cfg, times, times.Dzuhur.Add(-time.Hour), model.PhaseState{Phase: model.PhaseNormal})
	assert.False(t, decision.ShouldPlay)
	assert.Empty(t, decision.URL)
}

func TestAudioDecision_SameSource(t *testing.T) {
	a := AudioDecision{URL: "x", ShouldPlay: true}
	assert.True(t, a.SameSource(AudioDecision{URL: "x"}))
	assert.False(t, a.SameSource(AudioDecision{URL: "y"}))
	assert.False(t, a.SameSource(AudioDecision{PlaylistID: "x"}))
}
