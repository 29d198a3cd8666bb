package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FillsDefaults(t *testing.T) {
	cfg := Normalize(&MosqueConfig{Key: "al-falah"})

	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultCalculationMethod, cfg.CalculationMethod)
	assert.NotNil(t, cfg.Adjustments)
	assert.NotNil(t, cfg.Iqamah.WaitMinutes)
	assert.Equal(t, DefaultSholatBlankMinutes, cfg.Iqamah.SholatBlankMinutes)
	assert.Equal(t, DefaultReminderLeadSeconds, cfg.Iqamah.ReminderLeadSeconds)
	assert.Equal(t, DefaultAdzanWindowMinutes, cfg.Adzan.WindowMinutes)
	assert.Equal(t, DefaultImsakOffsetMinutes, cfg.Ramadhan.ImsakOffsetMinutes)
	assert.Equal(t, DefaultNotifyTemplate, cfg.Wabot.Template)
	assert.Equal(t, DefaultImsakNotifyTemplate, cfg.Wabot.ImsakTemplate)
}

func TestNormalize_IsIdempotentAndKeepsOverrides(t *testing.T) {
	cfg := &MosqueConfig{
		Key:      "al-falah",
		Timezone: "Asia/Makassar",
		Iqamah:   IqamahSettings{SholatBlankMinutes: 7},
		Wabot:    WabotSettings{Template: "custom {sholat}"},
	}
	Normalize(cfg)
	Normalize(cfg)

	assert.Equal(t, "Asia/Makassar", cfg.Timezone)
	assert.Equal(t, 7, cfg.Iqamah.SholatBlankMinutes)
	assert.Equal(t, "custom {sholat}", cfg.Wabot.Template)
}

func TestNormalize_ClearsStaleSimulation(t *testing.T) {
	cfg := &MosqueConfig{
		Simulation: &SimulationOverride{IsSimulating: false, State: SimulationAdzan},
	}
	Normalize(cfg)
	assert.Nil(t, cfg.Simulation)

	cfg.Simulation = &SimulationOverride{IsSimulating: true, State: SimulationAdzan, StartedAt: time.Now()}
	Normalize(cfg)
	assert.NotNil(t, cfg.Simulation)
}

func TestNormalize_NilConfig(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestIqamahSettings_WaitFor(t *testing.T) {
	disabled := IqamahSettings{WaitMinutes: map[string]int{PrayerSubuh: 20}}
	assert.Equal(t, DefaultIqamahWaitMinutes, disabled.WaitFor(PrayerSubuh))

	enabled := IqamahSettings{Enabled: true, WaitMinutes: map[string]int{PrayerSubuh: 20}}
	assert.Equal(t, 20, enabled.WaitFor(PrayerSubuh))
	assert.Equal(t, DefaultIqamahWaitMinutes, enabled.WaitFor(PrayerIsya))
}

func TestMosqueConfig_Location(t *testing.T) {
	cfg := &MosqueConfig{Timezone: "UTC"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestAudioPlaylist_TotalDurationSeconds(t *testing.T) {
	known := AudioPlaylist{Tracks: []AudioTrack{{DurationSeconds: 60}, {DurationSeconds: 30}}}
	assert.Equal(t, 90, known.TotalDurationSeconds())

	partial := AudioPlaylist{Tracks: []AudioTrack{{DurationSeconds: 60}, {DurationSeconds: 0}}}
	assert.Equal(t, 0, partial.TotalDurationSeconds())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Dzuhur", DisplayName(PrayerDzuhur))
	assert.Equal(t, "unknown", DisplayName("unknown"))
}
