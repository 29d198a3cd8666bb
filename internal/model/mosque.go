package model

import "time"

// Canonical prayer keys used throughout the engine. Order matters: the
// phase machine scans the five daily prayers chronologically.
const (
	PrayerImsak   = "imsak"
	PrayerSubuh   = "subuh"
	PrayerSyuruq  = "syuruq"
	PrayerDzuhur  = "dzuhur"
	PrayerAshar   = "ashar"
	PrayerMaghrib = "maghrib"
	PrayerIsya    = "isya"
	PrayerJumat   = "jumat"
)

// DailyPrayers are the five congregational prayers, in time order.
var DailyPrayers = []string{PrayerSubuh, PrayerDzuhur, PrayerAshar, PrayerMaghrib, PrayerIsya}

var displayNames = map[string]string{
	PrayerSubuh:   "Subuh",
	PrayerSyuruq:  "Syuruq",
	PrayerDzuhur:  "Dzuhur",
	PrayerAshar:   "Ashar",
	PrayerMaghrib: "Maghrib",
	PrayerIsya:    "Isya",
	PrayerJumat:   "Jumat",
}

// DisplayName returns the human label for a prayer key ("subuh" -> "Subuh").
func DisplayName(prayer string) string {
	if name, ok := displayNames[prayer]; ok {
		return name
	}
	return prayer
}

// MosqueConfig is the full per-tenant configuration blob. It is persisted
// as a single JSON document keyed by MosqueKey and must be run through
// Normalize before the engine consumes it.
type MosqueConfig struct {
	Key               string         `json:"key"`
	Name              string         `json:"name"`
	City              string         `json:"city"`
	Timezone          string         `json:"timezone"`
	Latitude          float64        `json:"latitude"`
	Longitude         float64        `json:"longitude"`
	CalculationMethod string         `json:"calculation_method"`
	Adjustments       map[string]int `json:"adjustments"`

	Iqamah   IqamahSettings   `json:"iqamah"`
	Ramadhan RamadhanSettings `json:"ramadhan"`
	Adzan    AdzanSettings    `json:"adzan"`

	GlobalAudioURL string          `json:"global_audio_url"`
	Playlists      []AudioPlaylist `json:"playlists"`
	Schedules      []AudioSchedule `json:"schedules"`

	Wabot      WabotSettings       `json:"wabot"`
	Simulation *SimulationOverride `json:"simulation,omitempty"`
}

// HasCoordinates reports whether the mosque has a usable location. Without
// one no prayer schedule can be computed.
func (c *MosqueConfig) HasCoordinates() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// Location resolves the configured IANA timezone, falling back to UTC if
// the name cannot be loaded.
func (c *MosqueConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IqamahSettings controls the countdown between Adzan and the congregational
// prayer, and the blank-screen window during the prayer itself.
type IqamahSettings struct {
	Enabled             bool           `json:"enabled"`
	WaitMinutes         map[string]int `json:"wait_minutes"`
	SholatBlankMinutes  int            `json:"sholat_blank_minutes"`
	ReminderEnabled     bool           `json:"reminder_enabled"`
	ReminderAudioURL    string         `json:"reminder_audio_url"`
	ReminderLeadSeconds int            `json:"reminder_lead_seconds"`
}

// WaitFor returns the iqamah wait for a prayer in minutes. Mosques with
// iqamah disabled still get the default wait so the display transitions
// through a short countdown instead of jumping straight to Sholat.
func (s IqamahSettings) WaitFor(prayer string) int {
	if s.Enabled {
		if m, ok := s.WaitMinutes[prayer]; ok && m > 0 {
			return m
		}
	}
	return DefaultIqamahWaitMinutes
}

// RamadhanSettings enables the Imsak countdown window before Subuh.
type RamadhanSettings struct {
	Enabled            bool   `json:"enabled"`
	ImsakOffsetMinutes int    `json:"imsak_offset_minutes"`
	ImsakAudioEnabled  bool   `json:"imsak_audio_enabled"`
	ImsakAudioURL      string `json:"imsak_audio_url"`
}

// AdzanSettings controls the adzan overlay window and its audio.
type AdzanSettings struct {
	AudioEnabled  bool   `json:"audio_enabled"`
	AudioURL      string `json:"audio_url"`
	WindowMinutes int    `json:"window_minutes"`
}

// WabotSettings holds the WhatsApp gateway integration for one mosque.
// Template placeholders: {sholat} is the prayer display name, {jam} the
// local 24h HH:MM time.
type WabotSettings struct {
	Enabled       bool   `json:"enabled"`
	APIURL        string `json:"api_url"`
	SessionID     string `json:"session_id"`
	Target        string `json:"target"`
	Token         string `json:"token"`
	Template      string `json:"template"`
	ImsakTemplate string `json:"imsak_template"`
	UseAI         bool   `json:"use_ai"`
	AIPrompt      string `json:"ai_prompt"`
	ImsakAIPrompt string `json:"imsak_ai_prompt"`
}
