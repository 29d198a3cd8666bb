package model

// AudioTrack is one entry of a playlist. DurationSeconds is zero when the
// length of the file is unknown.
type AudioTrack struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
}

type AudioPlaylist struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Tracks []AudioTrack `json:"tracks"`
}

// TotalDurationSeconds sums the track lengths. It returns 0 (unknown) as
// soon as any track length is unknown, so callers never cap a window on a
// partial figure.
func (p AudioPlaylist) TotalDurationSeconds() int {
	total := 0
	for _, t := range p.Tracks {
		if t.DurationSeconds <= 0 {
			return 0
		}
		total += t.DurationSeconds
	}
	return total
}

// Audio schedule types and triggers.
const (
	ScheduleTypePrayerRelative = "prayer_relative"
	ScheduleTypeManualTime     = "manual_time"

	TriggerAdzan  = "adzan"
	TriggerIqamah = "iqamah"
)

// AudioSchedule plays a playlist around a trigger instant.
//
// A negative OffsetMinutes means "start that many minutes before the
// trigger, stop exactly at the trigger". A non-negative offset means
// "start at trigger+offset and play for the default post-trigger window
// (or until the playlist ends, if its length is known and shorter)".
//
// Overlapping schedules are resolved by array position: the first enabled
// schedule whose window contains the evaluation instant wins. There is no
// priority field; see ResolveAudio.
type AudioSchedule struct {
	ID            string `json:"id"`
	PlaylistID    string `json:"playlist_id"`
	Type          string `json:"type"`
	Prayer        string `json:"prayer,omitempty"`
	Trigger       string `json:"trigger,omitempty"`
	At            string `json:"at,omitempty"` // "HH:MM", manual_time only
	OffsetMinutes int    `json:"offset_minutes"`
	Enabled       bool   `json:"enabled"`
}
