package model

// Phase is the continuous display state of a mosque clock. Exactly one
// phase is active at any instant.
type Phase string

const (
	PhaseNormal Phase = "NORMAL"
	PhaseImsak  Phase = "IMSAK"
	PhaseAdzan  Phase = "ADZAN"
	PhaseIqamah Phase = "IQAMAH"
	PhaseSholat Phase = "SHOLAT"
)

// PhaseState is the result of one evaluation tick.
//
// The adzan instant is deliberately dual-purpose in the display: the
// countdown phase becomes IQAMAH immediately at the prayer time, while the
// adzan itself is an overlay over the first minutes of that countdown.
// AdzanOverlay carries the overlay; edge-triggered adzan events are the
// Tracker's job, not part of this snapshot.
type PhaseState struct {
	Phase            Phase  `json:"phase"`
	Prayer           string `json:"prayer,omitempty"`
	SecondsRemaining int    `json:"seconds_remaining"`
	AdzanOverlay     bool   `json:"adzan_overlay,omitempty"`

	// NoSchedule is set when no prayer schedule could be computed
	// (missing coordinates, provider failure). The display falls back
	// to a plain clock.
	NoSchedule bool `json:"no_schedule,omitempty"`

	// Simulated marks states produced by an operator override. Simulated
	// states never produce edge events.
	Simulated bool `json:"simulated,omitempty"`

	// ForcedPlaylistID is set by the PLAYLIST simulation tag and makes
	// the audio resolver play that playlist unconditionally.
	ForcedPlaylistID string `json:"forced_playlist_id,omitempty"`
}

// EdgeKind distinguishes the two notification-worthy instants of a day.
type EdgeKind string

const (
	EdgeAdzan EdgeKind = "adzan"
	EdgeImsak EdgeKind = "imsak"
)

// EdgeEvent fires once per (mosque, event, calendar day) when the wall
// clock crosses a prayer or imsak instant.
type EdgeEvent struct {
	Kind   EdgeKind `json:"kind"`
	Prayer string   `json:"prayer,omitempty"`
	Day    string   `json:"day"` // "2006-01-02" in mosque-local time
}

// DisplayLabel is the name substituted into notification templates and
// used in the dedup key.
func (e EdgeEvent) DisplayLabel() string {
	if e.Kind == EdgeImsak {
		return "Imsak"
	}
	return DisplayName(e.Prayer)
}
