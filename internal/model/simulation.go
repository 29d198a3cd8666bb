package model

import "time"

// Simulation state tags. The phase tags mirror Phase; PLAYLIST bypasses
// phase semantics entirely and only forces a playlist through the audio
// resolver.
const (
	SimulationNormal   = "NORMAL"
	SimulationImsak    = "IMSAK"
	SimulationAdzan    = "ADZAN"
	SimulationIqamah   = "IQAMAH"
	SimulationSholat   = "SHOLAT"
	SimulationPlaylist = "PLAYLIST"
)

// SimulationOverride is operator-settable test state. While IsSimulating
// is true the evaluator short-circuits to the simulated phase on every
// tick and skips all real-time computation. Simulation never touches the
// notification path.
type SimulationOverride struct {
	IsSimulating bool      `json:"is_simulating"`
	Prayer       string    `json:"prayer,omitempty"`
	State        string    `json:"state"`
	PlaylistID   string    `json:"playlist_id,omitempty"`
	StartedAt    time.Time `json:"started_at"`
}
