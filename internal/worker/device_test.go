package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
)

type scriptedSource struct {
	cfg *model.MosqueConfig
	err error
}

func (s *scriptedSource) FetchConfig(context.Context) (*model.MosqueConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.cfg
	return &copied, nil
}

type tickCapture struct {
	states []model.PhaseState
	audio  []engine.AudioDecision
}

func (c *tickCapture) render(state model.PhaseState, audio engine.AudioDecision) {
	c.states = append(c.states, state)
	c.audio = append(c.audio, audio)
}

func deviceConfig() *model.MosqueConfig {
	cfg := sweepConfig("al-falah")
	cfg.Adzan.AudioEnabled = true
	cfg.Adzan.AudioURL = "https://cdn.example.com/adzan.mp3"
	return &cfg
}

func newTestLoop(source ConfigSource, capture *tickCapture) *DeviceLoop {
	schedule := prayer.NewSchedule(&prayer.Fixed{Clock: sweepClock()})
	return NewDeviceLoop(source, schedule, capture.render)
}

func TestDeviceLoop_TickRendersEvaluatedState(t *testing.T) {
	capture := &tickCapture{}
	loop := newTestLoop(&scriptedSource{cfg: deviceConfig()}, capture)
	assert.NoError(t, loop.refresh(context.Background()))

	loop.Tick(context.Background(), time.Date(2026, 3, 10, 12, 0, 30, 0, time.UTC))

	if assert.Len(t, capture.states, 1) {
		assert.Equal(t, model.PhaseIqamah, capture.states[0].Phase)
		assert.True(t, capture.states[0].AdzanOverlay)
		assert.True(t, capture.audio[0].ShouldPlay)
	}
}

func TestDeviceLoop_TickWithoutConfigIsSilent(t *testing.T) {
	capture := &tickCapture{}
	loop := newTestLoop(&scriptedSource{err: assert.AnError}, capture)

	loop.Tick(context.Background(), time.Now())
	assert.Empty(t, capture.states)
}

func TestDeviceLoop_ManualStopLatchesUntilSourceChanges(t *testing.T) {
	capture := &tickCapture{}
	loop := newTestLoop(&scriptedSource{cfg: deviceConfig()}, capture)
	assert.NoError(t, loop.refresh(context.Background()))

	during := time.Date(2026, 3, 10, 12, 1, 0, 0, time.UTC)
	loop.Tick(context.Background(), during)
	assert.True(t, capture.audio[0].ShouldPlay)

	// The viewer stops the adzan audio; the same source stays stopped.
	loop.StopAudio()
	loop.Tick(context.Background(), during.Add(time.Second))
	assert.False(t, capture.audio[1].ShouldPlay)

	// Past the adzan window the source disappears, which clears the
	// latch for whatever plays next.
	loop.Tick(context.Background(), during.Add(5*time.Minute))
	assert.False(t, capture.audio[2].ShouldPlay)
	assert.False(t, loop.manualStop)
}

func TestDeviceLoop_RefreshFailureKeepsLastSnapshot(t *testing.T) {
	capture := &tickCapture{}
	source := &scriptedSource{cfg: deviceConfig()}
	loop := newTestLoop(source, capture)
	assert.NoError(t, loop.refresh(context.Background()))

	source.err = assert.AnError
	assert.Error(t, loop.refresh(context.Background()))

	// The display keeps rendering from the last good config.
	loop.Tick(context.Background(), time.Date(2026, 3, 10, 12, 0, 30, 0, time.UTC))
	if assert.Len(t, capture.states, 1) {
		assert.Equal(t, model.PhaseIqamah, capture.states[0].Phase)
	}
}

func TestDeviceLoop_DeauthorizationResetsDevice(t *testing.T) {
	capture := &tickCapture{}
	source := &scriptedSource{cfg: deviceConfig()}
	loop := newTestLoop(source, capture)
	assert.NoError(t, loop.refresh(context.Background()))

	deauthorized := false
	loop.OnDeauthorized = func() { deauthorized = true }

	source.err = ErrDeviceDeauthorized
	err := loop.refresh(context.Background())
	assert.ErrorIs(t, err, ErrDeviceDeauthorized)
	assert.True(t, deauthorized)

	// The snapshot is gone: subsequent ticks render nothing.
	loop.Tick(context.Background(), time.Now())
	assert.Empty(t, capture.states)
}
