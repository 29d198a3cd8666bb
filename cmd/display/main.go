package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
	"github.com/menara-digital/menara/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on process environment")
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	serverURL := os.Getenv("MENARA_SERVER_URL")
	deviceID := os.Getenv("MENARA_DEVICE_ID")
	if serverURL == "" || deviceID == "" {
		log.Fatal().Msg("MENARA_SERVER_URL and MENARA_DEVICE_ID are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := newHTTPConfigSource(serverURL, deviceID)
	schedule := prayer.NewSchedule(prayer.NewHTTPProvider(prayerAPIURL()))

	loop := worker.NewDeviceLoop(source, schedule, renderState)
	loop.OnDeauthorized = func() {
		log.Warn().Msg("device deauthorized, re-entering pairing mode")
	}

	// An unpaired device loops on pairing registration until the server
	// accepts its config fetch.
	for {
		if _, err := source.FetchConfig(ctx); err == nil {
			break
		} else if errors.Is(err, worker.ErrDeviceDeauthorized) {
			code := pairingCode()
			if err := source.registerPairingCode(ctx, code); err != nil {
				log.Error().Err(err).Msg("could not register pairing code")
			} else {
				log.Info().Str("code", code).Msg("pairing code registered, waiting for claim")
			}
		} else {
			log.Warn().Err(err).Msg("server unreachable, retrying")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(15 * time.Second):
		}
	}

	log.Info().Str("device", deviceID).Msg("device paired, starting display loop")
	loop.Run(ctx)
}

func prayerAPIURL() string {
	if url := os.Getenv("PRAYER_API_URL"); url != "" {
		return url
	}
	return "https://api.aladhan.com"
}

// pairingCode produces a short numeric code for on-screen display.
func pairingCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// renderState is the headless renderer: it logs what a kiosk UI would
// draw. Real kiosks replace this with their frontend bridge.
func renderState(state model.PhaseState, audio engine.AudioDecision) {
	ev := log.Info().
		Str("phase", string(state.Phase)).
		Int("seconds_remaining", state.SecondsRemaining)
	if state.Prayer != "" {
		ev = ev.Str("prayer", state.Prayer)
	}
	if state.AdzanOverlay {
		ev = ev.Bool("adzan_overlay", true)
	}
	if audio.ShouldPlay {
		if audio.URL != "" {
			ev = ev.Str("audio_url", audio.URL)
		}
		if audio.PlaylistID != "" {
			ev = ev.Str("playlist", audio.PlaylistID)
		}
	}
	ev.Msg("tick")
}
