package engine

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/model"
)

// Sender dispatches one text message through the WhatsApp gateway.
type Sender interface {
	SendText(ctx context.Context, settings model.WabotSettings, text string) error
}

// TextGenerator produces notification copy from a prompt. Failures are
// always recoverable: the templated message is the fallback.
type TextGenerator interface {
	Generate(ctx context.Context, settings model.WabotSettings, prompt string) (string, error)
}

// Recorder appends dispatch outcomes to the audit trail. It must never
// block or fail the caller.
type Recorder interface {
	Record(mosqueKey string, event model.EdgeEvent, message string, sendErr error)
}

// Notifier deduplicates and dispatches prayer notifications. One instance
// serves all tenants of a sweep; per-mosque settings ride in on each call.
type Notifier struct {
	Ledger    Ledger
	Sender    Sender
	Generator TextGenerator
	Recorder  Recorder

	// SendTimeout bounds a single dispatch so a hung gateway call never
	// holds its ledger entry against a dead connection.
	SendTimeout time.Duration
}

func NewNotifier(ledger Ledger, sender Sender) *Notifier {
	return &Notifier{
		Ledger:      ledger,
		Sender:      sender,
		SendTimeout: 15 * time.Second,
	}
}

// MaybeNotify dispatches at most one message per event and reports
// whether anything was sent. The ledger is marked before the send: a
// failed send is still "attempted" for the day and is not retried, so
// concurrent evaluation cycles can never double-send.
func (n *Notifier) MaybeNotify(ctx context.Context, mosqueKey string, cfg *model.MosqueConfig, events []model.EdgeEvent, now time.Time) bool {
	if !cfg.Wabot.Enabled || len(events) == 0 {
		return false
	}

	sent := false
	for _, event := range events {
		key := DedupKey(mosqueKey, event)
		fresh, err := n.Ledger.MarkIfAbsent(ctx, key)
		if err != nil {
			log.Error().Err(err).Str("mosque", mosqueKey).Str("key", key).Msg("dedup ledger unavailable, skipping dispatch")
			continue
		}
		if !fresh {
			continue
		}

		message := n.composeMessage(ctx, cfg, event, now)
		sendCtx, cancel := context.WithTimeout(ctx, n.SendTimeout)
		sendErr := n.Sender.SendText(sendCtx, cfg.Wabot, message)
		cancel()

		if n.Recorder != nil {
			n.Recorder.Record(mosqueKey, event, message, sendErr)
		}
		if sendErr != nil {
			// Ledger entry stays: no same-day retry by design.
			log.Error().Err(sendErr).
				Str("mosque", mosqueKey).
				Str("event", event.DisplayLabel()).
				Msg("notification dispatch failed")
			continue
		}

		log.Info().
			Str("mosque", mosqueKey).
			Str("event", event.DisplayLabel()).
			Msg("notification dispatched")
		sent = true
	}
	return sent
}

// composeMessage renders the template for an event and, when AI copy is
// enabled, lets the generator replace it. Generator errors fall back to
// the template and never block the send.
func (n *Notifier) composeMessage(ctx context.Context, cfg *model.MosqueConfig, event model.EdgeEvent, now time.Time) string {
	template := cfg.Wabot.Template
	prompt := cfg.Wabot.AIPrompt
	if event.Kind == model.EdgeImsak {
		template = cfg.Wabot.ImsakTemplate
		prompt = cfg.Wabot.ImsakAIPrompt
	}

	message := renderTemplate(template, event, now.In(cfg.Location()))

	if cfg.Wabot.UseAI && cfg.Wabot.Token != "" && n.Generator != nil && prompt != "" {
		generated, err := n.Generator.Generate(ctx, cfg.Wabot, renderTemplate(prompt, event, now.In(cfg.Location())))
		if err != nil {
			log.Warn().Err(err).Str("mosque", cfg.Key).Msg("AI message generation failed, using template")
		} else if strings.TrimSpace(generated) != "" {
			message = strings.TrimSpace(generated)
		}
	}
	return message
}

func renderTemplate(template string, event model.EdgeEvent, localNow time.Time) string {
	r := strings.NewReplacer(
		"{sholat}", event.DisplayLabel(),
		"{jam}", localNow.Format("15:04"),
	)
	return r.Replace(template)
}
