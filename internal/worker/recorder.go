package worker

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/model"
)

// NotificationStore is the slice of the store the recorder writes to.
type NotificationStore interface {
	InsertNotificationLog(entry model.NotificationLog) error
}

// StoreRecorder appends dispatch outcomes to the notification audit
// trail. Insert failures are logged and swallowed so bookkeeping can
// never break a dispatch.
type StoreRecorder struct {
	Store NotificationStore
}

func (r *StoreRecorder) Record(mosqueKey string, event model.EdgeEvent, message string, sendErr error) {
	entry := model.NotificationLog{
		MosqueKey: mosqueKey,
		Event:     string(event.Kind),
		Prayer:    event.Prayer,
		Message:   message,
		Success:   sendErr == nil,
		SentAt:    time.Now(),
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Error = &msg
	}
	if err := r.Store.InsertNotificationLog(entry); err != nil {
		log.Error().Err(err).Str("mosque", mosqueKey).Msg("could not record notification outcome")
	}
}
