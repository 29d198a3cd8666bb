package db

import (
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/model"
)

// appends one dispatch outcome to the audit trail.
func InsertNotificationLog(entry model.NotificationLog) error {
	_, err := DB.Exec(`
		INSERT INTO notification_log (mosque_key, event, prayer, message, success, error, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, entry.MosqueKey, entry.Event, entry.Prayer, entry.Message, entry.Success, entry.Error, entry.SentAt)
	if err != nil {
		log.Error().Err(err).Str("mosque", entry.MosqueKey).Msg("failed to insert notification log")
	}
	return err
}

func ListNotificationLog(mosqueKey string, limit int) ([]model.NotificationLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []model.NotificationLog
	err := DB.Select(&out, `
		SELECT id, mosque_key, event, prayer, message, success, error, sent_at
		FROM notification_log
		WHERE mosque_key = $1
		ORDER BY sent_at DESC
		LIMIT $2;
		`, mosqueKey, limit)
	if err != nil {
		log.Error().Err(err).Str("mosque", mosqueKey).Msg("failed to list notification log")
		return nil, err
	}
	return out, nil
}
