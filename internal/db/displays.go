package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/menara-digital/menara/internal/model"
)

func GetDisplayByID(id int) (model.Display, error) {
	var display model.Display
	err := DB.Get(&display, `
		SELECT id, device_id, mosque_key, name, location, paired, created_at, updated_at
		FROM displays
		WHERE id = $1
		`, id)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to get display by id")
	}
	return display, err
}

func GetDisplayByDeviceID(deviceID *string) (model.Display, error) {
	var display model.Display
	err := DB.Get(&display, `
		SELECT id, device_id, mosque_key, name, location, paired, created_at, updated_at
		FROM displays
		WHERE device_id = $1
		`, deviceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Msg("failed to get display by device id")
	}
	return display, err
}

func IsDisplayPairedByDeviceID(deviceID *string) (bool, error) {
	var isPaired bool
	err := DB.Get(&isPaired, `
		SELECT paired
		FROM displays
		WHERE device_id = $1
		`, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return isPaired, err
}

func ListDisplays(mosqueKey string) ([]model.Display, error) {
	var displays []model.Display
	err := DB.Select(&displays, `
		SELECT id, device_id, mosque_key, name, location, paired, created_at, updated_at
		FROM displays
		WHERE mosque_key = $1
		ORDER BY id
		`, mosqueKey)
	if err != nil {
		log.Error().Err(err).Str("mosque", mosqueKey).Msg("failed to list displays")
	}
	return displays, err
}

func CreateDisplay(mosqueKey, name string, location *string) (model.Display, error) {
	var d model.Display
	q := `
	INSERT INTO displays (mosque_key, name, location, paired, created_at, updated_at)
	VALUES ($1, $2, $3, false, now(), now())
	RETURNING id, device_id, mosque_key, name, location, paired, created_at, updated_at;`
	if err := DB.Get(&d, q, mosqueKey, name, location); err != nil {
		log.Error().Err(err).Str("mosque", mosqueKey).Msg("failed to create display")
		return model.Display{}, err
	}
	return d, nil
}

func PairDisplay(id int) error {
	_, err := DB.Exec(`
		UPDATE displays
		SET paired = TRUE,
		updated_at = now()
		WHERE id = $1
		`, id)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to pair display")
	}
	return err
}

func AssignDeviceIDToDisplay(displayID int, deviceID *string) error {
	_, err := DB.Exec(`
		UPDATE displays
		SET device_id = COALESCE($2, device_id),
		updated_at = now()
		WHERE id = $1
		`, displayID, deviceID)
	if err != nil {
		log.Error().Err(err).Int("display_id", displayID).Msg("failed to assign device ID to display")
	}
	return err
}

func DeleteDisplay(id int) error {
	_, err := DB.Exec(`DELETE FROM displays WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to delete display")
	}
	return err
}
