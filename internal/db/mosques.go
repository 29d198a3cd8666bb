package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/model"
)

type mosqueRow struct {
	MosqueKey string          `db:"mosque_key"`
	Name      string          `db:"name"`
	CreatedBy int             `db:"created_by"`
	Config    json.RawMessage `db:"config"`
}

// ErrMosqueNotFound is returned for unknown tenant keys.
var ErrMosqueNotFound = errors.New("mosque not found")

func decodeConfig(row mosqueRow) (*model.MosqueConfig, error) {
	var cfg model.MosqueConfig
	if err := json.Unmarshal(row.Config, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config for mosque %q: %w", row.MosqueKey, err)
	}
	cfg.Key = row.MosqueKey
	cfg.Name = row.Name
	return &cfg, nil
}

// inserts a new tenant with its initial config blob.
func CreateMosque(key, name string, cfg *model.MosqueConfig, createdBy int) error {
	cfg.Key = key
	cfg.Name = name
	blob, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = DB.Exec(`
		INSERT INTO mosques (mosque_key, name, created_by, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now());
		`, key, name, createdBy, blob)
	if err != nil {
		log.Error().Err(err).Str("mosque", key).Msg("failed to create mosque")
	}
	return err
}

// fetches one tenant's config blob. Returns ErrMosqueNotFound for an
// unknown key.
func GetMosqueConfig(key string) (*model.MosqueConfig, error) {
	var row mosqueRow
	err := DB.Get(&row, `
		SELECT mosque_key, name, created_by, config
		FROM mosques
		WHERE mosque_key = $1;
		`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMosqueNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("mosque", key).Msg("failed to get mosque config")
		return nil, err
	}
	return decodeConfig(row)
}

// lists every tenant config for the sweep worker. A single malformed
// config is skipped and logged so it cannot poison the whole sweep.
func ListMosqueConfigs() ([]model.MosqueConfig, error) {
	var rows []mosqueRow
	err := DB.Select(&rows, `
		SELECT mosque_key, name, created_by, config
		FROM mosques
		ORDER BY mosque_key;
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list mosque configs")
		return nil, err
	}

	out := make([]model.MosqueConfig, 0, len(rows))
	for _, row := range rows {
		cfg, err := decodeConfig(row)
		if err != nil {
			log.Error().Err(err).Str("mosque", row.MosqueKey).Msg("skipping malformed mosque config")
			continue
		}
		out = append(out, *cfg)
	}
	return out, nil
}

// lists the tenants owned by one dashboard account.
func ListMosquesByOwner(ownerID int) ([]model.MosqueConfig, error) {
	var rows []mosqueRow
	err := DB.Select(&rows, `
		SELECT mosque_key, name, created_by, config
		FROM mosques
		WHERE created_by = $1
		ORDER BY mosque_key;
		`, ownerID)
	if err != nil {
		log.Error().Err(err).Int("owner", ownerID).Msg("failed to list mosques by owner")
		return nil, err
	}

	out := make([]model.MosqueConfig, 0, len(rows))
	for _, row := range rows {
		cfg, err := decodeConfig(row)
		if err != nil {
			log.Error().Err(err).Str("mosque", row.MosqueKey).Msg("skipping malformed mosque config")
			continue
		}
		out = append(out, *cfg)
	}
	return out, nil
}

// replaces a tenant's config blob (simulation toggles and wabot settings
// are plain config writes).
func SaveMosqueConfig(key string, cfg *model.MosqueConfig) error {
	cfg.Key = key
	blob, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	res, err := DB.Exec(`
		UPDATE mosques
		SET name = $2,
		config = $3,
		updated_at = now()
		WHERE mosque_key = $1;
		`, key, cfg.Name, blob)
	if err != nil {
		log.Error().Err(err).Str("mosque", key).Msg("failed to save mosque config")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMosqueNotFound
	}
	return nil
}

// returns the owning account ID for an ownership check.
func GetMosqueOwner(key string) (int, error) {
	var owner int
	err := DB.Get(&owner, `SELECT created_by FROM mosques WHERE mosque_key = $1;`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrMosqueNotFound
	}
	return owner, err
}

func DeleteMosque(key string) error {
	_, err := DB.Exec(`DELETE FROM mosques WHERE mosque_key = $1;`, key)
	if err != nil {
		log.Error().Err(err).Str("mosque", key).Msg("failed to delete mosque")
	}
	return err
}
