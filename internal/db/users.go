package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/model"
)

// ErrUserNotFound is returned for unknown account IDs and emails.
var ErrUserNotFound = errors.New("user not found")

// inserts a dashboard account and returns its ID.
func CreateUser(email, hashedPassword string, name *string) (int, error) {
	var id int
	err := DB.QueryRow(`
		INSERT INTO users (email, hashed_password, name, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id;
		`, email, hashedPassword, name).Scan(&id)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return 0, err
	}
	return id, nil
}

func GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := DB.Get(&u, `
		SELECT id, email, hashed_password, name, created_at, updated_at
		FROM users
		WHERE email = $1;
		`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

func GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := DB.Get(&u, `
		SELECT id, email, hashed_password, name, created_at, updated_at
		FROM users
		WHERE id = $1;
		`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// updates email and name and bumps updated_at.
func UpdateUserProfile(id int, email string, name *string) error {
	res, err := DB.Exec(`
		UPDATE users
		SET email = $2,
		name = $3,
		updated_at = now()
		WHERE id = $1;
		`, id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to update user profile")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
