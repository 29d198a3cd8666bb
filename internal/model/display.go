package model

import "time"

// Display represents a kiosk device registered to a mosque.
type Display struct {
	ID        int       `db:"id"         json:"id"`
	DeviceID  *string   `db:"device_id"  json:"device_id"`
	MosqueKey string    `db:"mosque_key" json:"mosque_key"`
	Name      string    `db:"name"       json:"name"`
	Location  *string   `db:"location"   json:"location"`
	Paired    bool      `db:"paired"     json:"paired"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NotificationLog is one row of the dispatch audit trail.
type NotificationLog struct {
	ID        int       `db:"id"         json:"id"`
	MosqueKey string    `db:"mosque_key" json:"mosque_key"`
	Event     string    `db:"event"      json:"event"`
	Prayer    string    `db:"prayer"     json:"prayer"`
	Message   string    `db:"message"    json:"message"`
	Success   bool      `db:"success"    json:"success"`
	Error     *string   `db:"error"      json:"error,omitempty"`
	SentAt    time.Time `db:"sent_at"    json:"sent_at"`
}
