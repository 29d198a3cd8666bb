// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"github.com/menara-digital/menara/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// mosque config functions
	CreateMosque(key, name string, cfg *model.MosqueConfig, createdBy int) error
	GetMosqueConfig(key string) (*model.MosqueConfig, error)
	ListMosqueConfigs() ([]model.MosqueConfig, error)
	ListMosquesByOwner(ownerID int) ([]model.MosqueConfig, error)
	SaveMosqueConfig(key string, cfg *model.MosqueConfig) error
	GetMosqueOwner(key string) (int, error)
	DeleteMosque(key string) error

	// display functions
	GetDisplayByID(id int) (model.Display, error)
	GetDisplayByDeviceID(deviceID *string) (model.Display, error)
	IsDisplayPairedByDeviceID(deviceID *string) (bool, error)
	ListDisplays(mosqueKey string) ([]model.Display, error)
	CreateDisplay(mosqueKey, name string, location *string) (model.Display, error)
	PairDisplay(id int) error
	AssignDeviceIDToDisplay(displayID int, deviceID *string) error
	DeleteDisplay(id int) error

	// notification audit trail
	InsertNotificationLog(entry model.NotificationLog) error
	ListNotificationLog(mosqueKey string, limit int) ([]model.NotificationLog, error)
}

type pgStore struct{}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{}
}

func (*pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (*pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (*pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (*pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (*pgStore) CreateMosque(key, name string, cfg *model.MosqueConfig, createdBy int) error {
	return CreateMosque(key, name, cfg, createdBy)
}
func (*pgStore) GetMosqueConfig(key string) (*model.MosqueConfig, error) {
	return GetMosqueConfig(key)
}
func (*pgStore) ListMosqueConfigs() ([]model.MosqueConfig, error) { return ListMosqueConfigs() }
func (*pgStore) ListMosquesByOwner(ownerID int) ([]model.MosqueConfig, error) {
	return ListMosquesByOwner(ownerID)
}
func (*pgStore) SaveMosqueConfig(key string, cfg *model.MosqueConfig) error {
	return SaveMosqueConfig(key, cfg)
}
func (*pgStore) GetMosqueOwner(key string) (int, error) { return GetMosqueOwner(key) }
func (*pgStore) DeleteMosque(key string) error          { return DeleteMosque(key) }

func (*pgStore) GetDisplayByID(id int) (model.Display, error) { return GetDisplayByID(id) }
func (*pgStore) GetDisplayByDeviceID(deviceID *string) (model.Display, error) {
	return GetDisplayByDeviceID(deviceID)
}
func (*pgStore) IsDisplayPairedByDeviceID(deviceID *string) (bool, error) {
	return IsDisplayPairedByDeviceID(deviceID)
}
func (*pgStore) ListDisplays(mosqueKey string) ([]model.Display, error) {
	return ListDisplays(mosqueKey)
}
func (*pgStore) CreateDisplay(mosqueKey, name string, location *string) (model.Display, error) {
	return CreateDisplay(mosqueKey, name, location)
}
func (*pgStore) PairDisplay(id int) error { return PairDisplay(id) }
func (*pgStore) AssignDeviceIDToDisplay(displayID int, deviceID *string) error {
	return AssignDeviceIDToDisplay(displayID, deviceID)
}
func (*pgStore) DeleteDisplay(id int) error { return DeleteDisplay(id) }

func (*pgStore) InsertNotificationLog(entry model.NotificationLog) error {
	return InsertNotificationLog(entry)
}
func (*pgStore) ListNotificationLog(mosqueKey string, limit int) ([]model.NotificationLog, error) {
	return ListNotificationLog(mosqueKey, limit)
}
