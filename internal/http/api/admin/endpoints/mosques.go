package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/http/api"
	"github.com/menara-digital/menara/internal/http/api/admin/packets"
	"github.com/menara-digital/menara/internal/model"
)

type MosqueController struct {
	store  db.Store
	sender engine.Sender
}

// MosqueModule mounts tenant config CRUD and the wabot settings surface.
func MosqueModule(store db.Store, sender engine.Sender) api.Module {
	ctl := &MosqueController{store: store, sender: sender}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/mosques", ctl.createMosque)
		c.GET("/mosques", ctl.listMosques)
		c.GET("/mosques/:key", ctl.getMosque)
		c.PUT("/mosques/:key", ctl.updateMosque)
		c.DELETE("/mosques/:key", ctl.deleteMosque)

		c.PUT("/mosques/:key/wabot", ctl.updateWabot)
		c.POST("/mosques/:key/wabot/test", ctl.testSend)
	})
}

// requireOwner loads a mosque and rejects callers who do not own it.
func requireOwner(store db.Store, key string, user *model.User) (*model.MosqueConfig, *api.APIError) {
	owner, err := store.GetMosqueOwner(key)
	if errors.Is(err, db.ErrMosqueNotFound) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "mosque not found"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load mosque"}
	}
	if owner != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	cfg, err := store.GetMosqueConfig(key)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load mosque config"}
	}
	return model.Normalize(cfg), nil
}

// POST /api/admin/mosques
func (m *MosqueController) createMosque(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var req packets.CreateMosqueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	cfg := model.Normalize(&model.MosqueConfig{
		Key:               req.Key,
		Name:              req.Name,
		City:              req.City,
		Timezone:          req.Timezone,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		CalculationMethod: req.CalculationMethod,
	})
	if err := m.store.CreateMosque(req.Key, req.Name, cfg, user.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create mosque"}
	}
	ctx.Status(http.StatusCreated)
	return cfg, nil
}

// GET /api/admin/mosques
func (m *MosqueController) listMosques(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	configs, err := m.store.ListMosquesByOwner(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list mosques"}
	}
	return configs, nil
}

// GET /api/admin/mosques/:key
func (m *MosqueController) getMosque(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	cfg, apiErr := requireOwner(m.store, ctx.Param("key"), user)
	if apiErr != nil {
		return nil, apiErr
	}
	return cfg, nil
}

// PUT /api/admin/mosques/:key
func (m *MosqueController) updateMosque(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	current, apiErr := requireOwner(m.store, key, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var updated model.MosqueConfig
	if err := ctx.ShouldBindJSON(&updated); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	// The simulation override is controlled through its own endpoints.
	updated.Simulation = current.Simulation
	model.Normalize(&updated)
	if err := m.store.SaveMosqueConfig(key, &updated); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save mosque config"}
	}
	return &updated, nil
}

// DELETE /api/admin/mosques/:key
func (m *MosqueController) deleteMosque(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	if _, apiErr := requireOwner(m.store, key, user); apiErr != nil {
		return nil, apiErr
	}
	if err := m.store.DeleteMosque(key); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete mosque"}
	}
	return gin.H{"deleted": key}, nil
}

// PUT /api/admin/mosques/:key/wabot
func (m *MosqueController) updateWabot(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	cfg, apiErr := requireOwner(m.store, key, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var settings model.WabotSettings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	cfg.Wabot = settings
	model.Normalize(cfg)
	if err := m.store.SaveMosqueConfig(key, cfg); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save wabot settings"}
	}
	return cfg.Wabot, nil
}

// POST /api/admin/mosques/:key/wabot/test
// sends a one-off message outside the dedup path so operators can verify
// their gateway settings.
func (m *MosqueController) testSend(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	cfg, apiErr := requireOwner(m.store, ctx.Param("key"), user)
	if apiErr != nil {
		return nil, apiErr
	}
	if !cfg.Wabot.Enabled {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "wabot is disabled for this mosque"}
	}

	var req packets.TestSendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	sendCtx, cancel := context.WithTimeout(ctx.Request.Context(), 15*time.Second)
	defer cancel()
	if err := m.sender.SendText(sendCtx, cfg.Wabot, req.Message); err != nil {
		log.Error().Err(err).Str("mosque", cfg.Key).Msg("wabot test send failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "test send failed: " + err.Error()}
	}
	return gin.H{"sent": true}, nil
}
