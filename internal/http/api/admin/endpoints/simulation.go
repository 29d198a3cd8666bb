package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/http/api"
	"github.com/menara-digital/menara/internal/http/api/admin/packets"
	"github.com/menara-digital/menara/internal/model"
)

type SimulationController struct {
	store db.Store
}

// SimulationModule mounts the operator test-mode endpoints. Starting and
// stopping a simulation are plain config writes; displays pick the
// override up on their next evaluation tick.
func SimulationModule(store db.Store) api.Module {
	ctl := &SimulationController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/mosques/:key/simulation", ctl.startSimulation)
		c.DELETE("/mosques/:key/simulation", ctl.stopSimulation)
	})
}

var validSimulationStates = map[string]bool{
	model.SimulationNormal:   true,
	model.SimulationImsak:    true,
	model.SimulationAdzan:    true,
	model.SimulationIqamah:   true,
	model.SimulationSholat:   true,
	model.SimulationPlaylist: true,
}

// POST /api/admin/mosques/:key/simulation
func (s *SimulationController) startSimulation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	cfg, apiErr := requireOwner(s.store, key, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var req packets.StartSimulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !validSimulationStates[req.State] {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown simulation state"}
	}
	if req.State == model.SimulationPlaylist && req.PlaylistID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "playlist_id is required for PLAYLIST simulation"}
	}

	cfg.Simulation = &model.SimulationOverride{
		IsSimulating: true,
		Prayer:       req.Prayer,
		State:        req.State,
		PlaylistID:   req.PlaylistID,
		StartedAt:    time.Now(),
	}
	if err := s.store.SaveMosqueConfig(key, cfg); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not start simulation"}
	}

	log.Info().Str("mosque", key).Str("state", req.State).Msg("simulation started")
	return cfg.Simulation, nil
}

// DELETE /api/admin/mosques/:key/simulation
func (s *SimulationController) stopSimulation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	cfg, apiErr := requireOwner(s.store, key, user)
	if apiErr != nil {
		return nil, apiErr
	}

	cfg.Simulation = nil
	if err := s.store.SaveMosqueConfig(key, cfg); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not stop simulation"}
	}

	log.Info().Str("mosque", key).Msg("simulation stopped")
	return gin.H{"simulating": false}, nil
}
