package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/http/api"
	"github.com/menara-digital/menara/internal/http/api/display/packets"
	"github.com/menara-digital/menara/internal/model"
	"github.com/menara-digital/menara/internal/prayer"
)

type StateController struct {
	store    db.Store
	schedule *prayer.Schedule
}

// StateModule mounts the device-facing read surface: the mosque config a
// paired kiosk renders from, and a server-side evaluated state snapshot
// for thin clients that cannot run the local loop.
func StateModule(store db.Store, schedule *prayer.Schedule) api.Module {
	ctl := &StateController{store: store, schedule: schedule}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/config", ctl.getConfig)
		c.PUBLIC_GET("/state", ctl.getState)
	})
}

// resolveDevice maps a device_id query param to its mosque config.
// Unknown or unpaired devices get 401 so the device loop can drop its
// cached snapshot and fall back to pairing mode.
func (s *StateController) resolveDevice(ctx *gin.Context) (*model.MosqueConfig, *api.APIError) {
	deviceID := ctx.Query("device_id")
	if deviceID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "device_id is required"}
	}

	display, err := s.store.GetDisplayByDeviceID(&deviceID)
	if err != nil || !display.Paired {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "device is not paired"}
	}

	cfg, err := s.store.GetMosqueConfig(display.MosqueKey)
	if errors.Is(err, db.ErrMosqueNotFound) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "device is not paired"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load mosque config"}
	}
	return model.Normalize(cfg), nil
}

// GET /api/display/config?device_id=...
func (s *StateController) getConfig(ctx *gin.Context) (any, *api.APIError) {
	cfg, apiErr := s.resolveDevice(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return cfg, nil
}

// GET /api/display/state?device_id=...
func (s *StateController) getState(ctx *gin.Context) (any, *api.APIError) {
	cfg, apiErr := s.resolveDevice(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().In(cfg.Location())

	times, err := s.schedule.For(ctx.Request.Context(), cfg, now)
	if err != nil && !errors.Is(err, prayer.ErrNoSchedule) {
		log.Error().Err(err).Str("mosque", cfg.Key).Msg("prayer schedule unavailable")
	}

	state := engine.Evaluate(cfg, times, now)
	audio := engine.ResolveAudio(cfg, times, now, state)

	resp := gin.H{
		"mosque_key": cfg.Key,
		"now":        now.Format(time.RFC3339),
		"state":      state,
		"audio":      audio,
	}
	if times != nil {
		resp["times"] = timesResponse(times, cfg, now)
	}
	return resp, nil
}

func timesResponse(t *prayer.Times, cfg *model.MosqueConfig, now time.Time) packets.PrayerTimesResponse {
	loc := cfg.Location()
	clock := func(at time.Time) string { return at.In(loc).Format("15:04") }
	return packets.PrayerTimesResponse{
		Day:     now.In(loc).Format("2006-01-02"),
		Imsak:   clock(t.Imsak),
		Subuh:   clock(t.Subuh),
		Syuruq:  clock(t.Syuruq),
		Dzuhur:  clock(t.Dzuhur),
		Ashar:   clock(t.Ashar),
		Maghrib: clock(t.Maghrib),
		Isya:    clock(t.Isya),
	}
}
