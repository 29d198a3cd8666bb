package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/http/api"
	"github.com/menara-digital/menara/internal/http/api/display/packets"
	redisclient "github.com/menara-digital/menara/internal/redis"
)

// pairing codes shown on an unclaimed kiosk expire if no admin claims
// them in time.
const pairingCodeTTL = 10 * time.Minute

type PairController struct {
	store db.Store
}

// PairModule mounts the unauthenticated device pairing surface. A fresh
// kiosk generates a short code, registers it here, and shows it on
// screen until an admin claims it.
func PairModule(store db.Store) api.Module {
	ctl := &PairController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/register", ctl.registerPairingCode)
	})
}

// POST /api/display/register
func (p *PairController) registerPairingCode(ctx *gin.Context) (any, *api.APIError) {
	var req packets.RegisterPairingCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	paired, err := p.store.IsDisplayPairedByDeviceID(&req.DeviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if paired {
		log.Warn().Str("device", req.DeviceID).Msg("device is already paired")
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "device is already paired"}
	}

	redisclient.Set(ctx, "pairing:"+req.PairingCode, req.DeviceID, pairingCodeTTL)

	return packets.RegisterPairingCodeResponse{DeviceID: req.DeviceID}, nil
}
