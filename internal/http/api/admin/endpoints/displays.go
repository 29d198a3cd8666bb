package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/http/api"
	"github.com/menara-digital/menara/internal/http/api/admin/packets"
	"github.com/menara-digital/menara/internal/model"
	redisclient "github.com/menara-digital/menara/internal/redis"
)

type DisplayController struct {
	store db.Store
}

// DisplayAdminModule mounts the display registry: listing, creation, and
// claiming a pairing code shown on a kiosk.
func DisplayAdminModule(store db.Store) api.Module {
	ctl := &DisplayController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/mosques/:key/displays", ctl.listDisplays)
		c.POST("/mosques/:key/displays", ctl.createDisplay)
		c.POST("/displays/claim", ctl.claimDisplay)
		c.DELETE("/displays/:id", ctl.deleteDisplay)
	})
}

func displayResponse(d model.Display) packets.DisplayResponse {
	return packets.DisplayResponse{
		ID:        d.ID,
		DeviceID:  d.DeviceID,
		MosqueKey: d.MosqueKey,
		Name:      d.Name,
		Location:  d.Location,
		Paired:    d.Paired,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/admin/mosques/:key/displays
func (d *DisplayController) listDisplays(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	if _, apiErr := requireOwner(d.store, key, user); apiErr != nil {
		return nil, apiErr
	}

	all, err := d.store.ListDisplays(key)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list displays"}
	}

	out := make([]packets.DisplayResponse, 0, len(all))
	for _, display := range all {
		out = append(out, displayResponse(display))
	}
	return out, nil
}

// POST /api/admin/mosques/:key/displays
func (d *DisplayController) createDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	if _, apiErr := requireOwner(d.store, key, user); apiErr != nil {
		return nil, apiErr
	}

	var req packets.CreateDisplayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	display, err := d.store.CreateDisplay(key, req.Name, req.Location)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create display"}
	}
	ctx.Status(http.StatusCreated)
	return displayResponse(display), nil
}

// POST /api/admin/displays/claim
// resolves a pairing code (written to Redis by the device) to its device
// ID and binds it to a registered display.
func (d *DisplayController) claimDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var req packets.ClaimDisplayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	display, err := d.store.GetDisplayByID(req.DisplayID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
	}
	if _, apiErr := requireOwner(d.store, display.MosqueKey, user); apiErr != nil {
		return nil, apiErr
	}

	deviceID, err := redisclient.Get(ctx, "pairing:"+req.PairingCode)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown or expired pairing code"}
	}

	if err := d.store.AssignDeviceIDToDisplay(display.ID, &deviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not assign device"}
	}
	if err := d.store.PairDisplay(display.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not pair display"}
	}
	redisclient.Delete(ctx, "pairing:"+req.PairingCode)

	log.Info().Str("device", deviceID).Int("display", display.ID).Msg("display paired")

	paired, err := d.store.GetDisplayByID(display.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch paired display"}
	}
	return displayResponse(paired), nil
}

// DELETE /api/admin/displays/:id
func (d *DisplayController) deleteDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	display, err := d.store.GetDisplayByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
	}
	if _, apiErr := requireOwner(d.store, display.MosqueKey, user); apiErr != nil {
		return nil, apiErr
	}

	if err := d.store.DeleteDisplay(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete display"}
	}
	return gin.H{"deleted": id}, nil
}
