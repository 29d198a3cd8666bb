package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/http/api"
	"github.com/menara-digital/menara/internal/model"
)

type NotificationController struct {
	store db.Store
}

// NotificationModule exposes the per-mosque notification audit trail.
func NotificationModule(store db.Store) api.Module {
	ctl := &NotificationController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/mosques/:key/notifications", ctl.listNotifications)
	})
}

// GET /api/admin/mosques/:key/notifications?limit=N
func (n *NotificationController) listNotifications(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	key := ctx.Param("key")
	if _, apiErr := requireOwner(n.store, key, user); apiErr != nil {
		return nil, apiErr
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid limit"}
		}
		limit = parsed
	}

	entries, err := n.store.ListNotificationLog(key, limit)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list notifications"}
	}
	return entries, nil
}
