package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/http/api"
	adminapi "github.com/menara-digital/menara/internal/http/api/admin/endpoints"
	authapi "github.com/menara-digital/menara/internal/http/api/admin/auth/endpoints"
	displayapi "github.com/menara-digital/menara/internal/http/api/display/endpoints"
	"github.com/menara-digital/menara/internal/prayer"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, schedule *prayer.Schedule, sender engine.Sender) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.MosqueModule(store, sender),
		adminapi.SimulationModule(store),
		adminapi.DisplayAdminModule(store),
		adminapi.NotificationModule(store),
		// session endpoints that require auth
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/display",
	},
		displayapi.PairModule(store),
		displayapi.StateModule(store, schedule),
	)
}
