package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menara-digital/menara/internal/http/middleware"
	"github.com/menara-digital/menara/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(successStatus(ctx), result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(successStatus(ctx), result)
	}
}

// successStatus honors a status the handler set (e.g. 201 on creation)
// instead of flattening every success to 200.
func successStatus(ctx *gin.Context) int {
	if status := ctx.Writer.Status(); status != 0 && status != http.StatusOK {
		return status
	}
	return http.StatusOK
}
