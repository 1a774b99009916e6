package routes

import (
	"savoryflavors-backend/handlers/ping"

	"github.com/gin-gonic/gin"
)

func PingRoutes(r *gin.Engine, h *ping.Handler) {
	r.GET("/ping", h.HandlePing)
}
