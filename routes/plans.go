package routes

import (
	"savoryflavors-backend/handlers/plans"

	"github.com/gin-gonic/gin"
)

func PlansRoutes(r *gin.Engine, h *plans.Handler) {
	r.GET("/plans", h.ListPlans)
}
