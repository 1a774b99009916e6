package routes

import (
	"savoryflavors-backend/handlers/subscriptions"
	"savoryflavors-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine, h *subscriptions.Handler) {
	subscriptionRoutes := r.Group("/subscriptions")
	subscriptionRoutes.Use(middleware.JWTAuth())
	{
		subscriptionRoutes.GET("/me", h.GetMySubscription)
	}
}
