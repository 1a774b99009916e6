package routes

import (
	"savoryflavors-backend/handlers/payments"
	"savoryflavors-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine, h *payments.Handler) {
	paymentRoutes := r.Group("/payments")
	paymentRoutes.Use(middleware.JWTAuth())
	{
		paymentRoutes.POST("", h.CreatePayment)
	}
}
