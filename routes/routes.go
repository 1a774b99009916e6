package routes

import (
	"time"

	"savoryflavors-backend/handlers/payments"
	"savoryflavors-backend/handlers/ping"
	"savoryflavors-backend/handlers/plans"
	"savoryflavors-backend/handlers/subscriptions"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the wired handler instances the router mounts.
type Handlers struct {
	Ping          *ping.Handler
	Payments      *payments.Handler
	Plans         *plans.Handler
	Subscriptions *subscriptions.Handler
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	PingRoutes(r, h.Ping)
	PlansRoutes(r, h.Plans)
	PaymentsRoutes(r, h.Payments)
	SubscriptionsRoutes(r, h.Subscriptions)

	return r
}
