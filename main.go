package main

import (
	"log"
	"os"

	"savoryflavors-backend/db"
	_ "savoryflavors-backend/docs"
	"savoryflavors-backend/handlers/payments"
	"savoryflavors-backend/handlers/ping"
	"savoryflavors-backend/handlers/plans"
	"savoryflavors-backend/handlers/subscriptions"
	"savoryflavors-backend/payment"
	"savoryflavors-backend/payment/paymongo"
	"savoryflavors-backend/routes"
	"savoryflavors-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title SavoryFlavors API
// @version 1.0
// @description Subscription payment backend for the SavoryFlavors recipe platform
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {
	gin.SetMode(gin.ReleaseMode)

	database, err := db.Connect()
	if err != nil {
		utils.LogError(err, "Could not initialize the database")
		log.Fatal("Database initialization failed:", err)
	}

	gateway := paymongo.NewClient(
		os.Getenv("PAYMONGO_API_BASE"),
		os.Getenv("PAYMONGO_SECRET_KEY"),
	)
	resolver := payment.NewPlanResolver(database)
	orchestrator := payment.NewOrchestrator(gateway, resolver, os.Getenv("PAYMENT_RETURN_URL"))
	activator := payment.NewActivator(database)

	r := routes.SetupRouter(routes.Handlers{
		Ping:          ping.New(),
		Payments:      payments.NewHandler(orchestrator, activator),
		Plans:         plans.NewHandler(database),
		Subscriptions: subscriptions.NewHandler(database),
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
