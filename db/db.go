package db

import (
	"fmt"
	"os"

	"savoryflavors-backend/models"
	"savoryflavors-backend/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and migrates the payment-core tables. The
// handle is passed down explicitly, there is no package-level pool.
func Connect() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file found, relying on system environment")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         utils.GetGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	err = database.AutoMigrate(
		&models.Plan{},
		&models.Subscription{},
		&models.Payment{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	utils.LogSuccess("Database connection established")
	return database, nil
}
