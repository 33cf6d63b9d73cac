package database

import (
	"fmt"
	"log"
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/env"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

func SetupDatabase() {
	var err error
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC search_path=cinema",
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_NAME", ""),
		env.GetEnv("DB_PORT", "5432"),
	)

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.New(postgres.Config{
			DSN: dsn,
		}), &gorm.Config{})
		if err == nil {
			DB.AutoMigrate(
				&models.MediaAsset{},
				&models.Content{},
				&models.Genre{},
				&models.ContentGenre{},
				&models.Season{},
				&models.Episode{},
				&models.User{},
				&models.SubscriptionPlan{},
				&models.UserSubscription{},
				&models.Purchase{},
				&models.Payment{},
				&models.ContentReview{},
				&models.Favorite{},
				&models.WatchlistEntry{},
				&models.WatchProgress{},
				&models.Employee{},
				&models.Role{},
				&models.EmployeeRole{},
			)

			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			log.Printf("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

// GetDB returns the shared GORM handle.
func GetDB() *gorm.DB {
	return DB
}
