// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bazaarline/storefront-backend/internal/config"
	"github.com/bazaarline/storefront-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Popup{},
		&models.Order{},
		&models.ChatMessage{},
		&models.ShopSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Chat indexes
		"CREATE INDEX IF NOT EXISTS idx_chats_user_created ON chat_messages(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_chats_unread ON chat_messages(user_id, read)",

		// Full-text search indexes
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', name || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData creates the out-of-band admin account (role is never
// settable through the API) and the singleton settings row.
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding initial data...")

	if cfg.Shop.SeedAdmin {
		var adminCount int64
		db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

		if adminCount == 0 {
			admin := &models.User{
				Email: cfg.Shop.AdminEmail,
				Name:  "Shop Admin",
				Role:  models.UserRoleAdmin,
			}

			password := cfg.Shop.AdminPassword
			if password == "" {
				password = "admin123!@#"
			}
			if err := admin.SetPassword(password); err != nil {
				return fmt.Errorf("failed to set admin password: %w", err)
			}

			if err := db.Create(admin).Error; err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}

			log.Println("Default admin user created successfully")
		}
	}

	// The settings row is also created lazily on first read; seeding it here
	// just makes a fresh install look complete.
	var settingsCount int64
	db.Model(&models.ShopSettings{}).Where("id = ?", models.SettingsID).Count(&settingsCount)
	if settingsCount == 0 {
		defaults := models.DefaultShopSettings()
		if err := db.Create(&defaults).Error; err != nil {
			return fmt.Errorf("failed to create shop settings: %w", err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
