package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"desa-portal-api/models"
)

var DB *gorm.DB

// InitDB connects to the configured database and migrates the schema.
// DB_DRIVER selects the backend: "sqlite" (default, single-file store) or
// "mysql".
func InitDB() {
	var (
		dialector gorm.Dialector
		err       error
	)

	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	switch driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USERNAME"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_DATABASE"),
		)
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "portal.db"
		}
		dialector = sqlite.Open(path)
	default:
		log.Fatalf("Unsupported DB_DRIVER %q (use sqlite or mysql)", driver)
	}

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	debugSQL := strings.ToLower(os.Getenv("DEBUG_SQL"))

	// In production, suppress SQL logs unless explicitly re-enabled via
	// DEBUG_SQL=true.
	logLevel := logger.Info
	if environment == "production" && debugSQL != "true" {
		logLevel = logger.Warn
	}

	config := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	DB, err = gorm.Open(dialector, config)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if driver == "sqlite" || driver == "" {
		DB.Exec("PRAGMA journal_mode=WAL;")
		DB.Exec("PRAGMA foreign_keys=ON;")
		DB.Exec("PRAGMA busy_timeout=5000;")
	}

	if err := MigrateDB(DB); err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}

	log.Println("Database connected successfully")
}

// MigrateDB creates or updates the portal tables.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ServiceRequest{},
		&models.RequestStatusHistory{},
		&models.AdminUser{},
	)
}
