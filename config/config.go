package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName   string `json:"appname"`
	AppEnv    string `json:"appenv"`
	AppPort   uint16 `json:"appport"`
	GinMode   string `json:"ginmode"`
	DBPath    string `json:"dbpath"`
	UploadDir string `json:"uploaddir"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// The .env file is optional; without it the process environment is used as-is.
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file found, using process environment")
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		if appPort == 0 {
			appPort = 3000
		}

		// Initialize the Config struct with values from environment variables.
		config = &Config{
			AppName:   os.Getenv("APPNAME"),
			AppEnv:    os.Getenv("APPENV"),
			AppPort:   uint16(appPort),
			GinMode:   os.Getenv("GINMODE"),
			DBPath:    os.Getenv("DBPATH"),
			UploadDir: os.Getenv("UPLOADDIR"),
		}
		if config.AppName == "" {
			config.AppName = "clinic-booking"
		}
		if config.DBPath == "" {
			config.DBPath = "appointments.db"
		}
		if config.UploadDir == "" {
			config.UploadDir = "uploads"
		}
	})
	return config
}

// ConnectSQLite opens the single-file SQLite database named by the configuration.
// In the test environment an in-memory database is used instead so tests never
// touch the working directory.
func ConnectSQLite() (*gorm.DB, error) {
	cfg := LoadConfig()

	dsn := cfg.DBPath
	if cfg.AppEnv == "test" {
		dsn = fmt.Sprintf("file:clinic_test_%d?mode=memory&cache=shared", os.Getpid())
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
