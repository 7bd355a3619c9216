// main.go
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/medibook/clinic-booking/config"
	"github.com/medibook/clinic-booking/endpoint"
	"github.com/medibook/clinic-booking/middleware"
	"github.com/medibook/clinic-booking/store"
	"github.com/medibook/clinic-booking/upload"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectSQLite()
	if err != nil {
		log.Fatalf("Error connecting to SQLite: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}

	sink := upload.NewSink(cfg.UploadDir)
	if err := sink.EnsureDir(); err != nil {
		log.Fatalf("Error preparing upload directory: %v", err)
	}

	// Redis only backs the booking rate limiter; run without it if absent.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	router.LoadHTMLGlob("templates/*")
	router.StaticFile("/", "./static/index.html")
	router.Static("/static", "./static")

	router.POST("/appointment", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.CreateAppointment(sink))
	router.GET("/appointments", endpoint.ListAppointmentsPage)
	router.PUT("/appointments/:id", endpoint.UpdateAppointmentField)
	router.DELETE("/appointments/:id", endpoint.DeleteAppointment)
	router.GET("/api/appointments", endpoint.ListAppointments)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	log.Printf("%s listening at http://localhost%s", cfg.AppName, address)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
