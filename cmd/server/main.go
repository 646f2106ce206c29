package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"booking-service/internal/app"
	"booking-service/internal/config"
	"booking-service/internal/server"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	a := &app.App{Store: app.NewPgStore(pool)}

	router := gin.Default()

	// OAuth2 callback (must be before auth middleware)
	router.GET("/oauth2callback", a.GoogleOAuth2CallbackHandler)

	api := router.Group("/api")

	// Guest-facing routes: booking page data, slot resolution, booking
	// submission and the confirmation lookup.
	api.GET("/hosts/:id/meeting-types/:type_id", a.GetMeetingTypeHandler)
	api.GET("/hosts/:id/slots", a.GetSlotsHandler)
	api.POST("/hosts/:id/bookings", a.CreateBookingHandler)
	api.GET("/bookings/:id", a.GetBookingHandler)

	// Host-facing routes.
	hosts := api.Group("/hosts", app.AuthMiddleware(cfg.StaticTokens, cfg.JWTSecret))
	{
		hosts.POST("/:id/availability", a.SetAvailabilityHandler)
		hosts.GET("/:id/availability", a.ListAvailabilityHandler)
		hosts.DELETE("/:id/availability/:window_id", a.DeleteAvailabilityHandler)

		hosts.POST("/:id/meeting-types", a.CreateMeetingTypeHandler)
		hosts.GET("/:id/meeting-types", a.ListMeetingTypesHandler)
		hosts.PATCH("/:id/meeting-types/:type_id", a.UpdateMeetingTypeHandler)
		hosts.DELETE("/:id/meeting-types/:type_id", a.DeleteMeetingTypeHandler)

		hosts.GET("/:id/bookings", a.ListBookingsHandler)
		hosts.DELETE("/:id/bookings/:booking_id", a.CancelBookingHandler)

		hosts.GET("/:id/stats", a.StatsHandler)
		hosts.GET("/:id/profile", a.GetProfileHandler)
		hosts.PUT("/:id/profile", a.UpdateProfileHandler)
	}

	calendarGroup := api.Group("/calendar", app.AuthMiddleware(cfg.StaticTokens, cfg.JWTSecret))
	{
		calendarGroup.GET("/auth", a.GoogleAuthHandler)
	}

	server.Run(router, cfg.Port)
}
