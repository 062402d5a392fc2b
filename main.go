package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dressrental/app"
	"dressrental/config"
	"dressrental/routes"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	// Background sweep keeping item status in line with live orders.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rc := &app.Reconciler{DB: application.DB, Interval: application.Config.SweepInterval}
	go rc.Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Info().Str("port", port).Msg("listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
