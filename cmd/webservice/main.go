package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/admin-console/config"
	"github.com/alimikegami/point-of-sales/admin-console/internal/app"
)

func main() {
	config := config.CreateNewConfig()

	server := app.App{
		Config: config,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		if err := server.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start admin console")
	}
}
