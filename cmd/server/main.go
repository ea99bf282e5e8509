package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/crypto"
	"github.com/MKhiriev/go-disk-next/internal/handler"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/server"
	"github.com/MKhiriev/go-disk-next/internal/service"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/internal/workers"
	"github.com/MKhiriev/go-disk-next/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("go-disk-server", false).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("go-disk-server", cfg.App.Debug)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	storages := store.NewStorages(db, log.Component("store"))
	settings := service.NewSettingService(storages, cfg.Cache, log.Component("settings"))
	codec := crypto.NewPasswordCodec()

	if err = service.NewBootstrapper(storages, codec, cfg.App, log.Component("bootstrap")).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("error bootstrapping database")
	}

	signingKey, err := service.LoadSigningKey(ctx, settings)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading signing key")
	}

	services, err := service.NewServices(storages, settings, codec, signingKey, cfg, log.Component("service"))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	groupExpiry, err := workers.NewGroupExpiryWorker(cfg.Workers.GroupExpirySchedule, services.UserService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating group expiry worker")
	}
	background := workers.NewWorkers(groupExpiry)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background.Run()

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err = background.Stop(stopCtx); err != nil {
		log.Err(err).Msg("error stopping workers")
	}

	log.Info().Msg("bye")
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
