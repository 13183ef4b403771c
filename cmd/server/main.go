package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"notes-app/internal/config"
	"notes-app/internal/logger"
	"notes-app/internal/server"
)

const defaultConfigFile = "config.yml"

func main() {
	configFile := flag.String("config", defaultConfigFile, "path to the config file")
	flag.Parse()

	// Переменные из .env не перезаписывают уже заданные в окружении
	dotEnvErr := config.LoadDotEnv()

	// Загружаем конфигурацию из файла
	appConfig, err := config.InitConfig[config.Config](*configFile)
	if err != nil {
		bootstrap := logger.New(nil)
		bootstrap.Fatal().Err(err).Msg("error initializing config")
	}
	appConfig.ApplyDefaults()

	log := logger.New(appConfig.Logger)
	if dotEnvErr != nil {
		log.Warn().Err(dotEnvErr).Msg("failed to load .env file")
	}

	log.Info().
		Int("port", appConfig.Server.PortHTTP).
		Bool("mock", appConfig.Mock.Enabled).
		Str("storage", appConfig.Mock.Storage).
		Str("api", appConfig.API.BaseURL).
		Msg("config loaded")

	srv, err := server.NewServer(appConfig, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	if err := srv.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := srv.Start()

	// Ожидание сигнала или ошибки
	select {
	case err := <-errChan:
		log.Error().Err(err).Msg("server error")
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received signal")
	}

	if err := srv.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown finished with errors")
		os.Exit(1)
	}

	log.Info().Msg("Notes App stopped")
}
