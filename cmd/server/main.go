package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/wrongjunior/radiator/internal/config"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/repository"
	"github.com/wrongjunior/radiator/internal/service"
	transportServer "github.com/wrongjunior/radiator/internal/transport/server"
)

func main() {
	var configPath string
	root := &cobra.Command{
		Use:          "radiator-server",
		Short:        "Development backend for the radiator dashboard",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "Path to configuration file (.json, .yaml)")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	logger := config.NewLogger(cfg.LogLevel)

	// Открытие подключения к БД для репозиториев бэкенда.
	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		return err
	}
	defer db.Close()

	events := repository.NewSQLiteRepository(db)
	configurations := repository.NewConfigurationStore(db)
	for _, repo := range []interface{ Init() error }{events, configurations} {
		if err := repo.Init(); err != nil {
			logger.Error("Failed to initialize repository", "error", err)
			return err
		}
	}

	seed, err := cfg.LoadSeed()
	if err != nil {
		logger.Error("Failed to load seed configuration", "error", err)
		return err
	}
	seeded, err := repository.SeedIfMissing(configurations, seed)
	if err != nil {
		logger.Error("Failed to seed configuration", "error", err)
		return err
	}
	if seeded {
		logger.Info("Seed configuration stored", "name", seed.Name, "pages", len(seed.Pages))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	eventService := service.NewEventService(events, logger, m)
	handler := transportServer.NewHandler(eventService, configurations, seed, logger)
	httpServer := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: transportServer.SetupRouter(handler, cfg.WSPath, reg),
	}

	var (
		g      run.Group
		srvErr error
	)
	g.Add(func() error {
		logger.Info("Starting HTTP server", "addr", cfg.ServerAddr)
		srvErr = httpServer.ListenAndServe()
		return srvErr
	}, func(error) {
		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
	})
	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	logger.Info("Server stopped", "reason", g.Run())
	if srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
		return srvErr
	}
	return nil
}
