package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/wrongjunior/radiator/internal/app"
	"github.com/wrongjunior/radiator/internal/config"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/transport/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		dev        bool
		report     time.Duration
	)
	root := &cobra.Command{
		Use:          "radiator",
		Short:        "Headless radiator dashboard client",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return runClient(cmd.Context(), cfg, dev, report)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (.json, .yaml)")
	root.Flags().BoolVar(&dev, "dev", false, "Connect to the development event channel")
	root.Flags().DurationVar(&report, "report", time.Minute, "Interval between state reports in the log (0 disables)")
	root.AddCommand(newEditCmd(&configPath))
	return root
}

func sessionOptions(cfg *config.Config) app.Options {
	return app.Options{
		BaseURL:          cfg.BaseURL,
		RotationInterval: cfg.RotationInterval.Std(),
		ProbeInterval:    cfg.ProbeInterval.Std(),
		RequestTimeout:   cfg.RequestTimeout.Std(),
	}
}

func runClient(ctx context.Context, cfg *config.Config, dev bool, report time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := config.NewLogger(cfg.LogLevel)

	eventURL, err := client.EventURL(cfg.BaseURL, dev, cfg.DevEventURL)
	if err != nil {
		logger.Error("Invalid backend address", "error", err)
		return err
	}

	reg := prometheus.NewRegistry()
	opts := sessionOptions(cfg)
	opts.EventURL = eventURL
	opts.ReportInterval = report
	opts.Metrics = metrics.New(reg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		g      run.Group
		runErr error
		srvErr error
	)
	g.Add(func() error {
		runErr = app.Run(ctx, opts, logger)
		return runErr
	}, func(error) {
		cancel()
	})
	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Handler(reg)}
		g.Add(func() error {
			logger.Info("Metrics server started", "addr", cfg.MetricsAddr)
			srvErr = srv.ListenAndServe()
			return srvErr
		}, func(error) {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			srv.Shutdown(shutdownCtx)
		})
	}
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	logger.Info("Client stopped", "reason", g.Run())
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
		return srvErr
	}
	return nil
}
