package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wrongjunior/radiator/internal/configsync"
	"github.com/wrongjunior/radiator/internal/layout"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/service"
)

// Edit загружает конфигурацию с бэкенда, применяет правки в сессии
// редактирования и отправляет результат.
func Edit(ctx context.Context, opts Options, ops []layout.Op, logger *slog.Logger) error {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(nil)
	}
	cfgClient := configsync.NewClient(opts.BaseURL, configsync.NewHTTPClient(opts.RequestTimeout), logger)
	cfg, err := cfgClient.Load(ctx)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	dashboard := service.NewDashboard(cfgClient, logger, opts.Metrics)
	dashboard.LoadConfiguration(cfg)

	session := dashboard.Edit()
	for i, op := range ops {
		if err := session.Dispatch(op); err != nil {
			session.Cancel()
			return fmt.Errorf("edit %d (%T): %w", i, op, err)
		}
	}
	if err := session.Submit(ctx); err != nil {
		session.Cancel()
		return err
	}
	logger.Info("Configuration updated", "edits", len(ops))
	return nil
}
