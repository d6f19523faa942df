// Package app собирает клиентскую сессию радиатора: доску, канал событий,
// ротацию страниц и синхронизацию конфигурации.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/run"
	"github.com/wrongjunior/radiator/internal/carousel"
	"github.com/wrongjunior/radiator/internal/configsync"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/schedule"
	"github.com/wrongjunior/radiator/internal/service"
	"github.com/wrongjunior/radiator/internal/transport/client"
)

// Options содержит параметры клиентской сессии.
type Options struct {
	BaseURL  string
	EventURL string

	RotationInterval time.Duration
	ProbeInterval    time.Duration
	RequestTimeout   time.Duration
	// ReportInterval задаёт период записи сводки в лог; 0 выключает сводку.
	ReportInterval time.Duration

	Scheduler schedule.Scheduler
	Metrics   *metrics.Metrics
}

// Session представляет одно поколение клиентского состояния. После восстановления
// бэкенда сессия выбрасывается целиком и создаётся новая.
type Session struct {
	ID        string
	Dashboard *service.Dashboard
	Sync      *configsync.Client
	Transport *client.ClientTransport
	Rotator   *carousel.Rotator

	reportInterval time.Duration
	scheduler      schedule.Scheduler
	logger         *slog.Logger
}

// NewSession создаёт сессию с новым идентификатором.
func NewSession(opts Options, logger *slog.Logger) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Ticker{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(nil)
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	httpClient := configsync.NewHTTPClient(opts.RequestTimeout)
	cfgClient := configsync.NewClient(opts.BaseURL, httpClient, logger)
	dashboard := service.NewDashboard(cfgClient, logger, opts.Metrics)
	transport := client.NewClientTransport(opts.EventURL, dashboard, client.NewHTTPProber(opts.BaseURL, httpClient), client.Options{
		ProbeInterval: opts.ProbeInterval,
		Scheduler:     opts.Scheduler,
		Metrics:       opts.Metrics,
		OnReload: func() {
			logger.Info("Backend is back, session will be rebuilt")
		},
	}, logger)

	return &Session{
		ID:             id,
		Dashboard:      dashboard,
		Sync:           cfgClient,
		Transport:      transport,
		Rotator:        carousel.NewRotator(dashboard, opts.Scheduler, opts.RotationInterval, logger),
		reportInterval: opts.ReportInterval,
		scheduler:      opts.Scheduler,
		logger:         logger,
	}
}

// Run загружает конфигурацию и работает до отмены контекста или до
// восстановления бэкенда (client.ErrReload).
func (s *Session) Run(ctx context.Context) error {
	cfg, err := s.Sync.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load configuration", "error", err)
	} else {
		s.Dashboard.LoadConfiguration(cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	g.Add(func() error {
		return s.Transport.Listen(ctx)
	}, func(error) {
		cancel()
	})
	g.Add(func() error {
		s.Rotator.Start()
		defer s.Rotator.Stop()
		<-ctx.Done()
		return ctx.Err()
	}, func(error) {
		cancel()
	})
	if s.reportInterval > 0 {
		g.Add(func() error {
			task := s.scheduler.Every(s.reportInterval, s.Report)
			defer task.Stop()
			<-ctx.Done()
			return ctx.Err()
		}, func(error) {
			cancel()
		})
	}
	return g.Run()
}

// Report пишет в лог текущую страницу и активные уведомления.
func (s *Session) Report() {
	state := s.Dashboard.State()
	s.logger.Info("Radiator state",
		"page", state.CurrentPage,
		"pages", len(state.Configuration.Pages),
		"events", state.Events.Len(),
		"disconnected", state.IsDisconnected,
		"editing", state.IsEditing)
	now := time.Now()
	for n := range s.Dashboard.Notifications() {
		s.logger.Info("Notification", "placed", n.Placed, "summary", service.Summarize(n.Event, now))
	}
}

// Run запускает сессии одну за другой: после client.ErrReload состояние
// пересоздаётся с нуля. Возвращает ошибку последней сессии.
func Run(ctx context.Context, opts Options, logger *slog.Logger) error {
	for {
		session := NewSession(opts, logger)
		logger.Info("Session started", "session", session.ID, "events", opts.EventURL)
		err := session.Run(ctx)
		if !errors.Is(err, client.ErrReload) {
			return err
		}
		logger.Info("Reloading session", "session", session.ID)
	}
}
