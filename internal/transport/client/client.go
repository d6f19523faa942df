package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/schedule"
)

// DefaultProbeInterval задаёт период проверки доступности бэкенда после разрыва.
const DefaultProbeInterval = 30 * time.Second

// ErrReload возвращается из Listen, когда бэкенд снова доступен: состояние
// сессии нужно выбросить и построить заново.
var ErrReload = errors.New("backend recovered, session reload required")

// State описывает состояние канала событий.
type State int

const (
	StateConnecting State = iota
	StateConnected
	StateDisconnected
	StateReloading
)

// String возвращает имя состояния для логов.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateReloading:
		return "reloading"
	default:
		return "invalid"
	}
}

// EventSink принимает события и сигналы соединения.
type EventSink interface {
	UpdateEvent(event domain.Event)
	EmitConnected()
	EmitDisconnected()
}

// Options содержит необязательные параметры транспорта.
type Options struct {
	ProbeInterval time.Duration
	Scheduler     schedule.Scheduler
	Dialer        *websocket.Dialer
	Metrics       *metrics.Metrics
	// OnReload вызывается ровно один раз, когда проверка доступности прошла успешно.
	OnReload func()
}

// ClientTransport реализует транспортный слой клиента: подключение к каналу
// событий, разбор сообщений, обнаружение разрыва и проверку доступности бэкенда.
type ClientTransport struct {
	ServerURL string
	Sink      EventSink
	Prober    Prober
	Logger    *slog.Logger

	probeInterval time.Duration
	scheduler     schedule.Scheduler
	dialer        *websocket.Dialer
	metrics       *metrics.Metrics
	onReload      func()

	mu         sync.Mutex
	state      State
	probe      schedule.Task
	reloadOnce sync.Once
	reloaded   chan struct{}
}

// NewClientTransport создаёт новый экземпляр транспорта клиента.
func NewClientTransport(serverURL string, sink EventSink, prober Prober, opts Options, logger *slog.Logger) *ClientTransport {
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = DefaultProbeInterval
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Ticker{}
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(nil)
	}
	return &ClientTransport{
		ServerURL:     serverURL,
		Sink:          sink,
		Prober:        prober,
		Logger:        logger,
		probeInterval: opts.ProbeInterval,
		scheduler:     opts.Scheduler,
		dialer:        opts.Dialer,
		metrics:       opts.Metrics,
		onReload:      opts.OnReload,
		reloaded:      make(chan struct{}),
	}
}

// State возвращает текущее состояние канала.
func (ct *ClientTransport) State() State {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.state
}

// Listen подключается к каналу и читает события до разрыва. После разрыва
// ждёт, пока проверка доступности не пройдёт (возвращает ErrReload), или
// отмены контекста. Транспорт одноразовый: новая сессия создаёт новый.
func (ct *ClientTransport) Listen(ctx context.Context) error {
	ct.mu.Lock()
	ct.state = StateConnecting
	ct.mu.Unlock()

	conn, _, err := ct.dialer.DialContext(ctx, ct.ServerURL, nil)
	if err != nil {
		ct.Logger.Warn("Initial connection failed", "url", ct.ServerURL, "error", err)
		ct.handleDown(ctx, err)
	} else {
		ct.handleOpen()
		ct.readLoop(ctx, conn)
	}

	select {
	case <-ctx.Done():
		ct.stopProbe()
		ct.Logger.Info("Client transport shutting down")
		return ctx.Err()
	case <-ct.reloaded:
		return ErrReload
	}
}

func (ct *ClientTransport) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			ct.Logger.Warn("Event channel closed", "error", err)
			ct.handleDown(ctx, err)
			return
		}
		ct.handleMessage(message)
	}
}

// handleMessage разбирает одно сообщение и передаёт событие доске.
// Неразбираемое сообщение логируется и отбрасывается, канал остаётся открытым.
func (ct *ClientTransport) handleMessage(message []byte) {
	var event domain.Event
	if err := json.Unmarshal(message, &event); err != nil {
		ct.metrics.MessagesDropped.Inc()
		ct.Logger.Error("JSON unmarshal error", "error", err)
		return
	}
	ct.Sink.UpdateEvent(event)
}

func (ct *ClientTransport) handleOpen() {
	ct.mu.Lock()
	ct.state = StateConnected
	ct.mu.Unlock()
	ct.Sink.EmitConnected()
	ct.Logger.Info("Connected to server", "url", ct.ServerURL)
}

// handleDown переводит канал в disconnected и запускает проверку доступности.
// Повторный разрыв, пока проверка уже идёт, второй проверки не создаёт.
func (ct *ClientTransport) handleDown(ctx context.Context, cause error) {
	ct.mu.Lock()
	if ct.state == StateDisconnected || ct.state == StateReloading {
		ct.mu.Unlock()
		return
	}
	ct.state = StateDisconnected
	ct.probe = ct.scheduler.Every(ct.probeInterval, func() { ct.checkHealth(ctx) })
	ct.mu.Unlock()

	ct.metrics.Disconnects.Inc()
	ct.Sink.EmitDisconnected()
	ct.Logger.Info("Polling backend availability", "interval", ct.probeInterval, "cause", cause)
}

// checkHealth выполняет одну проверку. После отмены проверки или начала
// перезагрузки ничего не делает.
func (ct *ClientTransport) checkHealth(ctx context.Context) {
	if ct.State() != StateDisconnected {
		return
	}
	if !ct.Prober.Healthy(ctx) {
		ct.metrics.HealthProbes.WithLabelValues("down").Inc()
		ct.Logger.Debug("Backend still unavailable")
		return
	}
	ct.metrics.HealthProbes.WithLabelValues("up").Inc()

	ct.mu.Lock()
	if ct.state != StateDisconnected {
		ct.mu.Unlock()
		return
	}
	ct.state = StateReloading
	ct.mu.Unlock()

	ct.stopProbe()
	ct.reloadOnce.Do(func() {
		ct.metrics.Reloads.Inc()
		ct.Logger.Info("Backend available again, reloading")
		if ct.onReload != nil {
			ct.onReload()
		}
		close(ct.reloaded)
	})
}

func (ct *ClientTransport) stopProbe() {
	ct.mu.Lock()
	task := ct.probe
	ct.mu.Unlock()
	if task != nil {
		task.Stop()
	}
}
