package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/repository"
	"github.com/wrongjunior/radiator/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// WebSocketNotifier оборачивает websocket-соединение для реализации интерфейса Notifier.
// Запись в соединение сериализуется: рассылка и ping идут из разных горутин.
type WebSocketNotifier struct {
	Conn   *websocket.Conn
	Logger *slog.Logger
	mu     sync.Mutex
}

// Notify отправляет событие через WebSocket.
func (w *WebSocketNotifier) Notify(event domain.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := w.Conn.WriteJSON(event); err != nil {
		w.Logger.Error("Error writing JSON", "error", err)
	}
}

func (w *WebSocketNotifier) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.Conn.WriteMessage(websocket.PingMessage, nil)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Доска может открываться с любого адреса.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler реализует HTTP-обработчики бэкенда радиатора.
type Handler struct {
	EventService   *service.EventService
	Configurations repository.ConfigurationRepository
	// Seed отдаётся, пока конфигурация ни разу не сохранялась.
	Seed   domain.Configuration
	Logger *slog.Logger
}

// NewHandler создаёт новый обработчик.
func NewHandler(es *service.EventService, configs repository.ConfigurationRepository, seed domain.Configuration, logger *slog.Logger) *Handler {
	return &Handler{
		EventService:   es,
		Configurations: configs,
		Seed:           seed,
		Logger:         logger,
	}
}

// ServeHTTP выполняет апгрейд соединения и регистрирует подписчика.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Error("WebSocket upgrade error", "error", err)
		return
	}
	notifier := &WebSocketNotifier{Conn: conn, Logger: h.Logger}
	client := service.NewClient(notifier)
	h.EventService.Register(client)

	// Контекст живёт столько же, сколько соединение.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.writePump(ctx, notifier, client.Done())
	h.readPump(conn)
	h.EventService.Unregister(client)
}

// readPump читает входящие сообщения и завершает соединение при ошибке.
func (h *Handler) readPump(conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Logger.Error("readPump error", "error", err)
			}
			break
		}
	}
}

// writePump отправляет ping-сообщения для поддержания соединения и закрывает
// его, когда сервис перестал доставлять подписчику события.
func (h *Handler) writePump(ctx context.Context, notifier *WebSocketNotifier, dropped <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		notifier.Conn.Close()
	}()
	for {
		select {
		case <-ticker.C:
			if err := notifier.ping(); err != nil {
				h.Logger.Error("Ping error", "error", err)
				return
			}
		case <-dropped:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Health отвечает 200, пока процесс жив.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// SetupRouter настраивает маршруты через chi и возвращает http.Handler.
// Если gatherer == nil, /metrics не публикуется.
func SetupRouter(h *Handler, wsPath string, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(wsPath, h.ServeHTTP)
	r.Get(wsPath+"/{id}", h.GetEvent)
	r.Post(wsPath+"/{id}", h.SubmitEvent)
	r.Route("/api/radiator", func(r chi.Router) {
		r.Get("/configuration", h.GetConfiguration)
		r.Post("/configuration", h.SetConfiguration)
	})
	r.Get("/actuator/health", Health)
	if gatherer != nil {
		r.Handle("/metrics", metrics.Handler(gatherer))
	}
	return r
}
