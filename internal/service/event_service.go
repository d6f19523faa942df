package service

import (
	"log/slog"
	"sync"

	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/repository"
)

// clientQueue ограничивает число событий, ожидающих отправки одному подписчику.
const clientQueue = 256

// Notifier определяет интерфейс для уведомления подписчика (например, через WebSocket).
type Notifier interface {
	Notify(event domain.Event)
}

// Client представляет подписчика канала событий. События доставляются
// собственной горутиной подписчика в порядке публикации.
type Client struct {
	Notifier Notifier

	send chan domain.Event
	done chan struct{}
	once sync.Once
}

// NewClient создаёт подписчика поверх notifier.
func NewClient(notifier Notifier) *Client {
	return &Client{
		Notifier: notifier,
		send:     make(chan domain.Event, clientQueue),
		done:     make(chan struct{}),
	}
}

// Done закрывается, когда сервис перестал доставлять подписчику события:
// после Unregister или если подписчик не успевал их принимать.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Client) pump(replay []domain.Event) {
	for _, event := range replay {
		select {
		case <-c.done:
			return
		default:
		}
		c.Notifier.Notify(event)
	}
	for {
		select {
		case event := <-c.send:
			c.Notifier.Notify(event)
		case <-c.done:
			return
		}
	}
}

// EventService хранит последние значения событий и рассылает их подписчикам.
type EventService struct {
	// pub упорядочивает публикации: порядок записи в хранилище совпадает
	// с порядком рассылки.
	pub     sync.Mutex
	mu      sync.RWMutex
	clients map[*Client]struct{}
	repo    repository.EventRepository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewEventService создаёт новый экземпляр сервиса.
func NewEventService(repo repository.EventRepository, logger *slog.Logger, m *metrics.Metrics) *EventService {
	if m == nil {
		m = metrics.New(nil)
	}
	return &EventService{
		clients: make(map[*Client]struct{}),
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// Register добавляет подписчика. Сначала ему уходят все последние события,
// затем всё, что опубликовано после регистрации.
func (s *EventService) Register(client *Client) {
	s.pub.Lock()
	events, err := s.repo.List()
	if err != nil {
		s.logger.Error("Failed to load cached events", "error", err)
	}
	s.mu.Lock()
	s.clients[client] = struct{}{}
	s.metrics.Subscribers.Set(float64(len(s.clients)))
	s.mu.Unlock()
	s.pub.Unlock()

	go client.pump(events)
	s.logger.Info("Client registered", "replayed", len(events))
}

// Unregister удаляет подписчика. Повторный вызов ничего не делает.
func (s *EventService) Unregister(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop(client)
	s.logger.Info("Client unregistered")
}

func (s *EventService) drop(client *Client) {
	delete(s.clients, client)
	client.close()
	s.metrics.Subscribers.Set(float64(len(s.clients)))
}

// Publish сохраняет событие как последнее значение и рассылает его.
func (s *EventService) Publish(event domain.Event) error {
	s.pub.Lock()
	defer s.pub.Unlock()
	if err := s.repo.Save(event); err != nil {
		return err
	}
	s.metrics.EventsSubmitted.Inc()
	s.Broadcast(event)
	return nil
}

// Latest возвращает последнее значение события.
func (s *EventService) Latest(id string) (domain.Event, bool, error) {
	return s.repo.Get(id)
}

// Broadcast ставит событие в очередь каждого подписчика. Подписчик с
// переполненной очередью отключается и при переподключении получит все
// последние значения заново.
func (s *EventService) Broadcast(event domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		select {
		case client.send <- event:
		default:
			s.drop(client)
			s.metrics.SubscribersDropped.Inc()
			s.logger.Warn("Subscriber lagging, disconnecting", "queued", len(client.send))
		}
	}
	s.metrics.Broadcasts.Inc()
	s.logger.Info("Event broadcast", "id", event.ID, "level", event.Level, "clients", len(s.clients))
}
