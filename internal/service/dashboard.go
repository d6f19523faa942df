package service

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/wrongjunior/radiator/internal/carousel"
	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/eventstore"
	"github.com/wrongjunior/radiator/internal/metrics"
	"github.com/wrongjunior/radiator/internal/notify"
)

// State хранит состояние доски радиатора в рамках одной сессии.
type State struct {
	Configuration  domain.Configuration
	Events         eventstore.Events
	CurrentPage    int
	IsDisconnected bool
	IsEditing      bool
}

// Dashboard владеет State и изменяет его только через свои методы.
// Каждый метод выполняется целиком под блокировкой: частичные обновления не видны.
type Dashboard struct {
	mu      sync.Mutex
	state   State
	editor  *EditSession
	saver   Saver
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewDashboard создаёт доску с пустой конфигурацией и пустым хранилищем событий.
// saver может быть nil: тогда правки применяются только локально.
func NewDashboard(saver Saver, logger *slog.Logger, m *metrics.Metrics) *Dashboard {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Dashboard{
		state: State{
			Configuration: domain.Configuration{Pages: []domain.Page{}},
			Events:        eventstore.Events{},
		},
		saver:   saver,
		logger:  logger,
		metrics: m,
	}
}

// LoadConfiguration заменяет конфигурацию целиком.
func (d *Dashboard) LoadConfiguration(cfg domain.Configuration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Configuration = cfg.Clone()
	d.logger.Info("Configuration loaded", "name", cfg.Name, "pages", len(cfg.Pages))
}

// UpdateEvent сохраняет последнее значение события.
func (d *Dashboard) UpdateEvent(event domain.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Events = eventstore.Apply(d.state.Events, event)
	d.metrics.EventsApplied.Inc()
	d.logger.Debug("Event updated", "id", event.ID, "level", event.Level)
}

// GotoPage выбирает страницу без проверки диапазона.
func (d *Dashboard) GotoPage(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.CurrentPage = carousel.Goto(n)
}

// IncrementPage переключает на следующую страницу по кругу. Без страниц
// текущая страница сбрасывается в 0 и возвращается carousel.ErrNoPages.
func (d *Dashboard) IncrementPage() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := carousel.Next(d.state.CurrentPage, len(d.state.Configuration.Pages))
	d.state.CurrentPage = next
	return err
}

// EmitConnected отмечает, что канал событий открыт.
func (d *Dashboard) EmitConnected() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.IsDisconnected = false
}

// EmitDisconnected отмечает потерю канала событий.
func (d *Dashboard) EmitDisconnected() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.IsDisconnected = true
}

// DismissEdit выходит из режима редактирования; открытая сессия закрывается.
func (d *Dashboard) DismissEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dismissLocked()
}

func (d *Dashboard) dismissLocked() {
	d.state.IsEditing = false
	if d.editor != nil {
		d.editor.close()
		d.editor = nil
	}
}

// State возвращает копию состояния.
func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.state
	s.Configuration = s.Configuration.Clone()
	return s
}

// CurrentPage возвращает индекс показываемой страницы.
func (d *Dashboard) CurrentPage() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.CurrentPage
}

// Notifications возвращает уведомления по состоянию на момент вызова.
func (d *Dashboard) Notifications() iter.Seq[notify.Notification] {
	d.mu.Lock()
	events := d.state.Events
	placed := d.state.Configuration.EventIDs()
	d.mu.Unlock()
	return notify.Rank(events, placed)
}
