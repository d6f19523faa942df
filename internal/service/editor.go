package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/layout"
)

// ErrNotEditing возвращается при обращении к закрытой сессии редактирования.
var ErrNotEditing = errors.New("edit session is closed")

// Saver сохраняет конфигурацию во внешнем хранилище.
type Saver interface {
	Save(ctx context.Context, cfg domain.Configuration) error
}

// EditSession хранит буфер правок одного редактора. Правки не видны доске до Submit.
type EditSession struct {
	dashboard *Dashboard

	mu     sync.Mutex
	buffer domain.Configuration
	closed bool
}

// Edit включает режим редактирования и открывает сессию с копией текущей
// конфигурации. Предыдущая сессия, если была, закрывается: редактор один.
func (d *Dashboard) Edit() *EditSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.editor != nil {
		d.editor.close()
	}
	s := &EditSession{dashboard: d, buffer: d.state.Configuration.Clone()}
	d.editor = s
	d.state.IsEditing = true
	return s
}

// Configuration возвращает копию буфера.
func (s *EditSession) Configuration() domain.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Clone()
}

// Dispatch применяет операцию к буферу. При ошибке буфер не меняется.
func (s *EditSession) Dispatch(op layout.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotEditing
	}
	next, err := op.Apply(s.buffer)
	if err != nil {
		return err
	}
	s.buffer = next
	return nil
}

// Submit сразу применяет буфер к доске и отправляет его на сохранение.
// При ошибке сохранения сессия остаётся открытой, а буфер нетронутым;
// Submit можно повторить.
func (s *EditSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrNotEditing
	}
	cfg := s.buffer.Clone()
	s.mu.Unlock()

	d := s.dashboard
	d.LoadConfiguration(cfg)
	if d.saver != nil {
		if err := d.saver.Save(ctx, cfg); err != nil {
			d.metrics.ConfigSaves.WithLabelValues("error").Inc()
			d.logger.Warn("Configuration save failed", "error", err)
			return fmt.Errorf("submit configuration: %w", err)
		}
		d.metrics.ConfigSaves.WithLabelValues("ok").Inc()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.editor == s {
		d.dismissLocked()
	}
	return nil
}

// Cancel закрывает сессию без сохранения.
func (s *EditSession) Cancel() {
	d := s.dashboard
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.editor == s {
		d.dismissLocked()
	}
}

// Closed сообщает, закрыта ли сессия.
func (s *EditSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *EditSession) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
