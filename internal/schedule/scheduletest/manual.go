// Package scheduletest содержит ручной планировщик для тестов.
package scheduletest

import (
	"sync"
	"time"

	"github.com/wrongjunior/radiator/internal/schedule"
)

// Manual запускает задачи только по вызову Tick.
type Manual struct {
	mu    sync.Mutex
	tasks []*Task
}

// Task представляет задачу ручного планировщика.
type Task struct {
	Interval time.Duration

	mu        sync.Mutex
	fn        func()
	stopped   bool
	stopCalls int
}

var _ schedule.Scheduler = (*Manual)(nil)

// Every регистрирует задачу; она срабатывает только по Tick.
func (m *Manual) Every(interval time.Duration, fn func()) schedule.Task {
	t := &Task{Interval: interval, fn: fn}
	m.mu.Lock()
	m.tasks = append(m.tasks, t)
	m.mu.Unlock()
	return t
}

// Tick один раз вызывает функции всех неостановленных задач.
func (m *Manual) Tick() {
	m.mu.Lock()
	tasks := append([]*Task(nil), m.tasks...)
	m.mu.Unlock()
	for _, t := range tasks {
		t.fire()
	}
}

// Tasks возвращает все созданные задачи, включая остановленные.
func (m *Manual) Tasks() []*Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Task(nil), m.tasks...)
}

// Active возвращает число неостановленных задач.
func (m *Manual) Active() int {
	n := 0
	for _, t := range m.Tasks() {
		if !t.Stopped() {
			n++
		}
	}
	return n
}

func (t *Task) fire() {
	t.mu.Lock()
	stopped := t.stopped
	t.mu.Unlock()
	if !stopped {
		t.fn()
	}
}

// Run вызывает функцию задачи, даже если задача остановлена. Так выглядит тик,
// прошедший проверку остановки до вызова Stop.
func (t *Task) Run() {
	t.fn()
}

// Stop снимает задачу.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.stopCalls++
}

// Stopped сообщает, вызывался ли Stop.
func (t *Task) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// StopCalls возвращает, сколько раз вызывался Stop.
func (t *Task) StopCalls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopCalls
}
