// Package carousel выбирает текущую страницу: по таймеру и вручную.
package carousel

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wrongjunior/radiator/internal/schedule"
)

// DefaultInterval задаёт период автоматического переключения страниц.
const DefaultInterval = 30 * time.Second

// ErrNoPages возвращается при переключении, когда страниц нет.
var ErrNoPages = errors.New("no pages to rotate")

// Goto возвращает n без проверки диапазона: страница вне диапазона просто
// не отображается.
func Goto(n int) int {
	return n
}

// Next возвращает (current + 1) mod pageCount. Без страниц возвращает 0 и ErrNoPages.
func Next(current, pageCount int) (int, error) {
	if pageCount <= 0 {
		return 0, ErrNoPages
	}
	next := (current + 1) % pageCount
	if next < 0 {
		next += pageCount
	}
	return next, nil
}

// Incrementer переключает страницу вперёд.
type Incrementer interface {
	IncrementPage() error
}

// Rotator вызывает IncrementPage по расписанию.
type Rotator struct {
	target    Incrementer
	scheduler schedule.Scheduler
	interval  time.Duration
	logger    *slog.Logger

	mu   sync.Mutex
	task schedule.Task
}

// NewRotator создаёт ротатор; interval <= 0 заменяется DefaultInterval.
func NewRotator(target Incrementer, scheduler schedule.Scheduler, interval time.Duration, logger *slog.Logger) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Rotator{target: target, scheduler: scheduler, interval: interval, logger: logger}
}

// Start запускает ротацию. Повторный вызов ничего не делает.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task != nil {
		return
	}
	r.task = r.scheduler.Every(r.interval, r.tick)
	r.logger.Info("Page rotation started", "interval", r.interval)
}

// Stop останавливает ротацию; безопасен при повторном вызове.
func (r *Rotator) Stop() {
	r.mu.Lock()
	task := r.task
	r.mu.Unlock()
	if task != nil {
		task.Stop()
	}
}

func (r *Rotator) tick() {
	if err := r.target.IncrementPage(); err != nil {
		r.logger.Debug("Page rotation skipped", "error", err)
	}
}
