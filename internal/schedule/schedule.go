// Package schedule запускает периодические задачи с идемпотентной отменой.
package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task управляет запущенной задачей. Stop можно вызывать сколько угодно раз,
// в том числе из самой функции задачи. После Stop новые тики не запускаются,
// но тик, уже прошедший проверку, может завершиться; функция задачи сама
// проверяет, актуальна ли она.
type Task interface {
	Stop()
}

// Scheduler запускает fn каждые interval.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// Ticker реализует Scheduler на time.Ticker, каждая задача в своей горутине.
type Ticker struct{}

// Every запускает fn каждые interval до вызова Stop.
func (Ticker) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{done: make(chan struct{})}
	go t.run(interval, fn)
	return t
}

type tickerTask struct {
	done    chan struct{}
	once    sync.Once
	stopped atomic.Bool
}

func (t *tickerTask) run(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if t.stopped.Load() {
				return
			}
			fn()
		case <-t.done:
			return
		}
	}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.done)
	})
}
