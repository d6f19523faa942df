package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerRunsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	task := Ticker{}.Every(5*time.Millisecond, func() { calls.Add(1) })

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)

	task.Stop()
	task.Stop()
	time.Sleep(20 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}

func TestTickerStopBeforeFirstTick(t *testing.T) {
	var calls atomic.Int32
	task := Ticker{}.Every(10*time.Millisecond, func() { calls.Add(1) })
	task.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestTickerStopFromCallback(t *testing.T) {
	var calls atomic.Int32
	var task Task
	started := make(chan struct{})
	task = Ticker{}.Every(5*time.Millisecond, func() {
		<-started
		calls.Add(1)
		task.Stop()
	})
	close(started)

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}
