package carousel

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrongjunior/radiator/internal/schedule/scheduletest"
)

func TestNextWraps(t *testing.T) {
	current := 0
	var seen []int
	for range 5 {
		var err error
		current, err = Next(current, 3)
		require.NoError(t, err)
		seen = append(seen, current)
	}
	assert.Equal(t, []int{1, 2, 0, 1, 2}, seen)
}

func TestNextWithoutPages(t *testing.T) {
	got, err := Next(4, 0)
	assert.ErrorIs(t, err, ErrNoPages)
	assert.Zero(t, got)
}

func TestNextOutOfRange(t *testing.T) {
	got, err := Next(7, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = Next(-5, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestGotoUnchecked(t *testing.T) {
	assert.Equal(t, 99, Goto(99))
	assert.Equal(t, -1, Goto(-1))
}

type pages struct {
	mu      sync.Mutex
	current int
	count   int
}

func (p *pages) IncrementPage() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, err := Next(p.current, p.count)
	p.current = next
	return err
}

func TestRotator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := &scheduletest.Manual{}
	target := &pages{count: 3}

	r := NewRotator(target, sched, 0, logger)
	r.Start()
	r.Start()
	require.Len(t, sched.Tasks(), 1, "second Start is a no-op")
	assert.Equal(t, DefaultInterval, sched.Tasks()[0].Interval)

	var seen []int
	for range 6 {
		sched.Tick()
		seen = append(seen, target.current)
	}
	assert.Equal(t, []int{1, 2, 0, 1, 2, 0}, seen)

	r.Stop()
	r.Stop()
	sched.Tick()
	assert.Equal(t, 0, target.current)
	assert.Zero(t, sched.Active())
}

func TestRotatorWithoutPages(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := &scheduletest.Manual{}
	target := &pages{current: 2}

	NewRotator(target, sched, 0, logger).Start()
	sched.Tick()
	assert.Zero(t, target.current)
}
