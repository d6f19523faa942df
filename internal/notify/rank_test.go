package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/eventstore"
)

func at(sec int) domain.Timestamp {
	return domain.At(time.Date(2024, 1, 1, 0, 0, sec, 0, time.UTC))
}

func ids(ns []Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Event.ID
	}
	return out
}

func TestRankOrder(t *testing.T) {
	events := eventstore.Events{
		"A": {ID: "A", Level: domain.LevelWarn, Time: at(1)},
		"B": {ID: "B", Level: domain.LevelError, Time: at(2)},
		"C": {ID: "C", Level: domain.LevelWarn, Time: at(3)},
		"D": {ID: "D", Level: domain.LevelOK, Time: at(0)},
	}
	assert.Equal(t, []string{"B", "A", "C"}, ids(Collect(Rank(events, nil))))
}

func TestRankUnknownLevels(t *testing.T) {
	events := eventstore.Events{
		"u": {ID: "u", Level: domain.Level("PURPLE"), Time: at(1)},
		"d": {ID: "d", Level: domain.LevelDisabled, Time: at(0)},
		"i": {ID: "i", Level: domain.LevelInfo, Time: at(5)},
	}
	assert.Equal(t, []string{"i", "u", "d"}, ids(Collect(Rank(events, nil))))
}

func TestRankTieBreaksByID(t *testing.T) {
	events := eventstore.Events{
		"z": {ID: "z", Level: domain.LevelError},
		"m": {ID: "m", Level: domain.LevelError},
	}
	assert.Equal(t, []string{"m", "z"}, ids(Collect(Rank(events, nil))))
}

func TestRankPlacedIsAnnotationOnly(t *testing.T) {
	events := eventstore.Events{
		"a": {ID: "a", Level: domain.LevelError},
		"b": {ID: "b", Level: domain.LevelWarn},
	}
	got := Collect(Rank(events, map[string]struct{}{"a": {}}))

	assert.Len(t, got, 2)
	assert.True(t, got[0].Placed)
	assert.False(t, got[1].Placed)
}

func TestRankRestartableAndLazy(t *testing.T) {
	events := eventstore.Events{
		"a": {ID: "a", Level: domain.LevelError},
		"b": {ID: "b", Level: domain.LevelWarn},
		"c": {ID: "c", Level: domain.LevelInfo},
	}
	seq := Rank(events, nil)

	var first []string
	for n := range seq {
		first = append(first, n.Event.ID)
		break
	}
	assert.Equal(t, []string{"a"}, first)
	assert.Equal(t, []string{"a", "b", "c"}, ids(Collect(seq)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Collect(seq)))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Collect(Rank(nil, nil)))
}
