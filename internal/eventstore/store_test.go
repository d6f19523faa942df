package eventstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wrongjunior/radiator/internal/domain"
)

func TestApplyLastWriteWins(t *testing.T) {
	stream := []domain.Event{
		{ID: "a", Level: domain.LevelOK, Name: "first"},
		{ID: "b", Level: domain.LevelWarn},
		{ID: "a", Level: domain.LevelError, Payload: domain.StatusPayload{Status: "down"}},
		{ID: "c", Level: domain.LevelInfo},
		{ID: "b", Level: domain.LevelOK},
	}
	store := Events{}
	for _, ev := range stream {
		store = Apply(store, ev)
	}

	assert.Equal(t, 3, store.Len())
	for id, want := range map[string]domain.Event{"a": stream[2], "b": stream[4], "c": stream[3]} {
		got, ok := store.Get(id)
		assert.True(t, ok, id)
		assert.Equal(t, want, got, id)
	}
	a, _ := store.Get("a")
	assert.Empty(t, a.Name, "fields are replaced, not merged")
}

func TestApplyDoesNotMutate(t *testing.T) {
	before := Apply(nil, domain.Event{ID: "a", Level: domain.LevelOK})
	after := Apply(before, domain.Event{ID: "a", Level: domain.LevelError})

	assert.Equal(t, domain.LevelOK, before["a"].Level)
	assert.Equal(t, domain.LevelError, after["a"].Level)

	_, ok := Events(nil).Get("missing")
	assert.False(t, ok)
}
