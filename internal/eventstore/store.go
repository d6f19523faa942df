// Package eventstore хранит последнее значение каждого события по его ID.
package eventstore

import (
	"maps"

	"github.com/wrongjunior/radiator/internal/domain"
)

// Events отображает ID события на его последнее значение.
// Значения Events не изменяются после создания: Apply всегда строит новое.
type Events map[string]domain.Event

// Apply возвращает копию current, в которой incoming.ID связан с incoming.
// Предыдущее значение заменяется целиком, без слияния полей.
func Apply(current Events, incoming domain.Event) Events {
	next := make(Events, len(current)+1)
	maps.Copy(next, current)
	next[incoming.ID] = incoming
	return next
}

// Get возвращает событие по ID.
func (e Events) Get(id string) (domain.Event, bool) {
	ev, ok := e[id]
	return ev, ok
}

// Len возвращает число известных событий.
func (e Events) Len() int {
	return len(e)
}
