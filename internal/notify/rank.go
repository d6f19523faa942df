// Package notify выводит упорядоченный список уведомлений из хранилища событий.
package notify

import (
	"cmp"
	"iter"
	"slices"

	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/eventstore"
)

// Notification описывает событие, показываемое вне сетки.
type Notification struct {
	Event domain.Event
	// Placed сообщает, что событие также размещено на одной из страниц.
	// На отбор это не влияет.
	Placed bool
}

// Rank возвращает ленивую последовательность уведомлений: все события, кроме OK,
// по убыванию уровня, при равенстве от старых к новым. Размещение на странице
// уведомление не подавляет. Каждый проход заново строит порядок по текущим данным.
func Rank(events eventstore.Events, placed map[string]struct{}) iter.Seq[Notification] {
	return func(yield func(Notification) bool) {
		ranked := make([]domain.Event, 0, len(events))
		for _, ev := range events {
			if ev.Level == domain.LevelOK {
				continue
			}
			ranked = append(ranked, ev)
		}
		slices.SortFunc(ranked, compare)
		for _, ev := range ranked {
			_, onPage := placed[ev.ID]
			if !yield(Notification{Event: ev, Placed: onPage}) {
				return
			}
		}
	}
}

// Collect материализует последовательность в срез.
func Collect(seq iter.Seq[Notification]) []Notification {
	return slices.Collect(seq)
}

func compare(a, b domain.Event) int {
	if c := cmp.Compare(b.Level.Rank(), a.Level.Rank()); c != 0 {
		return c
	}
	if c := a.Time.Compare(b.Time.Time); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
