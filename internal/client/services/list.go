package services

import (
	"slices"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

// Keyed is an item with a backend ID.
type Keyed interface {
	Key() models.ID
}

// List is the transient item list a view holds. It is not safe for
// concurrent use; a view owns it.
type List[T Keyed] struct {
	items []T
}

func NewList[T Keyed](items []T) *List[T] {
	l := &List[T]{}
	l.Set(items)
	return l
}

// Set replaces the contents, e.g. after a fetch.
func (l *List[T]) Set(items []T) {
	l.items = slices.Clone(items)
}

func (l *List[T]) Items() []T { return l.items }
func (l *List[T]) Len() int   { return len(l.items) }

// Prepend inserts item at the head. An item whose ID is already present is
// not inserted again; it reports whether the item was added.
func (l *List[T]) Prepend(item T) bool {
	if item.Key() != "" && l.index(item.Key()) >= 0 {
		return false
	}
	l.items = slices.Insert(l.items, 0, item)
	return true
}

// Append inserts item at the tail, with the same uniqueness rule as Prepend.
func (l *List[T]) Append(item T) bool {
	if item.Key() != "" && l.index(item.Key()) >= 0 {
		return false
	}
	l.items = append(l.items, item)
	return true
}

func (l *List[T]) Remove(id models.ID) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

func (l *List[T]) Replace(item T) bool {
	i := l.index(item.Key())
	if i < 0 {
		return false
	}
	l.items[i] = item
	return true
}

func (l *List[T]) Find(id models.ID) (T, bool) {
	i := l.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

func (l *List[T]) index(id models.ID) int {
	return slices.IndexFunc(l.items, func(it T) bool { return it.Key() == id })
}
