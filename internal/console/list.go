package console

import "strings"

// List is the shared mechanism behind every entity screen: it holds the
// collection fetched on load, answers case-insensitive substring searches,
// and patches itself in place from mutation results instead of refetching.
type List[T any] struct {
	items []T
	id    func(T) string
	match func(item T, loweredTerm string) bool
}

// NewList builds a list keyed by id. match receives the search term already
// lowercased and decides whether an item stays visible.
func NewList[T any](id func(T) string, match func(T, string) bool) *List[T] {
	return &List[T]{id: id, match: match}
}

// Reset replaces the whole collection, as after a fetch.
func (l *List[T]) Reset(items []T) {
	l.items = items
}

// Items returns the unfiltered collection.
func (l *List[T]) Items() []T {
	return l.items
}

// Len returns the number of items held.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Filter returns the items whose designated fields contain term,
// case-insensitively. An empty term returns the full set.
func (l *List[T]) Filter(term string) []T {
	if term == "" {
		return l.items
	}
	lowered := strings.ToLower(term)
	var out []T
	for _, item := range l.items {
		if l.match(item, lowered) {
			out = append(out, item)
		}
	}
	return out
}

// Add appends a freshly created item. If the id is already present the
// existing entry is replaced, so an item never appears twice.
func (l *List[T]) Add(item T) {
	if l.replace(item) {
		return
	}
	l.items = append(l.items, item)
}

// Prepend puts a freshly created item at the front of the collection.
func (l *List[T]) Prepend(item T) {
	if l.replace(item) {
		return
	}
	l.items = append([]T{item}, l.items...)
}

// Update replaces the entry with the same id and is a no-op when absent.
func (l *List[T]) Update(item T) {
	l.replace(item)
}

// Remove drops the entry with the given id.
func (l *List[T]) Remove(id string) {
	for i, existing := range l.items {
		if l.id(existing) == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

func (l *List[T]) replace(item T) bool {
	id := l.id(item)
	for i, existing := range l.items {
		if l.id(existing) == id {
			l.items[i] = item
			return true
		}
	}
	return false
}

func statusText(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func containsFold(haystack, loweredTerm string) bool {
	return strings.Contains(strings.ToLower(haystack), loweredTerm)
}
