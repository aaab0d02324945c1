// Package pq provides an indexed binary min-heap. Each element is tracked
// by position, so an element whose priority changed can be restored to
// heap order in O(log n) without a linear search.
package pq

import "container/heap"

const defaultCapacity = 32

// IndexedMinPQ is a min-priority queue of distinct elements ordered by cmp.
// cmp returns a negative number when a sorts before b, zero when they are
// equal, and a positive number otherwise, like cmp.Compare.
//
// The zero value is not usable; construct one with New.
type IndexedMinPQ[E comparable] struct {
	h indexedHeap[E]
}

// New creates an empty queue ordered by cmp.
func New[E comparable](cmp func(a, b E) int) *IndexedMinPQ[E] {
	return NewWithCapacity(defaultCapacity, cmp)
}

// NewWithCapacity creates an empty queue with room for n elements.
func NewWithCapacity[E comparable](n int, cmp func(a, b E) int) *IndexedMinPQ[E] {
	return &IndexedMinPQ[E]{h: indexedHeap[E]{
		items: make([]E, 0, n),
		index: make(map[E]int, n),
		cmp:   cmp,
	}}
}

// FromSlice builds a queue from items in linear time. Duplicates are
// dropped; items itself is not modified.
func FromSlice[E comparable](items []E, cmp func(a, b E) int) *IndexedMinPQ[E] {
	q := NewWithCapacity(len(items), cmp)
	for _, e := range items {
		if _, ok := q.h.index[e]; ok {
			continue
		}
		q.h.index[e] = len(q.h.items)
		q.h.items = append(q.h.items, e)
	}
	heap.Init(&q.h)
	return q
}

// Len returns the number of queued elements.
func (q *IndexedMinPQ[E]) Len() int { return len(q.h.items) }

// IsEmpty reports whether the queue has no elements.
func (q *IndexedMinPQ[E]) IsEmpty() bool { return len(q.h.items) == 0 }

// Contains reports whether e is queued.
func (q *IndexedMinPQ[E]) Contains(e E) bool {
	_, ok := q.h.index[e]
	return ok
}

// Add queues e and reports whether it was added. Adding an element that is
// already queued does nothing.
func (q *IndexedMinPQ[E]) Add(e E) bool {
	if _, ok := q.h.index[e]; ok {
		return false
	}
	heap.Push(&q.h, e)
	return true
}

// Peek returns the minimum element without removing it.
func (q *IndexedMinPQ[E]) Peek() (E, bool) {
	if len(q.h.items) == 0 {
		var zero E
		return zero, false
	}
	return q.h.items[0], true
}

// Pop removes and returns the minimum element.
func (q *IndexedMinPQ[E]) Pop() (E, bool) {
	if len(q.h.items) == 0 {
		var zero E
		return zero, false
	}
	e := heap.Pop(&q.h).(E)
	q.shrink()
	return e, true
}

// Fix restores heap order after the ordering key of e changed. It reports
// whether e is queued.
func (q *IndexedMinPQ[E]) Fix(e E) bool {
	i, ok := q.h.index[e]
	if !ok {
		return false
	}
	heap.Fix(&q.h, i)
	return true
}

// Remove deletes e from the queue and reports whether it was queued.
func (q *IndexedMinPQ[E]) Remove(e E) bool {
	i, ok := q.h.index[e]
	if !ok {
		return false
	}
	heap.Remove(&q.h, i)
	q.shrink()
	return true
}

// Clear empties the queue and releases its storage.
func (q *IndexedMinPQ[E]) Clear() {
	q.h.items = make([]E, 0, defaultCapacity)
	clear(q.h.index)
}

// shrink halves the backing array once it is less than a quarter full.
func (q *IndexedMinPQ[E]) shrink() {
	n, c := len(q.h.items), cap(q.h.items)
	if c > defaultCapacity && n < c/4 {
		q.h.items = append(make([]E, 0, c/2), q.h.items...)
	}
}

// indexedHeap implements heap.Interface and keeps index in step with every
// swap.
type indexedHeap[E comparable] struct {
	items []E
	index map[E]int
	cmp   func(a, b E) int
}

func (h *indexedHeap[E]) Len() int           { return len(h.items) }
func (h *indexedHeap[E]) Less(i, j int) bool { return h.cmp(h.items[i], h.items[j]) < 0 }

func (h *indexedHeap[E]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i]] = i
	h.index[h.items[j]] = j
}

func (h *indexedHeap[E]) Push(x any) {
	e := x.(E)
	h.index[e] = len(h.items)
	h.items = append(h.items, e)
}

func (h *indexedHeap[E]) Pop() any {
	last := len(h.items) - 1
	e := h.items[last]
	var zero E
	h.items[last] = zero
	h.items = h.items[:last]
	delete(h.index, e)
	return e
}
