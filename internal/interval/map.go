// Package interval provides an interval map keyed on integer offsets.
//
// The wrap engine uses it to answer "which string literals intersect this
// selection" without rescanning the token slice.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Map is an interval map, which maps closed intervals with endpoints in K to
// values of type V.
//
// A zero value is ready to use.
type Map[K Endpoint, V any] struct {
	// Keys in this map are the ends of intervals in the map.
	tree btree.Map[K, *entry[K, V]]
}

type entry[K Endpoint, V any] struct {
	start K
	value V
}

// Interval is an entry returned by lookups on a [Map].
type Interval[K Endpoint, V any] struct {
	// The range for this interval. Both endpoints are inclusive.
	Start, End K

	// The value associated with it. Nil when the lookup found nothing.
	Value *V
}

// Get looks up the interval which contains key, if one exists.
//
// If no such interval exists, the Value of the returned [Interval] will be
// nil.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	it := m.tree.Iter()
	found := it.Seek(key)

	if !found || key < it.Value().start {
		// Check that the interval actually contains key. It is implicit
		// already that key <= end.
		return Interval[K, V]{}
	}

	return Interval[K, V]{
		Start: it.Value().start,
		End:   it.Key(),
		Value: &it.Value().value,
	}
}

// Insert inserts a new interval into this map, with the given associated
// value. Both endpoints are inclusive.
//
// The caller must ensure that [start, end] does not overlap any interval
// already present; intervals inserted here come from a token stream whose
// spans partition the text, so overlap indicates a bug upstream.
func (m *Map[K, V]) Insert(start, end K, value V) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}
	m.tree.Set(end, &entry[K, V]{start: start, value: value})
}

// Len returns the number of intervals in this map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Intervals returns an iterator over the intervals in this map, in order.
func (m *Map[K, V]) Intervals() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		it := m.tree.Iter()
		for more := it.First(); more; more = it.Next() {
			if !yield(Interval[K, V]{
				Start: it.Value().start,
				End:   it.Key(),
				Value: &it.Value().value,
			}) {
				return
			}
		}
	}
}

// Overlapping returns an iterator over the intervals in this map which
// intersect the closed interval [start, end], in order.
func (m *Map[K, V]) Overlapping(start, end K) iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		it := m.tree.Iter()
		// Seek to the least interval whose end is >= start; every interval
		// before it ends strictly before the query.
		for more := it.Seek(start); more; more = it.Next() {
			if it.Value().start > end {
				return
			}
			if !yield(Interval[K, V]{
				Start: it.Value().start,
				End:   it.Key(),
				Value: &it.Value().value,
			}) {
				return
			}
		}
	}
}
