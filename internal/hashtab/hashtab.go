// Package hashtab provides a generic associative container with separately
// chained buckets and automatic growth along a near-prime size schedule.
//
// Keys and values are opaque to the table; callers supply the hash and
// equality functions at construction time. Duplicate keys are rejected, not
// overwritten.
package hashtab

import (
	"errors"
	"fmt"
	"io"
)

// HashFunc maps a key to a bucket index for a table of the given size.
// The result is reduced modulo size, so any non-negative value is safe.
type HashFunc[K any] func(key K, size uint) uint

// EqualFunc reports whether two keys are the same key.
type EqualFunc[K any] func(a, b K) bool

var (
	// ErrExists is returned by Insert when an equal key is already present.
	ErrExists = errors.New("hashtab: key already present")

	// ErrReleased is returned by operations on a table after Free.
	ErrReleased = errors.New("hashtab: table already released")
)

const (
	initialSize       = 13
	initialDeltaIndex = 4

	// dumpPairLimit bounds the formatted text per entry in Dump.
	dumpPairLimit = 1024
)

// delta[i] is the gap between 2^i and the largest prime below 2^i. Growing
// to 2^(i+1)-delta[i+1] keeps the table size prime, which spreads arithmetic
// hash functions more evenly than power-of-two sizes.
var delta = [...]uint{
	0, 0, 1, 1, 3, 1, 3, 1, 5, 3, 3, 9, 3, 1, 3, 19,
	15, 1, 5, 1, 3, 9, 3, 15, 3, 39, 5, 39, 57, 3, 35, 1,
}

type entry[K, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

// Table is a chained hash table. The zero value is not usable; create
// tables with New.
type Table[K, V any] struct {
	buckets    []*entry[K, V]
	numEntries uint
	maxLoad    float64
	idx        int // growth index into delta
	hash       HashFunc[K]
	eq         EqualFunc[K]
	released   bool
}

// New returns an empty table that resizes whenever an insert would push the
// ratio of entries to buckets above maxLoad.
func New[K, V any](maxLoad float64, hash HashFunc[K], eq EqualFunc[K]) (*Table[K, V], error) {
	if hash == nil || eq == nil {
		return nil, errors.New("hashtab: hash and equality functions are required")
	}
	if maxLoad <= 0 {
		return nil, fmt.Errorf("hashtab: invalid load factor %g", maxLoad)
	}
	return &Table[K, V]{
		buckets: make([]*entry[K, V], initialSize),
		maxLoad: maxLoad,
		idx:     initialDeltaIndex,
		hash:    hash,
		eq:      eq,
	}, nil
}

// Len returns the number of live entries.
func (t *Table[K, V]) Len() int {
	return int(t.numEntries)
}

// Size returns the current number of buckets.
func (t *Table[K, V]) Size() int {
	return len(t.buckets)
}

// Insert adds key/value to the table. An entry whose key compares equal to
// an existing one is rejected with ErrExists and the table is unchanged.
// The table grows before the insert when the projected load factor would
// exceed the maximum; once the growth schedule is exhausted the table stops
// growing and the load factor may transiently exceed it.
func (t *Table[K, V]) Insert(key K, value V) error {
	if t.released {
		return ErrReleased
	}

	if float64(t.numEntries+1)/float64(len(t.buckets)) > t.maxLoad {
		t.grow()
	}

	i := t.bucketFor(key)
	for e := t.buckets[i]; e != nil; e = e.next {
		if t.eq(key, e.key) {
			return ErrExists
		}
	}

	t.buckets[i] = &entry[K, V]{key: key, value: value, next: t.buckets[i]}
	t.numEntries++
	return nil
}

// Search returns the value stored under key, if any. It never modifies the
// table.
func (t *Table[K, V]) Search(key K) (V, bool) {
	var zero V
	if t.released {
		return zero, false
	}
	for e := t.buckets[t.bucketFor(key)]; e != nil; e = e.next {
		if t.eq(key, e.key) {
			return e.value, true
		}
	}
	return zero, false
}

// Free releases every entry, invoking releaseKey then releaseValue exactly
// once per entry, and marks the table dead. Both hooks are required. After
// Free every operation fails with ErrReleased.
func (t *Table[K, V]) Free(releaseKey func(K), releaseValue func(V)) error {
	if releaseKey == nil || releaseValue == nil {
		return errors.New("hashtab: release functions are required")
	}
	if t.released {
		return ErrReleased
	}

	for i, e := range t.buckets {
		for e != nil {
			next := e.next
			releaseKey(e.key)
			releaseValue(e.value)
			e.next = nil
			e = next
		}
		t.buckets[i] = nil
	}
	t.buckets = nil
	t.numEntries = 0
	t.released = true
	return nil
}

// Dump writes the bucket layout to w, one line per bucket, chains in
// most-recent-first order. Formatted pairs are truncated at 1024 bytes.
// Diagnostic only; the output format is not stable.
func (t *Table[K, V]) Dump(w io.Writer, format func(K, V) string) {
	if t.released || format == nil {
		return
	}
	for i, e := range t.buckets {
		fmt.Fprintf(w, "bucket[%2d]", i)
		for ; e != nil; e = e.next {
			s := format(e.key, e.value)
			if len(s) > dumpPairLimit {
				s = s[:dumpPairLimit]
			}
			fmt.Fprintf(w, " --> %s", s)
		}
		fmt.Fprint(w, " --> nil\n")
	}
}

func (t *Table[K, V]) bucketFor(key K) uint {
	size := uint(len(t.buckets))
	return t.hash(key, size) % size
}

// grow rehashes into the next size in the schedule: the largest prime below
// the next power of two past the current one (13, 31, 61, 127, 251, 509,
// ...). Entry nodes are relinked, not reallocated.
func (t *Table[K, V]) grow() {
	next := t.idx + 1
	if next >= len(delta) {
		return
	}

	newSize := uint(1)<<next - delta[next]
	buckets := make([]*entry[K, V], newSize)
	for _, e := range t.buckets {
		for e != nil {
			next := e.next
			i := t.hash(e.key, newSize) % newSize
			e.next = buckets[i]
			buckets[i] = e
			e = next
		}
	}
	t.buckets = buckets
	t.idx = next
}
