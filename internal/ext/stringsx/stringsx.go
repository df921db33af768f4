// Package stringsx contains extensions to Go's package strings.
package stringsx

import (
	"iter"
	"strings"
)

// Split is like [strings.Split], but returning an iterator instead of a
// slice.
func Split[Sep string | rune](s string, sep Sep) iter.Seq[string] {
	r := string(sep)
	return func(yield func(string) bool) {
		for {
			chunk, rest, found := strings.Cut(s, r)
			s = rest
			if !yield(chunk) || !found {
				return
			}
		}
	}
}

// Lines returns an iterator over the lines in the given string.
//
// It is equivalent to Split(s, '\n').
func Lines(s string) iter.Seq[string] {
	return Split(s, '\n')
}

// PartitionKey returns an iterator over the maximal substrings of s such
// that key returns the same value for every rune in each substring.
//
// The iterator yields the byte offset at which each substring begins, along
// with the substring itself. The empty string yields nothing.
func PartitionKey[K comparable](s string, key func(rune) K) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		if s == "" {
			return
		}

		var start int
		var prev K
		first := true
		for i, r := range s {
			k := key(r)
			if first {
				prev, first = k, false
				continue
			}
			if k != prev {
				if !yield(start, s[start:i]) {
					return
				}
				start, prev = i, k
			}
		}
		yield(start, s[start:])
	}
}
