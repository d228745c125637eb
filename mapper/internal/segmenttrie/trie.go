/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package segmenttrie is a segment-aware prefix index for dot-separated
// reasons such as "fs.io.permission" or "task.join.cancelled".
package segmenttrie

import (
	"errors"
	"strings"
)

// Wildcard matches exactly one segment.
const Wildcard = "*"

// Trie maps reason prefixes to values. Each node is one segment. Lookups
// return the value of the deepest matching prefix (longest-prefix-match on
// segment boundaries), exploring exact and wildcard branches.
//
// A Trie is not safe for concurrent Insert; once built, concurrent lookups
// are safe.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix as inserted, kept for Explain output.
	pattern string
}

// ErrInvalidPrefix is returned when inserting an empty prefix, a prefix with
// empty or malformed segments, or a prefix made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with prefix, replacing any earlier value for the
// same prefix.
//
//	"fs.io"
//	"record.field.*"
//	"task.*.cancelled"
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	allWild := true
	for _, s := range segs {
		if s == Wildcard {
			continue
		}
		if !validSegment(s) {
			return ErrInvalidPrefix
		}
		allWild = false
	}
	if allWild {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the deepest prefix matching reason.
// A malformed reason stops matching at the first bad segment.
func (t *Trie[T]) Match(reason string) (T, bool) {
	n := t.best(reason)
	if n == nil {
		var zero T
		return zero, false
	}
	return n.val, true
}

// MatchWithPattern is Match plus the pattern of the rule that matched.
func (t *Trie[T]) MatchWithPattern(reason string) (T, bool, string) {
	n := t.best(reason)
	if n == nil {
		var zero T
		return zero, false, ""
	}
	return n.val, true, n.pattern
}

// best walks every exact and wildcard branch and returns the deepest node
// carrying a value. At equal depth the exact branch wins because it is
// visited first.
func (t *Trie[T]) best(reason string) *Trie[T] {
	if t == nil {
		return nil
	}
	var (
		found     *Trie[T]
		bestDepth = -1
	)
	var walk func(n *Trie[T], off, depth int)
	walk = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			bestDepth = depth
			found = n
		}
		if off >= len(reason) {
			return
		}
		end := strings.IndexByte(reason[off:], '.')
		if end < 0 {
			end = len(reason)
		} else {
			end += off
		}
		seg := reason[off:end]
		if !validSegment(seg) {
			return
		}
		next := end
		if next < len(reason) {
			next++ // skip '.'
		}
		if child, ok := n.children[seg]; ok {
			walk(child, next, depth+1)
		}
		if child, ok := n.children[Wildcard]; ok {
			walk(child, next, depth+1)
		}
	}
	walk(t, 0, 0)
	return found
}

// validSegment reports whether seg matches [a-z][a-z0-9_]*.
func validSegment(seg string) bool {
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
