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

package report

import (
	"dirpx.dev/apperr/kind"
	"github.com/puzpuzpuz/xsync/v4"
)

// Tally counts failures per kind. It is safe for concurrent use.
type Tally struct {
	counts *xsync.Map[kind.Kind, *xsync.Counter]
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: xsync.NewMap[kind.Kind, *xsync.Counter]()}
}

// Inc counts one failure of kind k.
func (t *Tally) Inc(k kind.Kind) {
	c, ok := t.counts.Load(k)
	if !ok {
		c, _ = t.counts.LoadOrStore(k, xsync.NewCounter())
	}
	c.Inc()
}

// Count returns the number of failures of kind k.
func (t *Tally) Count(k kind.Kind) int64 {
	if c, ok := t.counts.Load(k); ok {
		return c.Value()
	}
	return 0
}

// Snapshot copies the current counts. Kinds never counted are absent.
func (t *Tally) Snapshot() map[kind.Kind]int64 {
	out := make(map[kind.Kind]int64, t.counts.Size())
	t.counts.Range(func(k kind.Kind, c *xsync.Counter) bool {
		out[k] = c.Value()
		return true
	})
	return out
}

// Total returns the number of failures across all kinds.
func (t *Tally) Total() int64 {
	var n int64
	t.counts.Range(func(_ kind.Kind, c *xsync.Counter) bool {
		n += c.Value()
		return true
	})
	return n
}
