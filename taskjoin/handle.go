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

package taskjoin

import (
	"context"

	"dirpx.dev/apperr"
)

// Handle is the join handle of a task started with Spawn.
type Handle[T any] struct {
	task string
	done chan struct{}
	val  T
	err  error
}

// Spawn runs fn on g and returns a handle to its result.
func Spawn[T any](g *Group, name string, fn func(ctx context.Context) (T, error)) *Handle[T] {
	h := &Handle[T]{task: name, done: make(chan struct{})}
	g.spawn(name, func(ctx context.Context) error {
		v, err := fn(ctx)
		h.val = v
		return err
	}, func(err error) {
		h.err = err
		close(h.done)
	})
	return h
}

// Task returns the name the task was spawned with.
func (h *Handle[T]) Task() string { return h.task }

// Done is closed once the task finished, panicked or was skipped.
func (h *Handle[T]) Done() <-chan struct{} { return h.done }

// Join waits for the task. A panic or a cancellation yields a TaskJoin
// failure; the task's own error is converted with apperr.From. If ctx is
// done first the result is a cancelled TaskJoin and the task keeps running.
func (h *Handle[T]) Join(ctx context.Context) apperr.Result[T] {
	select {
	case <-h.done:
		return h.result()
	default:
	}
	select {
	case <-h.done:
		return h.result()
	case <-ctx.Done():
		return apperr.Fail[T](apperr.FromJoin(Cancelled(h.task, ctx.Err())))
	}
}

func (h *Handle[T]) result() apperr.Result[T] {
	if h.err != nil {
		return apperr.Fail[T](apperr.From(h.err))
	}
	return apperr.OK(h.val)
}
