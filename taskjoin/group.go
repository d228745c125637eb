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
	"errors"
	"runtime/debug"
	"sync"

	"dirpx.dev/apperr"
	"golang.org/x/sync/errgroup"
)

// errGoexit is the cancellation cause of a task that ended through
// runtime.Goexit without returning.
var errGoexit = errors.New("task exited without returning")

// Group runs named tasks on an errgroup. The first failing task cancels the
// group context; tasks that have not started by then are reported as
// cancelled.
type Group struct {
	eg     *errgroup.Group
	ctx    context.Context
	cancel context.CancelCauseFunc

	once sync.Once
	err  error
}

// WithContext returns a new Group and the derived context its tasks see.
func WithContext(ctx context.Context) (*Group, context.Context) {
	cctx, cancel := context.WithCancelCause(ctx)
	eg, gctx := errgroup.WithContext(cctx)
	return &Group{eg: eg, ctx: gctx, cancel: cancel}, gctx
}

// SetLimit bounds the number of tasks running at once. A negative n removes
// the limit. It must not be called while tasks are running.
func (g *Group) SetLimit(n int) { g.eg.SetLimit(n) }

// Go runs fn in a new goroutine, blocking while the limit is reached.
func (g *Group) Go(name string, fn func(ctx context.Context) error) {
	g.spawn(name, fn, nil)
}

// Wait blocks until every task ended and reports the first failure
// converted with apperr.From. The result is nil or an *apperr.Error.
func (g *Group) Wait() error {
	err := g.eg.Wait()
	g.cancel(nil)
	if g.err != nil {
		err = g.err
	}
	if e := apperr.From(err); e != nil {
		return e
	}
	return nil
}

// spawn schedules fn and hands its outcome to finish before errgroup sees
// it. A task that leaves through runtime.Goexit never returns to errgroup,
// so its outcome is recorded and finished from a deferred call.
func (g *Group) spawn(name string, fn func(context.Context) error, finish func(error)) {
	g.eg.Go(func() error {
		var err error
		returned := false
		defer func() {
			if !returned {
				err = Cancelled(name, errGoexit)
			}
			if err != nil {
				g.fail(err)
			}
			if finish != nil {
				finish(err)
			}
		}()
		err = g.run(name, fn)
		returned = true
		return err
	})
}

// fail records the first failure and cancels the group context with it.
func (g *Group) fail(err error) {
	g.once.Do(func() {
		g.err = err
		g.cancel(err)
	})
}

func (g *Group) run(name string, fn func(context.Context) error) (err error) {
	if cerr := g.ctx.Err(); cerr != nil {
		return Cancelled(name, cerr)
	}
	defer func() {
		if r := recover(); r != nil {
			err = Panicked(name, r, debug.Stack())
		}
	}()

	err = fn(g.ctx)
	if stoppedByGroup(g.ctx, err) {
		return Cancelled(name, err)
	}
	return err
}

// stoppedByGroup reports whether err is the group context's own error handed
// back by a task, rather than a failure of the task's work.
func stoppedByGroup(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() == nil || !errors.Is(err, ctx.Err()) {
		return false
	}
	_, tagged := apperr.KindOf(err)
	return !tagged
}
