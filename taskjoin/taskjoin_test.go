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
	"runtime"
	"testing"
	"time"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asAppErr(t *testing.T, err error) *apperr.Error {
	t.Helper()
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	return e
}

func TestJoinError(t *testing.T) {
	p := Panicked("parse", "boom", []byte("stack"))
	assert.Equal(t, `task "parse" panicked: boom`, p.Error())
	assert.True(t, p.Panicked())
	assert.False(t, p.Cancelled())
	assert.Equal(t, "boom", p.PanicValue())
	assert.Equal(t, []byte("stack"), p.Stack())
	assert.ErrorIs(t, p, ErrPanicked)
	assert.NotErrorIs(t, p, ErrCancelled)
	assert.NoError(t, p.Unwrap())

	c := Cancelled("", context.Canceled)
	assert.Equal(t, "task cancelled: context canceled", c.Error())
	assert.True(t, c.Cancelled())
	assert.ErrorIs(t, c, ErrCancelled)
	assert.ErrorIs(t, c, context.Canceled)

	assert.Equal(t, `task "x" cancelled`, Cancelled("x", nil).Error())
}

func TestJoinError_ConvertsToTaskJoin(t *testing.T) {
	e := apperr.From(Panicked("w1", "boom", nil))
	assert.Equal(t, kind.TaskJoin, e.Kind())
	assert.Equal(t, apperr.ReasonJoinPanic, e.Reason())
	assert.Equal(t, `A concurrent task failed to execute: task "w1" panicked: boom`, e.Error())
	assert.ErrorIs(t, e, ErrPanicked)

	e = apperr.From(Cancelled("w2", context.Canceled))
	assert.Equal(t, apperr.ReasonJoinCancelled, e.Reason())
}

func TestJoinError_PanicWithTaxonomyValue(t *testing.T) {
	// A panic value is never taken as the task's result.
	e := apperr.From(Panicked("w", apperr.LineParse("x"), nil))
	assert.Equal(t, kind.TaskJoin, e.Kind())
}

func TestGroup_Success(t *testing.T) {
	g, _ := WithContext(context.Background())
	for range 4 {
		g.Go("ok", func(context.Context) error { return nil })
	}
	assert.NoError(t, g.Wait())
}

func TestGroup_Panic(t *testing.T) {
	g, _ := WithContext(context.Background())
	g.Go("explode", func(context.Context) error { panic("boom") })

	e := asAppErr(t, g.Wait())
	assert.Equal(t, kind.TaskJoin, e.Kind())
	assert.Equal(t, apperr.ReasonJoinPanic, e.Reason())

	var je *JoinError
	require.ErrorAs(t, e, &je)
	assert.Equal(t, "explode", je.Task())
	assert.NotEmpty(t, je.Stack())
}

func TestGroup_TaskErrorIsNotTaskJoin(t *testing.T) {
	g, _ := WithContext(context.Background())
	g.Go("parse", func(context.Context) error { return apperr.InvalidRegNum("12x") })

	e := asAppErr(t, g.Wait())
	assert.Equal(t, kind.InvalidRegNum, e.Kind())
}

func TestGroup_ForeignTaskErrorBecomesIO(t *testing.T) {
	g, _ := WithContext(context.Background())
	g.Go("read", func(context.Context) error { return errors.New("short read") })

	e := asAppErr(t, g.Wait())
	assert.Equal(t, kind.IO, e.Kind())
}

func TestGroup_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, _ := WithContext(ctx)

	ran := false
	g.Go("late", func(context.Context) error { ran = true; return nil })

	e := asAppErr(t, g.Wait())
	assert.False(t, ran)
	assert.Equal(t, kind.TaskJoin, e.Kind())
	assert.Equal(t, apperr.ReasonJoinCancelled, e.Reason())
	assert.ErrorIs(t, e, ErrCancelled)
}

func TestGroup_TaskReturningContextErrorIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := WithContext(ctx)
	started := make(chan struct{})
	g.Go("watch", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started
	cancel()

	e := asAppErr(t, g.Wait())
	assert.Equal(t, apperr.ReasonJoinCancelled, e.Reason())
	assert.Error(t, gctx.Err())
}

func TestSpawn_Join(t *testing.T) {
	g, ctx := WithContext(context.Background())
	h := Spawn(g, "count", func(context.Context) (int, error) { return 42, nil })

	v, err := h.Join(ctx).Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, "count", h.Task())
	require.NoError(t, g.Wait())
}

func TestSpawn_Panic(t *testing.T) {
	g, ctx := WithContext(context.Background())
	h := Spawn(g, "boom", func(context.Context) (string, error) { panic(errors.New("nil map")) })

	res := h.Join(ctx)
	require.False(t, res.IsOK())
	assert.Equal(t, kind.TaskJoin, res.Err().Kind())
	assert.Equal(t, apperr.ReasonJoinPanic, res.Err().Reason())
	_ = g.Wait()
}

func TestSpawn_SiblingFailureCancelsPending(t *testing.T) {
	g, ctx := WithContext(context.Background())
	g.SetLimit(1)

	first := Spawn(g, "first", func(context.Context) (int, error) {
		return 0, apperr.MalformedLine(3, 2, "D;1")
	})
	second := Spawn(g, "second", func(context.Context) (int, error) { return 2, nil })

	assert.Equal(t, kind.MalformedLine, first.Join(context.Background()).Err().Kind())

	res := second.Join(context.Background())
	require.False(t, res.IsOK())
	assert.Equal(t, apperr.ReasonJoinCancelled, res.Err().Reason())

	e := asAppErr(t, g.Wait())
	assert.Equal(t, kind.MalformedLine, e.Kind())
	assert.Error(t, ctx.Err())
}

func TestHandle_JoinContextDone(t *testing.T) {
	g, _ := WithContext(context.Background())
	release := make(chan struct{})
	h := Spawn(g, "slow", func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res := h.Join(ctx)
	require.False(t, res.IsOK())
	assert.Equal(t, kind.TaskJoin, res.Err().Kind())
	assert.ErrorIs(t, res.Err(), context.DeadlineExceeded)

	close(release)
	<-h.Done()
	assert.True(t, h.Join(context.Background()).IsOK())
	require.NoError(t, g.Wait())
}

func TestSpawn_Goexit(t *testing.T) {
	g, gctx := WithContext(context.Background())
	h := Spawn(g, "quitter", func(context.Context) (int, error) {
		runtime.Goexit()
		return 1, nil
	})

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("handle not done after runtime.Goexit")
	}

	r := h.Join(context.Background())
	require.False(t, r.IsOK())
	e := r.Err()
	assert.Equal(t, kind.TaskJoin, e.Kind())
	assert.Equal(t, apperr.ReasonJoinCancelled, e.Reason())
	assert.ErrorIs(t, e, ErrCancelled)
	assert.ErrorIs(t, e, errGoexit)

	werr := g.Wait()
	require.Error(t, werr)
	assert.Equal(t, kind.TaskJoin, asAppErr(t, werr).Kind())
	assert.Error(t, gctx.Err())
}

func TestGroup_GoexitCancelsSiblings(t *testing.T) {
	g, _ := WithContext(context.Background())
	g.Go("quitter", func(context.Context) error {
		runtime.Goexit()
		return nil
	})
	g.Go("waiter", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := g.Wait()
	require.Error(t, err)
	e := asAppErr(t, err)
	assert.Equal(t, kind.TaskJoin, e.Kind())
	assert.ErrorIs(t, e, ErrCancelled)
}
