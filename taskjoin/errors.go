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
	"errors"
	"fmt"

	"dirpx.dev/apperr/apis"
)

var (
	// ErrPanicked matches a JoinError produced by a panicking task.
	ErrPanicked = errors.New("apperr: task panicked")
	// ErrCancelled matches a JoinError produced by a cancelled task.
	ErrCancelled = errors.New("apperr: task cancelled")
)

// JoinError reports a task that did not yield its result.
type JoinError struct {
	task     string
	panicked bool
	value    any
	stack    []byte
	cause    error
}

var _ apis.JoinFailure = (*JoinError)(nil)

// Panicked builds the JoinError of a task that panicked with value.
func Panicked(task string, value any, stack []byte) *JoinError {
	return &JoinError{task: task, panicked: true, value: value, stack: stack}
}

// Cancelled builds the JoinError of a task stopped by cause, usually a
// context error.
func Cancelled(task string, cause error) *JoinError {
	return &JoinError{task: task, cause: cause}
}

func (e *JoinError) Error() string {
	name := "task"
	if e.task != "" {
		name = fmt.Sprintf("task %q", e.task)
	}
	if e.panicked {
		return fmt.Sprintf("%s panicked: %v", name, e.value)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s cancelled: %v", name, e.cause)
	}
	return name + " cancelled"
}

// Task returns the task name given to Group.Go or Spawn.
func (e *JoinError) Task() string { return e.task }

// Panicked implements apis.JoinFailure.
func (e *JoinError) Panicked() bool { return e.panicked }

// Cancelled implements apis.JoinFailure.
func (e *JoinError) Cancelled() bool { return !e.panicked }

// PanicValue returns the recovered value, nil for cancellations.
func (e *JoinError) PanicValue() any { return e.value }

// Stack returns the goroutine stack captured at the panic.
func (e *JoinError) Stack() []byte { return e.stack }

// Unwrap returns the cancellation cause. Panic values are not unwrapped so
// that an error passed to panic is never mistaken for the task's result.
func (e *JoinError) Unwrap() error { return e.cause }

// Is matches ErrPanicked and ErrCancelled.
func (e *JoinError) Is(target error) bool {
	switch target {
	case ErrPanicked:
		return e.panicked
	case ErrCancelled:
		return !e.panicked
	}
	return false
}
