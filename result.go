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

package apperr

// Result holds either a value of type T or exactly one *Error.
//
// Go code usually returns (T, error); Result is for places where an outcome
// has to be stored or sent as a single value, e.g. the result of a joined
// task collected in a slice.
type Result[T any] struct {
	val T
	err *Error
}

// OK returns a successful Result holding v.
func OK[T any](v T) Result[T] {
	return Result[T]{val: v}
}

// Fail returns a failed Result holding err. A nil err yields a successful
// Result with the zero value: a Result never holds a nil failure.
func Fail[T any](err *Error) Result[T] {
	return Result[T]{err: err}
}

// ResultOf builds a Result from a conventional (value, error) pair. A
// non-nil err is brought into the taxonomy with From and the value is
// dropped.
func ResultOf[T any](v T, err error) Result[T] {
	if e := From(err); e != nil {
		return Fail[T](e)
	}
	return OK(v)
}

// IsOK reports whether the Result holds a value.
func (r Result[T]) IsOK() bool { return r.err == nil }

// Value returns the held value, or the zero value of T on failure.
func (r Result[T]) Value() T { return r.val }

// Err returns the held error or nil.
func (r Result[T]) Err() *Error { return r.err }

// Get returns the Result as a conventional (value, error) pair. The error is
// a nil interface on success, never a typed nil.
func (r Result[T]) Get() (T, error) {
	if r.err == nil {
		return r.val, nil
	}
	var zero T
	return zero, r.err
}
