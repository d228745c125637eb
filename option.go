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

import "dirpx.dev/apperr/reason"

// Option is a functional option applied by the constructors after the
// payload is set. It always returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithReasonOption replaces the default reason of the kind.
func WithReasonOption(r reason.Reason) Option {
	return func(e *Error) *Error {
		return e.WithReason(r)
	}
}

// WithDetailOption adds a single annotation on construction.
func WithDetailOption(k string, v any) Option {
	return func(e *Error) *Error {
		return e.WithDetail(k, v)
	}
}

// WithDetailsOption merges several annotations on construction.
func WithDetailsOption(kv map[string]any) Option {
	return func(e *Error) *Error {
		return e.WithDetails(kv)
	}
}

func apply(e *Error, opts []Option) *Error {
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}
