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

package apis

// KindedError is an error classified into one kind of the closed taxonomy.
type KindedError interface {
	error

	// ErrorKind returns the canonical kind identifier, e.g. "malformed_line".
	ErrorKind() string
}

// ReasonedError refines its kind with a dot-separated reason.
type ReasonedError interface {
	error

	// ErrorReason returns the reason. It MAY be empty.
	ErrorReason() string
}

// CausedError exposes the foreign failure it wraps, if any.
type CausedError interface {
	error

	// Cause returns the direct underlying error or nil.
	Cause() error
}

// JoinFailure is implemented by errors that describe a concurrently executed
// unit of work that could not be joined: it panicked or was cancelled before
// yielding a result.
//
// Conversion into the TaskJoin kind detects this interface with errors.As,
// so the join machinery and the taxonomy do not import each other.
type JoinFailure interface {
	error

	// Panicked reports whether the task panicked.
	Panicked() bool

	// Cancelled reports whether the task was cancelled before it finished.
	Cancelled() bool
}
