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

import (
	"context"
	"errors"

	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/reason"
)

// IO wraps an underlying I/O failure. The cause is kept as-is; its message is
// rendered verbatim after "File I/O Error: ".
func IO(cause error, opts ...Option) *Error {
	return apply(&Error{kind: kind.IO, reason: ioReason(cause), cause: cause}, opts)
}

// InputFileNotFound reports that a required input file does not exist.
func InputFileNotFound(path string, opts ...Option) *Error {
	return apply(&Error{kind: kind.InputFileNotFound, reason: ReasonInputNotFound, path: path}, opts)
}

// OutputDirectoryCreate reports that the output directory could not be
// created.
func OutputDirectoryCreate(path string, opts ...Option) *Error {
	return apply(&Error{kind: kind.OutputDirectoryCreate, reason: ReasonOutputMkdir, path: path}, opts)
}

// LineParse reports that a line failed structural parsing.
func LineParse(text string, opts ...Option) *Error {
	return apply(&Error{kind: kind.LineParse, reason: ReasonLineParse, text: text}, opts)
}

// InvalidAnimalType reports an animal type character outside {D, C, B, H, R}.
func InvalidAnimalType(c rune, opts ...Option) *Error {
	return apply(&Error{kind: kind.InvalidAnimalType, reason: ReasonAnimalType, char: c}, opts)
}

// InvalidRegNum reports a registration number that is not a valid u64.
func InvalidRegNum(text string, opts ...Option) *Error {
	return apply(&Error{kind: kind.InvalidRegNum, reason: ReasonRegNum, text: text}, opts)
}

// MalformedLine reports a line with the wrong number of fields.
func MalformedLine(expected, got int, line string, opts ...Option) *Error {
	return apply(&Error{kind: kind.MalformedLine, reason: ReasonFieldCount, expected: expected, got: got, text: line}, opts)
}

// TaskJoin reports a concurrently executed unit of work that failed or was
// cancelled before yielding its result.
func TaskJoin(cause error, opts ...Option) *Error {
	return apply(&Error{kind: kind.TaskJoin, reason: joinReason(cause), cause: cause}, opts)
}

// FromIO converts a platform I/O failure into an IO error. The conversion is
// lossless: the original error stays reachable through errors.Is / errors.As
// and its message is rendered verbatim. A nil error converts to nil.
func FromIO(err error) *Error {
	if err == nil {
		return nil
	}
	return IO(err)
}

// FromJoin converts a join failure into a TaskJoin error. The reason tells
// panics and cancellations apart when err implements apis.JoinFailure or is a
// context cancellation. A nil error converts to nil.
func FromJoin(err error) *Error {
	if err == nil {
		return nil
	}
	return TaskJoin(err)
}

// From brings any error into the taxonomy:
//
//   - nil stays nil;
//   - an *Error anywhere in the chain is returned unchanged, and a typed
//     nil *Error in the chain is no failure either, so it yields nil;
//   - a join failure (apis.JoinFailure) converts through FromJoin;
//   - anything else is a platform failure and converts through FromIO.
//
// No other kind is ever produced implicitly.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var jf apis.JoinFailure
	if errors.As(err, &jf) {
		return FromJoin(err)
	}
	return FromIO(err)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (kind.Kind, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.kind, true
	}
	return kind.Empty, false
}

// IsKind reports whether err's chain holds an *Error of kind k.
func IsKind(err error, k kind.Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

func joinReason(cause error) reason.Reason {
	var jf apis.JoinFailure
	switch {
	case errors.As(cause, &jf) && jf.Panicked():
		return ReasonJoinPanic
	case errors.As(cause, &jf) && jf.Cancelled():
		return ReasonJoinCancelled
	case errors.Is(cause, context.Canceled):
		return ReasonJoinCancelled
	default:
		return ReasonJoinFailed
	}
}
