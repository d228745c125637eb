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

// Package apperr is the centralized error taxonomy of the record processing
// application.
//
// Every failure the application can meet is one of a closed set of kinds
// (see package kind): environment failures (I/O, missing input files,
// output directory creation), input failures (line parsing, field counts,
// field values) and concurrency failures (a task that could not be joined).
//
// An *Error is created where the failure is detected, propagated unchanged
// through every call boundary and rendered by a top-level handler with one
// fixed message template per kind:
//
//	err := apperr.MalformedLine(5, 3, "a,b,c")
//	err.Error() // "Malformed line: expected 5 fields, got 3 on line: a,b,c"
//
// Only foreign platform failures convert implicitly: FromIO for I/O errors
// and FromJoin for join failures. All other kinds are built explicitly by
// the detecting code.
package apperr

import (
	"fmt"
	"maps"

	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/reason"
)

// Error is a discriminated record: a kind tag plus the payload that kind
// carries.
//
// Payload per kind:
//   - IO, TaskJoin: cause;
//   - InputFileNotFound, OutputDirectoryCreate: path;
//   - LineParse, InvalidRegNum: text;
//   - InvalidAnimalType: char;
//   - MalformedLine: expected, got and line (stored in text).
//
// Reason and Details annotate the value for mapping and logging and never
// change the rendered message. All fields are unexported and every WithX
// method returns a shallow copy, so an Error is immutable once built and can
// be shared between goroutines.
type Error struct {
	kind   kind.Kind
	reason reason.Reason

	path     string
	text     string
	char     rune
	expected int
	got      int
	cause    error

	details map[string]any
}

var (
	_ error              = (*Error)(nil)
	_ apis.KindedError   = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
	_ apis.CausedError   = (*Error)(nil)
)

// Error renders the fixed template of e's kind with its payload substituted
// verbatim.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.kind {
	case kind.IO:
		return "File I/O Error: " + causeMessage(e.cause)
	case kind.InputFileNotFound:
		return "Input file not found: " + e.path
	case kind.OutputDirectoryCreate:
		return "Failed to create output directory: " + e.path
	case kind.LineParse:
		return "Parsing error on line: " + e.text
	case kind.InvalidAnimalType:
		return fmt.Sprintf("Invalid animal type character: '%c'. Must be D, C, B, H, or R.", e.char)
	case kind.InvalidRegNum:
		return fmt.Sprintf("Invalid registration number: '%s' is not a valid u64.", e.text)
	case kind.MalformedLine:
		return fmt.Sprintf("Malformed line: expected %d fields, got %d on line: %s", e.expected, e.got, e.text)
	case kind.TaskJoin:
		return "A concurrent task failed to execute: " + causeMessage(e.cause)
	default:
		return fmt.Sprintf("unknown error kind %q", string(e.kind))
	}
}

func causeMessage(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// Unwrap returns the wrapped foreign failure of IO and TaskJoin errors,
// enabling errors.Is / errors.As on the original error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Kind returns the kind tag.
func (e *Error) Kind() kind.Kind {
	if e == nil {
		return kind.Empty
	}
	return e.kind
}

// Reason returns the refinement of the kind. It is never empty for values
// built by this package's constructors.
func (e *Error) Reason() reason.Reason {
	if e == nil {
		return reason.Empty
	}
	return e.reason
}

// Path returns the path of InputFileNotFound and OutputDirectoryCreate.
func (e *Error) Path() string {
	if e == nil {
		return ""
	}
	return e.path
}

// Text returns the offending text of LineParse and InvalidRegNum, and the raw
// line of MalformedLine.
func (e *Error) Text() string {
	if e == nil {
		return ""
	}
	return e.text
}

// Line returns the raw line of MalformedLine. It is an alias of Text.
func (e *Error) Line() string {
	if e == nil {
		return ""
	}
	return e.text
}

// Char returns the rejected animal type character of InvalidAnimalType.
func (e *Error) Char() rune {
	if e == nil {
		return 0
	}
	return e.char
}

// Expected returns the expected field count of MalformedLine.
func (e *Error) Expected() int {
	if e == nil {
		return 0
	}
	return e.expected
}

// Got returns the actual field count of MalformedLine.
func (e *Error) Got() int {
	if e == nil {
		return 0
	}
	return e.got
}

// Cause returns the wrapped foreign failure of IO and TaskJoin.
func (e *Error) Cause() error { return e.Unwrap() }

// Details returns a copy of the annotations attached with WithDetail.
func (e *Error) Details() map[string]any {
	if e == nil || len(e.details) == 0 {
		return nil
	}
	return maps.Clone(e.details)
}

// ErrorKind implements apis.KindedError.
func (e *Error) ErrorKind() string { return string(e.Kind()) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string { return string(e.Reason()) }

// WithReason returns a copy of e with the given reason. A nil e stays nil.
func (e *Error) WithReason(r reason.Reason) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.reason = r
	return &cp
}

// WithDetail returns a copy of e with one extra annotation, e.g. the source
// file or the line number where a record failed. The map is always copied.
// A nil e stays nil.
func (e *Error) WithDetail(k string, v any) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	m := make(map[string]any, len(cp.details)+1)
	maps.Copy(m, cp.details)
	m[k] = v
	cp.details = m
	return &cp
}

// WithDetails returns a copy of e with kv merged into its annotations; kv
// wins on key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if e == nil || len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.details)+len(kv))
	maps.Copy(m, cp.details)
	maps.Copy(m, kv)
	cp.details = m
	return &cp
}
