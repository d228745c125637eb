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

import "dirpx.dev/apperr/kind"

// Visitor handles every kind of the taxonomy. A type implementing Visitor
// must provide one method per kind, so adding a kind breaks every visitor at
// compile time until it is handled.
type Visitor interface {
	VisitIO(cause error)
	VisitInputFileNotFound(path string)
	VisitOutputDirectoryCreate(path string)
	VisitLineParse(text string)
	VisitInvalidAnimalType(c rune)
	VisitInvalidRegNum(text string)
	VisitMalformedLine(expected, got int, line string)
	VisitTaskJoin(cause error)
}

// Accept dispatches e's payload to the method of v matching e's kind.
// It reports false when e is nil or carries a kind outside the closed set.
func (e *Error) Accept(v Visitor) bool {
	if e == nil {
		return false
	}
	switch e.kind {
	case kind.IO:
		v.VisitIO(e.cause)
	case kind.InputFileNotFound:
		v.VisitInputFileNotFound(e.path)
	case kind.OutputDirectoryCreate:
		v.VisitOutputDirectoryCreate(e.path)
	case kind.LineParse:
		v.VisitLineParse(e.text)
	case kind.InvalidAnimalType:
		v.VisitInvalidAnimalType(e.char)
	case kind.InvalidRegNum:
		v.VisitInvalidRegNum(e.text)
	case kind.MalformedLine:
		v.VisitMalformedLine(e.expected, e.got, e.text)
	case kind.TaskJoin:
		v.VisitTaskJoin(e.cause)
	default:
		return false
	}
	return true
}
