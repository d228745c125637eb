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

package kind

// Environment failures
//
// The process could not interact with the filesystem or the platform the way
// it needed to. Callers usually cannot fix these by changing the input.
const (
	// IO wraps an underlying platform I/O failure. The original error is kept
	// as the cause and is never reinterpreted.
	IO Kind = "io"

	// InputFileNotFound indicates that a required input file does not exist.
	// Carries the path that was looked up.
	InputFileNotFound Kind = "input_file_not_found"

	// OutputDirectoryCreate indicates that the output directory could not be
	// created. Carries the directory path.
	OutputDirectoryCreate Kind = "output_directory_create"
)

// Input failures
//
// A line of input failed structural or field-level validation. These carry
// the offending text so a message can be produced without re-reading the
// input.
const (
	// LineParse indicates that a line failed structural parsing.
	LineParse Kind = "line_parse"

	// InvalidAnimalType indicates that the single-character animal type field
	// held a value outside {D, C, B, H, R}.
	InvalidAnimalType Kind = "invalid_animal_type"

	// InvalidRegNum indicates that a registration number did not parse as an
	// unsigned 64-bit integer.
	InvalidRegNum Kind = "invalid_reg_num"

	// MalformedLine indicates a wrong field count. Carries the expected and
	// actual counts and the raw line.
	MalformedLine Kind = "malformed_line"
)

// Concurrency failures
const (
	// TaskJoin indicates that a concurrently executed unit of work panicked or
	// was cancelled before yielding its result.
	TaskJoin Kind = "task_join"
)

// Category groups kinds into failure families.
type Category string

const (
	CategoryUnknown     Category = ""
	CategoryEnvironment Category = "environment"
	CategoryInput       Category = "input"
	CategoryConcurrency Category = "concurrency"
)

// String returns the category name.
func (c Category) String() string { return string(c) }

type descriptor struct {
	category Category
}

// order is the declaration order returned by All.
var order = []Kind{
	IO,
	InputFileNotFound,
	OutputDirectoryCreate,
	LineParse,
	InvalidAnimalType,
	InvalidRegNum,
	MalformedLine,
	TaskJoin,
}

var catalogue = map[Kind]descriptor{
	IO:                    {CategoryEnvironment},
	InputFileNotFound:     {CategoryEnvironment},
	OutputDirectoryCreate: {CategoryEnvironment},
	LineParse:             {CategoryInput},
	InvalidAnimalType:     {CategoryInput},
	InvalidRegNum:         {CategoryInput},
	MalformedLine:         {CategoryInput},
	TaskJoin:              {CategoryConcurrency},
}

// All returns every kind of the closed set in declaration order.
// The returned slice is a fresh copy.
func All() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}
