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

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Kind is the canonical, validated representation of a failure kind.
//
// It is a separate type (not just string) so that switches over kinds can be
// checked for exhaustiveness and raw user input cannot be mixed with
// normalized values by accident.
type Kind string

// MinLength and MaxLength bound the length of a kind identifier.
const (
	MinLength = 2
	MaxLength = 32
)

// kindFmt is the format every kind identifier follows. Membership in the
// closed set is checked separately.
//
// IMPORTANT: the quantifier {1,31} is tied to MinLength / MaxLength.
const kindFmt = `^[a-z][a-z0-9_]{1,31}$`

var kindRe = regexp.MustCompile(kindFmt)

var (
	// ErrKindInvalid is returned when a value is not shaped like a kind.
	ErrKindInvalid = errors.New("apperr: invalid kind")
	// ErrKindUnknown is returned when a well-formed value names no known kind.
	ErrKindUnknown = errors.New("apperr: unknown kind")
)

var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Empty is the zero-value kind. It never validates.
var Empty Kind = ""

// Parse normalizes s and returns the matching kind of the closed set.
func Parse(s string) (Kind, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Kind(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize trims surrounding spaces, lowercases s and replaces '-' with '_'.
// It does NOT guarantee that the result is a known kind.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Validate reports whether k is a member of the closed set.
func Validate(k Kind) error {
	return validate(string(k))
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Category returns the failure family of k, or CategoryUnknown when k is not
// a member of the closed set.
func (k Kind) Category() Category {
	if d, ok := catalogue[k]; ok {
		return d.category
	}
	return CategoryUnknown
}

// MarshalText implements encoding.TextMarshaler. Unknown kinds fail.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func validate(s string) error {
	if !kindRe.MatchString(s) {
		return ErrKindInvalid
	}
	if _, ok := catalogue[Kind(s)]; !ok {
		return ErrKindUnknown
	}
	return nil
}
