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

package adapter

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/reason"
)

// Metadata keys.
const (
	KeyKind     = "kind"
	KeyReason   = "reason"
	KeyPath     = "path"
	KeyText     = "text"
	KeyLine     = "line"
	KeyChar     = "char"
	KeyExpected = "expected"
	KeyGot      = "got"
	KeyCause    = "cause"
)

// EncodedSuffix marks a key whose value is base64 (standard encoding). Values
// that are not valid UTF-8 are stored this way, since protobuf strings must
// be valid UTF-8.
const EncodedSuffix = "_b64"

// ErrInvalidMetadata is returned by FromMetadata when the map does not
// describe a valid error.
var ErrInvalidMetadata = errors.New("apperr: invalid error metadata")

// Metadata flattens e into string pairs. Causes are reduced to their
// message; everything else is kept verbatim, with invalid UTF-8 moved to
// the key plus EncodedSuffix. A nil error yields nil.
func Metadata(e *apperr.Error) map[string]string {
	if e == nil {
		return nil
	}
	v := metaVisitor{md: map[string]string{KeyKind: e.ErrorKind()}}
	if r := e.ErrorReason(); r != "" {
		v.md[KeyReason] = r
	}
	e.Accept(&v)
	return v.md
}

type metaVisitor struct {
	md map[string]string
}

var _ apperr.Visitor = (*metaVisitor)(nil)

func (v *metaVisitor) put(key, val string) {
	if utf8.ValidString(val) {
		v.md[key] = val
		return
	}
	v.md[key+EncodedSuffix] = base64.StdEncoding.EncodeToString([]byte(val))
}

func (v *metaVisitor) cause(err error) {
	if err != nil {
		v.put(KeyCause, err.Error())
	}
}

func (v *metaVisitor) VisitIO(cause error)                    { v.cause(cause) }
func (v *metaVisitor) VisitInputFileNotFound(path string)     { v.put(KeyPath, path) }
func (v *metaVisitor) VisitOutputDirectoryCreate(path string) { v.put(KeyPath, path) }
func (v *metaVisitor) VisitLineParse(text string)             { v.put(KeyLine, text) }
func (v *metaVisitor) VisitInvalidAnimalType(c rune)          { v.put(KeyChar, string(c)) }
func (v *metaVisitor) VisitInvalidRegNum(text string)         { v.put(KeyText, text) }
func (v *metaVisitor) VisitTaskJoin(cause error)              { v.cause(cause) }

func (v *metaVisitor) VisitMalformedLine(expected, got int, line string) {
	v.md[KeyExpected] = strconv.Itoa(expected)
	v.md[KeyGot] = strconv.Itoa(got)
	v.put(KeyLine, line)
}

// FromMetadata rebuilds an error from Metadata output. The result renders
// the same message and carries the same kind and reason. Causes come back as
// plain errors holding the original message.
func FromMetadata(md map[string]string) (*apperr.Error, error) {
	md, err := decodeValues(md)
	if err != nil {
		return nil, err
	}
	k, err := kind.Parse(md[KeyKind])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	r, err := reason.Parse(md[KeyReason])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	opt := apperr.WithReasonOption(r)

	switch k {
	case kind.IO:
		return apperr.IO(causeOf(md), opt), nil
	case kind.InputFileNotFound:
		return apperr.InputFileNotFound(md[KeyPath], opt), nil
	case kind.OutputDirectoryCreate:
		return apperr.OutputDirectoryCreate(md[KeyPath], opt), nil
	case kind.LineParse:
		return apperr.LineParse(md[KeyLine], opt), nil
	case kind.InvalidAnimalType:
		s := md[KeyChar]
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("%w: %s must hold exactly one character, got %q", ErrInvalidMetadata, KeyChar, s)
		}
		c, _ := utf8.DecodeRuneInString(s)
		return apperr.InvalidAnimalType(c, opt), nil
	case kind.InvalidRegNum:
		return apperr.InvalidRegNum(md[KeyText], opt), nil
	case kind.MalformedLine:
		expected, err := strconv.Atoi(md[KeyExpected])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMetadata, KeyExpected, err)
		}
		got, err := strconv.Atoi(md[KeyGot])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMetadata, KeyGot, err)
		}
		return apperr.MalformedLine(expected, got, md[KeyLine], opt), nil
	case kind.TaskJoin:
		return apperr.TaskJoin(causeOf(md), opt), nil
	default:
		return nil, fmt.Errorf("%w: unhandled kind %q", ErrInvalidMetadata, k)
	}
}

// decodeValues resolves EncodedSuffix keys to their plain names. An encoded
// value wins over a plain one for the same key.
func decodeValues(md map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(md))
	for k, v := range md {
		name, encoded := strings.CutSuffix(k, EncodedSuffix)
		if !encoded {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
			continue
		}
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMetadata, k, err)
		}
		out[name] = string(b)
	}
	return out, nil
}

// causeOf returns nil when the cause key is absent so that a nil cause
// renders identically after the round trip.
func causeOf(md map[string]string) error {
	msg, ok := md[KeyCause]
	if !ok {
		return nil
	}
	return errors.New(msg)
}
