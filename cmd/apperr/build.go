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

package main

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/kind"
)

// kindArgs names the positional payload arguments of each kind.
var kindArgs = map[kind.Kind][]string{
	kind.IO:                    {"message"},
	kind.InputFileNotFound:     {"path"},
	kind.OutputDirectoryCreate: {"path"},
	kind.LineParse:             {"line"},
	kind.InvalidAnimalType:     {"char"},
	kind.InvalidRegNum:         {"text"},
	kind.MalformedLine:         {"expected", "got", "line"},
	kind.TaskJoin:              {"message"},
}

func parseKind(s string) (kind.Kind, error) {
	k, err := kind.Parse(s)
	if err != nil {
		return kind.Empty, usageError("%q: %v (known: %s)", s, err, knownKinds())
	}
	return k, nil
}

func knownKinds() string {
	all := kind.All()
	names := make([]string, len(all))
	for i, k := range all {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

func argsUsage(k kind.Kind) string {
	names := kindArgs[k]
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "<" + n + ">"
	}
	return strings.Join(parts, " ")
}

// build constructs an error of kind k from its positional payload.
func build(k kind.Kind, args []string) (*apperr.Error, error) {
	if len(args) != len(kindArgs[k]) {
		return nil, usageError("%s takes %s", k, argsUsage(k))
	}
	switch k {
	case kind.IO:
		return apperr.IO(errors.New(args[0])), nil
	case kind.InputFileNotFound:
		return apperr.InputFileNotFound(args[0]), nil
	case kind.OutputDirectoryCreate:
		return apperr.OutputDirectoryCreate(args[0]), nil
	case kind.LineParse:
		return apperr.LineParse(args[0]), nil
	case kind.InvalidAnimalType:
		if utf8.RuneCountInString(args[0]) != 1 {
			return nil, usageError("char must be a single character, got %q", args[0])
		}
		c, _ := utf8.DecodeRuneInString(args[0])
		return apperr.InvalidAnimalType(c), nil
	case kind.InvalidRegNum:
		return apperr.InvalidRegNum(args[0]), nil
	case kind.MalformedLine:
		expected, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, usageError("expected: %v", err)
		}
		got, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, usageError("got: %v", err)
		}
		return apperr.MalformedLine(expected, got, args[2]), nil
	case kind.TaskJoin:
		return apperr.TaskJoin(errors.New(args[0])), nil
	default:
		return nil, usageError("unhandled kind %q", k)
	}
}

// sample builds an error of kind k with placeholder payload, used to read
// the kind's default reason.
func sample(k kind.Kind) *apperr.Error {
	args := make([]string, len(kindArgs[k]))
	for i, n := range kindArgs[k] {
		switch n {
		case "expected", "got":
			args[i] = "0"
		case "char":
			args[i] = "?"
		}
	}
	e, _ := build(k, args)
	return e
}
