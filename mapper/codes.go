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

package mapper

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"google.golang.org/grpc/codes"
)

// CodeName returns the canonical upper-snake name of c, for example
// INVALID_ARGUMENT. Unknown codes render as CODE(n).
func CodeName(c codes.Code) string {
	s := c.String()
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(rune(s[i-1])) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ParseCode accepts a gRPC code by canonical name ("NOT_FOUND",
// case-insensitive) or by number ("5").
func ParseCode(s string) (codes.Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty grpc code", ErrInvalidRule)
	}
	in := s
	if _, err := strconv.Atoi(s); err != nil {
		in = strconv.Quote(strings.ToUpper(s))
	}
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(in)); err != nil {
		return 0, fmt.Errorf("%w: grpc code %q: %w", ErrInvalidRule, s, err)
	}
	return c, nil
}
