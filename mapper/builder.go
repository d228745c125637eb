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
	"errors"
	"fmt"

	"dirpx.dev/apperr/kind"
	"google.golang.org/grpc/codes"
)

// ErrInvalidRule is returned by New and Config.Options for rules that name
// an unknown kind, carry an invalid prefix or an out-of-range value.
var ErrInvalidRule = errors.New("apperr: invalid mapping rule")

// prefixRule is a (prefix, value) pair before it is inserted into a trie.
type prefixRule struct {
	prefix string
	val    int
}

// draft holds one dimension while options are applied. Values are kept as
// int for every dimension and converted when freezing.
type draft struct {
	defaults  map[kind.Kind]int
	overrides map[kind.Kind]int
	prefixes  map[kind.Kind][]prefixRule
}

func newDraft() draft {
	return draft{
		defaults:  make(map[kind.Kind]int),
		overrides: make(map[kind.Kind]int),
		prefixes:  make(map[kind.Kind][]prefixRule),
	}
}

// builder is the mutable state options write to. It never escapes New.
type builder struct {
	exit draft
	http draft
	grpc draft
	errs []error
}

func newBuilder() *builder {
	return &builder{exit: newDraft(), http: newDraft(), grpc: newDraft()}
}

// seed loads library defaults and built-in prefix rules. Options applied
// afterwards replace them.
func (b *builder) seed() {
	for k, v := range defaultExit {
		b.exit.defaults[k] = v
	}
	for k, v := range defaultHTTP {
		b.http.defaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpc.defaults[k] = int(v)
	}
	for _, p := range defaultPrefixes {
		b.exit.prefixes[p.kind] = append(b.exit.prefixes[p.kind], prefixRule{p.prefix, p.exit})
		b.http.prefixes[p.kind] = append(b.http.prefixes[p.kind], prefixRule{p.prefix, p.http})
		b.grpc.prefixes[p.kind] = append(b.grpc.prefixes[p.kind], prefixRule{p.prefix, int(p.grpc)})
	}
}

// check records an error for unknown kinds and reports whether k is usable.
func (b *builder) check(k kind.Kind) bool {
	if err := kind.Validate(k); err != nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %w", ErrInvalidRule, err))
		return false
	}
	return true
}

func (b *builder) checkRange(dim string, v, lo, hi int) bool {
	if v < lo || v > hi {
		b.errs = append(b.errs, fmt.Errorf("%w: %s value %d out of range [%d, %d]", ErrInvalidRule, dim, v, lo, hi))
		return false
	}
	return true
}

func (b *builder) checkExit(v int) bool { return b.checkRange("exit", v, 0, 255) }

func (b *builder) checkHTTP(v int) bool { return b.checkRange("http", v, 100, 599) }

func (b *builder) checkGRPC(c codes.Code) bool {
	return b.checkRange("grpc", int(c), int(codes.OK), int(codes.Unauthenticated))
}
