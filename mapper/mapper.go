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
	"strings"
	"sync"

	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/mapper/internal/segmenttrie"
	"dirpx.dev/apperr/reason"
	"google.golang.org/grpc/codes"
)

// Fallback values used when a kind has no rule at all.
const (
	FallbackExit = 1
	FallbackHTTP = 500
	FallbackGRPC = codes.Internal
)

// Resolution sources reported by Explain.
const (
	sourceOverride = "override"
	sourcePrefix   = "prefix"
	sourceDefault  = "default"
	sourceFallback = "fallback"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process:
//
//  1. Seed the builder with library defaults and built-in prefix rules.
//  2. Apply user-provided options.
//  3. Normalize and validate every reason prefix.
//  4. Build per-kind segment tries for each dimension.
//  5. Freeze everything into fresh maps.
//
// An error means an option referenced an unknown kind or an invalid prefix.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	b.seed()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	exit, err := freeze("exit", &b.exit, FallbackExit, func(v int) int { return v }, formatInt)
	if err != nil {
		return nil, err
	}
	httpT, err := freeze("http", &b.http, FallbackHTTP, func(v int) int { return v }, formatInt)
	if err != nil {
		return nil, err
	}
	grpcT, err := freeze("grpc", &b.grpc, FallbackGRPC, func(v int) codes.Code { return codes.Code(v) }, formatCode)
	if err != nil {
		return nil, err
	}
	return &mapper{exit: exit, http: httpT, grpc: grpcT}, nil
}

var defaultMapper = sync.OnceValue(func() apis.Mapper {
	m, err := New()
	if err != nil {
		panic(err)
	}
	return m
})

// Default returns a shared mapper holding only the library defaults.
func Default() apis.Mapper { return defaultMapper() }

// mapper combines three independent tables. Lookups are O(depth) and safe
// for concurrent use once constructed.
type mapper struct {
	exit *table[int]
	http *table[int]
	grpc *table[codes.Code]
}

var _ apis.Mapper = (*mapper)(nil)

// ExitCode resolves a process exit code.
func (m *mapper) ExitCode(k kind.Kind, r reason.Reason) int {
	v, _, _ := m.exit.resolve(k, r)
	return v
}

// HTTPStatus resolves an HTTP status. It is never zero.
func (m *mapper) HTTPStatus(k kind.Kind, r reason.Reason) int {
	v, _, _ := m.http.resolve(k, r)
	return v
}

// GRPCStatus resolves a gRPC code.
func (m *mapper) GRPCStatus(k kind.Kind, r reason.Reason) codes.Code {
	v, _, _ := m.grpc.resolve(k, r)
	return v
}

// Status resolves all three dimensions for one logical error.
func (m *mapper) Status(k kind.Kind, r reason.Reason) apis.Status {
	return apis.Status{
		Exit: m.ExitCode(k, r),
		HTTP: m.HTTPStatus(k, r),
		GRPC: m.GRPCStatus(k, r),
	}
}

// Explain produces a textual trace of how each dimension was resolved.
//
//	kind="io" reason="fs.io.permission.denied"
//	exit: source=prefix pattern="fs.io.permission" -> 77
//	http: source=prefix pattern="fs.io.permission" -> 403
//	grpc: source=prefix pattern="fs.io.permission" -> PERMISSION_DENIED(7)
//
// source is one of override, prefix, default or fallback.
func (m *mapper) Explain(k kind.Kind, r reason.Reason) string {
	lines := []string{
		fmt.Sprintf("kind=%q reason=%q", k, r),
		m.exit.explain(k, r),
		m.http.explain(k, r),
		m.grpc.explain(k, r),
	}
	return strings.Join(lines, "\n")
}

// table is one frozen dimension of the mapper.
type table[T any] struct {
	name      string
	defaults  map[kind.Kind]T
	overrides map[kind.Kind]T
	tries     map[kind.Kind]*segmenttrie.Trie[T]
	fallback  T
	format    func(T) string
}

// resolve applies override, prefix, default and fallback in that order.
// pattern is set only for prefix matches.
func (t *table[T]) resolve(k kind.Kind, r reason.Reason) (v T, source, pattern string) {
	if v, ok := t.overrides[k]; ok {
		return v, sourceOverride, ""
	}
	if idx := t.tries[k]; idx != nil && r != reason.Empty {
		if v, ok, pat := idx.MatchWithPattern(string(r)); ok {
			return v, sourcePrefix, pat
		}
	}
	if v, ok := t.defaults[k]; ok {
		return v, sourceDefault, ""
	}
	return t.fallback, sourceFallback, ""
}

func (t *table[T]) explain(k kind.Kind, r reason.Reason) string {
	v, src, pat := t.resolve(k, r)
	if src == sourcePrefix {
		return fmt.Sprintf("%s: source=%s pattern=%q -> %s", t.name, src, pat, t.format(v))
	}
	return fmt.Sprintf("%s: source=%s -> %s", t.name, src, t.format(v))
}

// freeze validates the draft prefixes, builds tries and copies every map so
// the result shares nothing with the builder.
func freeze[T any](name string, d *draft, fallback T, conv func(int) T, format func(T) string) (*table[T], error) {
	t := &table[T]{
		name:      name,
		defaults:  make(map[kind.Kind]T, len(d.defaults)),
		overrides: make(map[kind.Kind]T, len(d.overrides)),
		tries:     make(map[kind.Kind]*segmenttrie.Trie[T], len(d.prefixes)),
		fallback:  fallback,
		format:    format,
	}
	for k, v := range d.defaults {
		t.defaults[k] = conv(v)
	}
	for k, v := range d.overrides {
		t.overrides[k] = conv(v)
	}
	for k, rules := range d.prefixes {
		if len(rules) == 0 {
			continue
		}
		idx := segmenttrie.New[T]()
		for _, rule := range rules {
			p, err := normalizePrefix(rule.prefix)
			if err != nil {
				return nil, fmt.Errorf("%w: %s prefix %q for kind %q: %w", ErrInvalidRule, name, rule.prefix, k, err)
			}
			if err := idx.Insert(p, conv(rule.val)); err != nil {
				return nil, fmt.Errorf("%w: %s prefix %q for kind %q: %w", ErrInvalidRule, name, p, k, err)
			}
		}
		t.tries[k] = idx
	}
	return t, nil
}

func formatInt(v int) string { return fmt.Sprintf("%d", v) }

func formatCode(c codes.Code) string { return fmt.Sprintf("%s(%d)", CodeName(c), int(c)) }

// normalizePrefix canonicalizes a reason prefix. Wildcard segments are
// allowed; structural checks are left to the trie.
func normalizePrefix(raw string) (string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	if n := strings.Count(p, ".") + 1; n > reason.MaxSegments {
		return "", fmt.Errorf("prefix has %d segments, max %d", n, reason.MaxSegments)
	}
	return p, nil
}
