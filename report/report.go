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

// Package report is the top-level failure handler of a process: it prints
// the rendered message, logs a structured record, counts failures per kind
// and resolves the exit code.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/mapper"
)

// Reporter is safe for concurrent use.
type Reporter struct {
	out    io.Writer
	logger *slog.Logger
	mapper apis.Mapper
	tally  *Tally
}

// New creates a Reporter. out receives one rendered line per failure; nil
// means io.Discard. A nil logger discards records and a nil mapper means
// mapper.Default().
func New(out io.Writer, logger *slog.Logger, m apis.Mapper) *Reporter {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if m == nil {
		m = mapper.Default()
	}
	return &Reporter{out: out, logger: logger, mapper: m, tally: NewTally()}
}

// Report handles err and returns the process exit code, 0 for nil. Errors
// outside the taxonomy are converted with apperr.From.
func (r *Reporter) Report(ctx context.Context, err error) int {
	e := apperr.From(err)
	if e == nil {
		return 0
	}
	code := r.mapper.ExitCode(e.Kind(), e.Reason())
	r.tally.Inc(e.Kind())

	_, _ = fmt.Fprintln(r.out, e.Error())
	r.logger.LogAttrs(ctx, slog.LevelError, "operation failed",
		slog.Any("error", e),
		slog.String("category", e.Kind().Category().String()),
		slog.Int("exit_code", code),
	)
	return code
}

// ReportResult reports the failure held by res, if any.
func ReportResult[T any](ctx context.Context, r *Reporter, res apperr.Result[T]) int {
	if res.IsOK() {
		return 0
	}
	return r.Report(ctx, res.Err())
}

// Tally returns the reporter's per-kind counters.
func (r *Reporter) Tally() *Tally { return r.tally }

// Summary logs one record with the per-kind counts, in kind declaration
// order, and returns the total.
func (r *Reporter) Summary(ctx context.Context) int64 {
	snap := r.tally.Snapshot()
	attrs := make([]slog.Attr, 0, len(snap)+1)
	var total int64
	for _, k := range orderedKinds(snap) {
		attrs = append(attrs, slog.Int64(string(k), snap[k]))
		total += snap[k]
	}
	attrs = append(attrs, slog.Int64("total", total))
	r.logger.LogAttrs(ctx, slog.LevelInfo, "failure summary", attrs...)
	return total
}

// orderedKinds lists the keys of snap: catalogue kinds first in declaration
// order, then unknown kinds sorted.
func orderedKinds(snap map[kind.Kind]int64) []kind.Kind {
	out := make([]kind.Kind, 0, len(snap))
	seen := make(map[kind.Kind]bool, len(snap))
	for _, k := range kind.All() {
		if _, ok := snap[k]; ok {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []kind.Kind
	for k := range maps.Keys(snap) {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}
