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
	"net/http"
	"sync"
	"testing"

	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/reason"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func mustReason(t *testing.T, s string) reason.Reason {
	t.Helper()
	r, err := reason.Parse(s)
	require.NoError(t, err)
	return r
}

func TestDefaults(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	tests := []struct {
		k    kind.Kind
		want apis.Status
	}{
		{kind.IO, apis.Status{Exit: 74, HTTP: 500, GRPC: codes.Internal}},
		{kind.InputFileNotFound, apis.Status{Exit: 66, HTTP: 404, GRPC: codes.NotFound}},
		{kind.OutputDirectoryCreate, apis.Status{Exit: 73, HTTP: 500, GRPC: codes.Internal}},
		{kind.LineParse, apis.Status{Exit: 65, HTTP: 422, GRPC: codes.InvalidArgument}},
		{kind.InvalidAnimalType, apis.Status{Exit: 65, HTTP: 422, GRPC: codes.InvalidArgument}},
		{kind.InvalidRegNum, apis.Status{Exit: 65, HTTP: 422, GRPC: codes.InvalidArgument}},
		{kind.MalformedLine, apis.Status{Exit: 65, HTTP: 422, GRPC: codes.InvalidArgument}},
		{kind.TaskJoin, apis.Status{Exit: 70, HTTP: 500, GRPC: codes.Aborted}},
	}
	for _, tt := range tests {
		t.Run(string(tt.k), func(t *testing.T) {
			assert.Equal(t, tt.want, m.Status(tt.k, reason.Empty))
		})
	}
}

func TestDefaults_CoverEveryKind(t *testing.T) {
	for _, k := range kind.All() {
		assert.Contains(t, defaultExit, k)
		assert.Contains(t, defaultHTTP, k)
		assert.Contains(t, defaultGRPC, k)
	}
}

func TestBuiltinPrefixes(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	assert.Equal(t,
		apis.Status{Exit: 77, HTTP: http.StatusForbidden, GRPC: codes.PermissionDenied},
		m.Status(kind.IO, mustReason(t, "fs.io.permission")))
	assert.Equal(t,
		apis.Status{Exit: 74, HTTP: http.StatusInsufficientStorage, GRPC: codes.ResourceExhausted},
		m.Status(kind.IO, mustReason(t, "fs.io.no_space")))
	assert.Equal(t,
		apis.Status{Exit: 130, HTTP: 499, GRPC: codes.Canceled},
		m.Status(kind.TaskJoin, mustReason(t, "task.join.cancelled")))

	// A sibling reason falls through to the kind default.
	assert.Equal(t, 70, m.ExitCode(kind.TaskJoin, mustReason(t, "task.join.panic")))
	// Prefix rules are per kind.
	assert.Equal(t, 65, m.ExitCode(kind.LineParse, mustReason(t, "fs.io.permission")))
}

func TestFallback(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	st := m.Status(kind.Kind("nope"), reason.Empty)
	assert.Equal(t, apis.Status{Exit: FallbackExit, HTTP: FallbackHTTP, GRPC: FallbackGRPC}, st)
}

func TestPriority_OverrideOverPrefixOverDefault(t *testing.T) {
	m, err := New(
		WithExitDefault(kind.IO, 3),
		WithExitPrefix(kind.IO, "fs.io.read_only", 4),
		WithHTTPDefault(kind.IO, 503),
		WithHTTPPrefix(kind.IO, "fs.io.read_only", 409),
		WithHTTPOverride(kind.IO, 418),
		WithGRPCPrefix(kind.IO, "fs.io.read_only", codes.FailedPrecondition),
		WithGRPCOverride(kind.IO, codes.Unavailable),
	)
	require.NoError(t, err)

	r := mustReason(t, "fs.io.read_only")
	assert.Equal(t, 4, m.ExitCode(kind.IO, r))
	assert.Equal(t, 3, m.ExitCode(kind.IO, reason.Empty))
	assert.Equal(t, 418, m.HTTPStatus(kind.IO, r))
	assert.Equal(t, codes.Unavailable, m.GRPCStatus(kind.IO, r))
}

func TestPrefix_LPM_And_SegmentBoundary(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(kind.LineParse, "record.line", 400),
		WithHTTPPrefix(kind.LineParse, "record.line.field_count", 413),
	)
	require.NoError(t, err)

	assert.Equal(t, 413, m.HTTPStatus(kind.LineParse, mustReason(t, "record.line.field_count.extra")))
	assert.Equal(t, 400, m.HTTPStatus(kind.LineParse, mustReason(t, "record.line.parse")))
	// "record.li" must not match "record.line".
	assert.Equal(t, 422, m.HTTPStatus(kind.LineParse, mustReason(t, "record.li")))
}

func TestPrefix_Wildcard(t *testing.T) {
	m, err := New(WithExitPrefix(kind.InvalidRegNum, "record.*.reg_num", 9))
	require.NoError(t, err)

	assert.Equal(t, 9, m.ExitCode(kind.InvalidRegNum, mustReason(t, "record.field.reg_num")))
	assert.Equal(t, 65, m.ExitCode(kind.InvalidRegNum, mustReason(t, "record.field.animal_type")))
}

func TestPrefix_UserRuleReplacesBuiltin(t *testing.T) {
	m, err := New(WithExitPrefix(kind.IO, "FS.IO.Permission", 1))
	require.NoError(t, err)
	assert.Equal(t, 1, m.ExitCode(kind.IO, mustReason(t, "fs.io.permission")))
}

func TestNew_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"unknown kind", WithExitDefault(kind.Kind("bogus"), 1)},
		{"exit out of range", WithExitOverride(kind.IO, 256)},
		{"http out of range", WithHTTPDefault(kind.IO, 99)},
		{"grpc out of range", WithGRPCDefault(kind.IO, 17)},
		{"empty prefix", WithHTTPPrefix(kind.IO, "", 500)},
		{"wildcard only", WithHTTPPrefix(kind.IO, "*.*", 500)},
		{"bad segment", WithHTTPPrefix(kind.IO, "fs..io", 500)},
		{"too deep", WithExitPrefix(kind.IO, "a.b.c.d.e", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.opt)
			require.ErrorIs(t, err, ErrInvalidRule)
			assert.Nil(t, m)
		})
	}
}

func TestMapper_ConcurrentReads(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 1000 {
				_ = m.Status(kind.IO, "fs.io.permission")
				_ = m.Explain(kind.TaskJoin, "task.join.cancelled")
			}
		})
	}
	wg.Wait()
}

func TestCodeName(t *testing.T) {
	assert.Equal(t, "OK", CodeName(codes.OK))
	assert.Equal(t, "INVALID_ARGUMENT", CodeName(codes.InvalidArgument))
	assert.Equal(t, "DEADLINE_EXCEEDED", CodeName(codes.DeadlineExceeded))
	assert.Equal(t, "CANCELED", CodeName(codes.Canceled))
}

func TestParseCode(t *testing.T) {
	for in, want := range map[string]codes.Code{
		"NOT_FOUND":         codes.NotFound,
		"permission_denied": codes.PermissionDenied,
		"14":                codes.Unavailable,
		" 0 ":               codes.OK,
	} {
		got, err := ParseCode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "NotFound", "17", "-1", "bogus"} {
		_, err := ParseCode(in)
		assert.ErrorIs(t, err, ErrInvalidRule, in)
	}
}

func TestDefault_Shared(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, 66, Default().ExitCode(kind.InputFileNotFound, reason.Empty))
}
