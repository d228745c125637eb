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
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/apperr/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	out  string
	errs string
	code int
	err  error
}

func run(t *testing.T, o *options, args ...string) result {
	t.Helper()
	if o == nil {
		o = &options{}
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd(o)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	res := result{out: out.String(), errs: errOut.String(), err: err}
	var cErr *codedError
	switch {
	case err == nil:
	case errors.As(err, &cErr):
		res.code = cErr.code
	default:
		res.code = exitError
	}
	return res
}

func TestKinds_TSV(t *testing.T) {
	res := run(t, nil, "kinds")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	require.Len(t, lines, len(kind.All()))
	assert.Equal(t, "io\tenvironment\tfs.io\t74\t500\tINTERNAL\t<message>", lines[0])
	assert.Equal(t, "malformed_line\tinput\trecord.line.field_count\t65\t422\tINVALID_ARGUMENT\t<expected> <got> <line>", lines[6])
	assert.Equal(t, "task_join\tconcurrency\ttask.join.failed\t70\t500\tABORTED\t<message>", lines[7])
}

func TestKinds_Table(t *testing.T) {
	o := &options{isTerminal: func(io.Writer) bool { return true }}
	res := run(t, o, "kinds")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.out, "KIND "), res.out)
	assert.Contains(t, res.out, "input_file_not_found")
	assert.NotContains(t, res.out, "\t")
}

func TestKinds_JSON(t *testing.T) {
	res := run(t, nil, "kinds", "--json")
	require.NoError(t, res.err)

	var rows []kindRow
	require.NoError(t, json.Unmarshal([]byte(res.out), &rows))
	require.Len(t, rows, len(kind.All()))
	assert.Equal(t, kindRow{
		Kind:     "input_file_not_found",
		Category: "environment",
		Reason:   "fs.input.not_found",
		Args:     "<path>",
		Exit:     66,
		HTTP:     404,
		GRPC:     "NOT_FOUND",
	}, rows[1])
}

func TestExplain(t *testing.T) {
	res := run(t, nil, "explain", "io", "fs.io.permission")
	require.NoError(t, res.err)
	assert.Equal(t, `kind="io" reason="fs.io.permission"
exit: source=prefix pattern="fs.io.permission" -> 77
http: source=prefix pattern="fs.io.permission" -> 403
grpc: source=prefix pattern="fs.io.permission" -> PERMISSION_DENIED(7)
`, res.out)
}

func TestExplain_JSON(t *testing.T) {
	res := run(t, nil, "--json", "explain", "Task-Join")
	require.NoError(t, res.err)

	var got explainOutput
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	assert.Equal(t, "task_join", got.Kind)
	assert.Equal(t, 70, got.Exit)
	assert.Equal(t, "ABORTED", got.GRPC)
	assert.Len(t, got.Trace, 4)
}

func TestExplain_UsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"explain"},
		{"explain", "bogus"},
		{"explain", "io", "Not A Reason!"},
		{"explain", "io", "a", "b"},
	} {
		res := run(t, nil, args...)
		assert.Equal(t, exitUsage, res.code, args)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		args []string
		msg  string
		code int
	}{
		{[]string{"io", "disk on fire"}, "File I/O Error: disk on fire", 74},
		{[]string{"io", "disk full", "--reason", "fs.io.no_space"}, "File I/O Error: disk full", 74},
		{[]string{"input_file_not_found", "/data/animals.txt"}, "Input file not found: /data/animals.txt", 66},
		{[]string{"output_directory_create", "/out"}, "Failed to create output directory: /out", 73},
		{[]string{"line_parse", "D;;12"}, "Parsing error on line: D;;12", 65},
		{[]string{"invalid_animal_type", "Z"}, "Invalid animal type character: 'Z'. Must be D, C, B, H, or R.", 65},
		{[]string{"invalid_reg_num", "12x"}, "Invalid registration number: '12x' is not a valid u64.", 65},
		{[]string{"malformed_line", "3", "2", "D;12"}, "Malformed line: expected 3 fields, got 2 on line: D;12", 65},
		{[]string{"task_join", "worker 3 panicked"}, "A concurrent task failed to execute: worker 3 panicked", 70},
		{[]string{"task_join", "stopped", "--reason", "task.join.cancelled"}, "A concurrent task failed to execute: stopped", 130},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res := run(t, nil, append([]string{"render"}, tt.args...)...)
			assert.Equal(t, tt.code, res.code)
			assert.Equal(t, tt.msg+"\n", res.errs)
			assert.Empty(t, res.out)
		})
	}
}

func TestRender_JSON(t *testing.T) {
	res := run(t, nil, "--json", "render", "invalid_reg_num", "12x")
	assert.Equal(t, 65, res.code)

	var d struct {
		Kind       string `json:"kind"`
		HTTPStatus int    `json:"http_status"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &d))
	assert.Equal(t, "invalid_reg_num", d.Kind)
	assert.Equal(t, 422, d.HTTPStatus)
	assert.Equal(t, "Invalid registration number: '12x' is not a valid u64.", d.Message)
}

func TestRender_UsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"render"},
		{"render", "nope"},
		{"render", "io"},
		{"render", "invalid_animal_type", "ZZ"},
		{"render", "malformed_line", "x", "2", "D"},
		{"render", "line_parse", "x", "--reason", "!!"},
	} {
		res := run(t, nil, args...)
		assert.Equal(t, exitUsage, res.code, args)
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[rules]]\nkind = \"line_parse\"\nexit = 3\n"), 0o600))

	res := run(t, nil, "--config", path, "render", "line_parse", "x")
	assert.Equal(t, 3, res.code)

	bad := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules:\n  - kind: bogus\n    exit: 3\n"), 0o600))
	res = run(t, nil, "--config", bad, "kinds")
	assert.Equal(t, exitConfig, res.code)

	res = run(t, nil, "--config", filepath.Join(dir, "missing.yaml"), "kinds")
	assert.Equal(t, exitConfig, res.code)
}

func TestVersion(t *testing.T) {
	res := run(t, nil, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "apperr dev")
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	setupLogger(false, false, &buf).Info("hidden")
	assert.Empty(t, buf.String())

	setupLogger(true, true, &buf).Info("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
