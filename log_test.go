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

package apperr

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := MalformedLine(5, 3, "a,b,c",
		WithDetailOption("line_no", 12),
		WithDetailOption("file", "dogs.txt"),
	)
	logger.Error("record rejected", "err", err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	group, ok := rec["err"].(map[string]any)
	require.True(t, ok, "err must be logged as a group: %s", buf.String())
	assert.Equal(t, "malformed_line", group["kind"])
	assert.Equal(t, "record.line.field_count", group["reason"])
	assert.Equal(t, "Malformed line: expected 5 fields, got 3 on line: a,b,c", group["message"])
	assert.Equal(t, "dogs.txt", group["file"])
	assert.EqualValues(t, 12, group["line_no"])
}

func TestLogValue_Nil(t *testing.T) {
	var e *Error
	assert.Equal(t, "<nil>", e.LogValue().String())
}
