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
	"io/fs"
	"testing"
	"unicode/utf8"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/reason"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func samples() []*apperr.Error {
	return []*apperr.Error{
		apperr.IO(&fs.PathError{Op: "open", Path: "/in.txt", Err: fs.ErrPermission}),
		apperr.IO(nil),
		apperr.InputFileNotFound("/data/animals.txt"),
		apperr.OutputDirectoryCreate("/out"),
		apperr.LineParse("D;;12"),
		apperr.InvalidAnimalType('Z'),
		apperr.InvalidAnimalType('é'),
		apperr.InvalidRegNum("12x"),
		apperr.MalformedLine(3, 2, "D;12"),
		apperr.TaskJoin(errors.New("task 7 panicked: boom"), apperr.WithReasonOption(apperr.ReasonJoinPanic)),
		apperr.LineParse("x").WithReason(reason.Empty),
		apperr.LineParse("D;caf\xe9;12"),
		apperr.InputFileNotFound("/data/\xff\xfe.txt"),
		apperr.IO(errors.New("read \xc3\x28 failed")),
	}
}

func TestMetadata_RoundTrip(t *testing.T) {
	for _, e := range samples() {
		t.Run(e.Error(), func(t *testing.T) {
			got, err := FromMetadata(Metadata(e))
			require.NoError(t, err)
			assert.Equal(t, e.Error(), got.Error())
			assert.Equal(t, e.Kind(), got.Kind())
			assert.Equal(t, e.Reason(), got.Reason())
		})
	}
}

func TestMetadata_Keys(t *testing.T) {
	md := Metadata(apperr.MalformedLine(3, 2, "D;12"))
	assert.Equal(t, map[string]string{
		KeyKind:     "malformed_line",
		KeyReason:   "record.line.field_count",
		KeyExpected: "3",
		KeyGot:      "2",
		KeyLine:     "D;12",
	}, md)

	assert.Nil(t, Metadata(nil))
}

func TestMetadata_InvalidUTF8(t *testing.T) {
	md := Metadata(apperr.LineParse("D;caf\xe9;12"))
	for k, v := range md {
		assert.True(t, utf8.ValidString(k), k)
		assert.True(t, utf8.ValidString(v), v)
	}
	assert.NotContains(t, md, KeyLine)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("D;caf\xe9;12")), md[KeyLine+EncodedSuffix])

	got, err := FromMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, "D;caf\xe9;12", got.Text())

	// Valid payloads keep the plain key.
	assert.Equal(t, "D;café;12", Metadata(apperr.LineParse("D;café;12"))[KeyLine])
}

func TestFromMetadata_Invalid(t *testing.T) {
	tests := []map[string]string{
		nil,
		{KeyKind: "bogus"},
		{KeyKind: "io", KeyReason: "Not A Reason!"},
		{KeyKind: "invalid_animal_type", KeyChar: "ZZ"},
		{KeyKind: "invalid_animal_type"},
		{KeyKind: "malformed_line", KeyExpected: "x", KeyGot: "1"},
		{KeyKind: "malformed_line", KeyExpected: "1", KeyGot: ""},
		{KeyKind: "line_parse", KeyLine + EncodedSuffix: "not base64!"},
	}
	for _, md := range tests {
		_, err := FromMetadata(md)
		assert.ErrorIs(t, err, ErrInvalidMetadata, md)
	}
}

func TestToView(t *testing.T) {
	e := apperr.InvalidAnimalType('Z').WithDetail("line_no", 12)
	v := ToView(e)

	assert.Equal(t, "invalid_animal_type", v.Kind)
	assert.Equal(t, "input", v.Category)
	assert.Equal(t, "record.field.animal_type", v.Reason)
	assert.Equal(t, e.Error(), v.Message)
	require.Len(t, v.Details, 2)
	assert.Equal(t, apis.Detail{
		Type:   "field",
		Field:  "animal_type",
		Reason: "not_in_set",
		Info:   map[string]string{"value": "Z", "allowed": "D,C,B,H,R"},
	}, v.Details[0])
	assert.Equal(t, apis.Detail{Type: "annotation", Info: map[string]string{"line_no": "12"}}, v.Details[1])

	assert.Equal(t, apis.ErrorView{}, ToView(nil))
}

func TestDetails_EveryKind(t *testing.T) {
	seen := map[kind.Kind]bool{}
	for _, e := range samples() {
		if e.Cause() == nil && (e.Kind() == kind.IO || e.Kind() == kind.TaskJoin) {
			assert.Empty(t, Details(e))
			continue
		}
		assert.NotEmpty(t, Details(e), e.Kind())
		seen[e.Kind()] = true
	}
	assert.Len(t, seen, len(kind.All()))
}

func TestToDescriptor(t *testing.T) {
	e := apperr.InputFileNotFound("/x")
	d := ToDescriptor(e, apis.Status{Exit: 66, HTTP: 404, GRPC: codes.NotFound})
	assert.Equal(t, apis.ErrorDescriptor{
		Kind:       "input_file_not_found",
		Reason:     "fs.input.not_found",
		ExitCode:   66,
		HTTPStatus: 404,
		GRPCCode:   int(codes.NotFound),
		Message:    "Input file not found: /x",
	}, d)

	assert.Equal(t, apis.ErrorDescriptor{}, ToDescriptor(nil, apis.Status{}))
}
