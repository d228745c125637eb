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

	"dirpx.dev/apperr/kind"
	"google.golang.org/grpc/codes"
)

// defaultExit defines the library's built-in process exit codes.
var defaultExit = map[kind.Kind]int{
	kind.IO:                    74, // EX_IOERR
	kind.InputFileNotFound:     66, // EX_NOINPUT
	kind.OutputDirectoryCreate: 73, // EX_CANTCREAT
	kind.LineParse:             65, // EX_DATAERR
	kind.InvalidAnimalType:     65,
	kind.InvalidRegNum:         65,
	kind.MalformedLine:         65,
	kind.TaskJoin:              70, // EX_SOFTWARE
}

// defaultHTTP is used when a failure surfaces through an HTTP API.
var defaultHTTP = map[kind.Kind]int{
	kind.IO:                    http.StatusInternalServerError,
	kind.InputFileNotFound:     http.StatusNotFound,
	kind.OutputDirectoryCreate: http.StatusInternalServerError,
	// Well-formed request carrying records that fail validation.
	kind.LineParse:         http.StatusUnprocessableEntity,
	kind.InvalidAnimalType: http.StatusUnprocessableEntity,
	kind.InvalidRegNum:     http.StatusUnprocessableEntity,
	kind.MalformedLine:     http.StatusUnprocessableEntity,
	kind.TaskJoin:          http.StatusInternalServerError,
}

// defaultGRPC is used when a failure surfaces through a gRPC API.
var defaultGRPC = map[kind.Kind]codes.Code{
	kind.IO:                    codes.Internal,
	kind.InputFileNotFound:     codes.NotFound,
	kind.OutputDirectoryCreate: codes.Internal,
	kind.LineParse:             codes.InvalidArgument,
	kind.InvalidAnimalType:     codes.InvalidArgument,
	kind.InvalidRegNum:         codes.InvalidArgument,
	kind.MalformedLine:         codes.InvalidArgument,
	kind.TaskJoin:              codes.Aborted,
}

// statusClientClosedRequest is the nginx convention for a request the caller
// abandoned.
const statusClientClosedRequest = 499

// defaultPrefixes are seeded before user options, so a user rule with the
// same pattern replaces them.
var defaultPrefixes = []struct {
	kind   kind.Kind
	prefix string
	exit   int
	http   int
	grpc   codes.Code
}{
	{kind.IO, "fs.io.permission", 77, http.StatusForbidden, codes.PermissionDenied},
	{kind.IO, "fs.io.no_space", 74, http.StatusInsufficientStorage, codes.ResourceExhausted},
	{kind.TaskJoin, "task.join.cancelled", 130, statusClientClosedRequest, codes.Canceled},
}
