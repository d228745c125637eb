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

package apis

import (
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/reason"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe view of the mapping rules.
// It resolves a kind (and optionally a reason) into a process exit code and
// transport statuses for HTTP and gRPC.
type Mapper interface {
	// ExitCode returns the process exit code for the given kind and reason.
	ExitCode(k kind.Kind, r reason.Reason) int

	// HTTPStatus returns the HTTP status for the given kind and reason.
	HTTPStatus(k kind.Kind, r reason.Reason) int

	// GRPCStatus returns the gRPC status code for the given kind and reason.
	GRPCStatus(k kind.Kind, r reason.Reason) codes.Code

	// Status resolves all three dimensions with the same matching logic.
	Status(k kind.Kind, r reason.Reason) Status

	// Explain returns a human-readable description of which rule matched.
	Explain(k kind.Kind, r reason.Reason) string
}

// Status is the resolved projection of a single error.
type Status struct {
	Exit int        // Process exit code.
	HTTP int        // HTTP status code (net/http compatible).
	GRPC codes.Code // gRPC status code.
}
