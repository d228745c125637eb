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

// Detail is a single structured piece of information taken from an error's
// payload. It is a view type: small and safe to marshal.
//
// Typical usages:
//   - the path that was missing;
//   - the offending field value;
//   - expected vs actual field counts.
type Detail struct {
	// Type classifies the detail: "path", "field", "count", "line" or "cause".
	Type string `json:"type,omitempty"`

	// Field names the record field or payload slot the detail is about,
	// e.g. "animal_type" or "reg_num".
	Field string `json:"field,omitempty"`

	// Reason is a short explanation, e.g. "not_found" or "not_u64".
	Reason string `json:"reason,omitempty"`

	// Info carries string-typed extra data (the path, the value, counts).
	Info map[string]string `json:"info,omitempty"`
}

// ErrorView is the serializable shape exposed over the wire or in logs.
type ErrorView struct {
	// Kind is the canonical kind identifier.
	Kind string `json:"kind"`
	// Category is the failure family: environment, input or concurrency.
	Category string `json:"category,omitempty"`
	// Reason is the optional refinement.
	Reason string `json:"reason,omitempty"`
	// Message is the rendered template.
	Message string `json:"message"`
	// Details are derived from the kind's payload.
	Details []Detail `json:"details,omitempty"`
}

// ErrorDescriptor is a flat description of an error together with its
// resolved statuses, meant for structured logs and message buses.
type ErrorDescriptor struct {
	Kind       string `json:"kind"`
	Reason     string `json:"reason,omitempty"`
	ExitCode   int    `json:"exit_code,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
	GRPCCode   int    `json:"grpc_code,omitempty"`
	Message    string `json:"message,omitempty"`
}
