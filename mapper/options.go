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
	"dirpx.dev/apperr/kind"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time. Options are applied to an
// internal builder which is then frozen into an immutable Mapper.
type Option func(*builder)

// WithExitDefault replaces the default exit code for k.
func WithExitDefault(k kind.Kind, code int) Option {
	return func(b *builder) {
		if b.check(k) && b.checkExit(code) {
			b.exit.defaults[k] = code
		}
	}
}

// WithExitOverride forces the exit code for k regardless of reason.
func WithExitOverride(k kind.Kind, code int) Option {
	return func(b *builder) {
		if b.check(k) && b.checkExit(code) {
			b.exit.overrides[k] = code
		}
	}
}

// WithExitPrefix adds a reason-prefix rule for the exit code of k.
// "*" matches exactly one segment.
func WithExitPrefix(k kind.Kind, prefix string, code int) Option {
	return func(b *builder) {
		if b.check(k) && b.checkExit(code) {
			b.exit.prefixes[k] = append(b.exit.prefixes[k], prefixRule{prefix, code})
		}
	}
}

// WithHTTPDefault replaces the default HTTP status for k.
func WithHTTPDefault(k kind.Kind, status int) Option {
	return func(b *builder) {
		if b.check(k) && b.checkHTTP(status) {
			b.http.defaults[k] = status
		}
	}
}

// WithHTTPOverride forces the HTTP status for k regardless of reason.
func WithHTTPOverride(k kind.Kind, status int) Option {
	return func(b *builder) {
		if b.check(k) && b.checkHTTP(status) {
			b.http.overrides[k] = status
		}
	}
}

// WithHTTPPrefix adds a reason-prefix rule for the HTTP status of k.
func WithHTTPPrefix(k kind.Kind, prefix string, status int) Option {
	return func(b *builder) {
		if b.check(k) && b.checkHTTP(status) {
			b.http.prefixes[k] = append(b.http.prefixes[k], prefixRule{prefix, status})
		}
	}
}

// WithGRPCDefault replaces the default gRPC code for k.
func WithGRPCDefault(k kind.Kind, c codes.Code) Option {
	return func(b *builder) {
		if b.check(k) && b.checkGRPC(c) {
			b.grpc.defaults[k] = int(c)
		}
	}
}

// WithGRPCOverride forces the gRPC code for k regardless of reason.
func WithGRPCOverride(k kind.Kind, c codes.Code) Option {
	return func(b *builder) {
		if b.check(k) && b.checkGRPC(c) {
			b.grpc.overrides[k] = int(c)
		}
	}
}

// WithGRPCPrefix adds a reason-prefix rule for the gRPC code of k.
func WithGRPCPrefix(k kind.Kind, prefix string, c codes.Code) Option {
	return func(b *builder) {
		if b.check(k) && b.checkGRPC(c) {
			b.grpc.prefixes[k] = append(b.grpc.prefixes[k], prefixRule{prefix, int(c)})
		}
	}
}
