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

// Package mapper provides deterministic, immutable mappings from apperr kinds
// (dirpx.dev/apperr/kind) and optional reasons (dirpx.dev/apperr/reason) to a
// process exit code, an HTTP status and a gRPC code.
//
// # Resolution model
//
// Each of the three dimensions is resolved independently in this order:
//
//  1. exact override for the kind;
//  2. per-kind longest-prefix-match (LPM) on the reason;
//  3. per-kind default (library or user-adjusted);
//  4. global fallback (exit 1 / 500 / codes.Internal).
//
// Prefix rules are segment-aware: reasons are "."-separated segments and "*"
// matches exactly one segment. The more specific prefix wins:
//
//	WithExitPrefix(kind.IO, "fs.io", 74)
//	WithExitPrefix(kind.IO, "fs.io.permission", 77)
//
// # Library defaults
//
// Exit codes follow sysexits.h: input failures exit 65 (EX_DATAERR), a
// missing input file 66 (EX_NOINPUT), an internal task failure 70
// (EX_SOFTWARE), an uncreatable output directory 73 (EX_CANTCREAT), other I/O
// 74 (EX_IOERR) and permission problems 77 (EX_NOPERM). A cancelled task
// exits 130, the shell convention for an interrupted process.
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithExitOverride(kind.TaskJoin, 1),
//	    mapper.WithHTTPPrefix(kind.IO, "fs.io.read_only", http.StatusConflict),
//	)
//
//	st := m.Status(kind.MalformedLine, apperr.ReasonFieldCount)
//	// st.Exit == 65, st.HTTP == 422, st.GRPC == codes.InvalidArgument
//
// Rules can also be loaded from YAML or TOML files, see LoadConfig.
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of which tier matched. It is
// meant for inspection, not for machine parsing.
//
// # Immutability
//
// All inputs are copied during New; a Mapper never observes later changes
// and is safe to share across goroutines.
package mapper
