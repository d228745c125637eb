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

// Package taskjoin is the join boundary for concurrently executed work.
//
// A task that panics, or that cannot yield its result because it was
// cancelled, surfaces as a *JoinError. JoinError implements
// apis.JoinFailure, so apperr.From turns it into a TaskJoin error whose
// reason tells panics and cancellations apart. A task's own returned error
// is its result and is never reported as TaskJoin.
//
//	g, ctx := taskjoin.WithContext(ctx)
//	h := taskjoin.Spawn(g, "parse:animals.txt", func(ctx context.Context) (int, error) {
//	    return parse(ctx, path)
//	})
//	n, err := h.Join(ctx).Get()
//
// Scheduling policy is left to the caller; Group only bounds concurrency
// through SetLimit.
package taskjoin
