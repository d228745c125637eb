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
	"log/slog"
	"maps"
	"slices"
)

var _ slog.LogValuer = (*Error)(nil)

// LogValue implements slog.LogValuer. It logs the kind, the reason, the
// rendered message and every annotation in key order.
func (e *Error) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}
	attrs := make([]slog.Attr, 0, 3+len(e.details))
	attrs = append(attrs,
		slog.String("kind", string(e.kind)),
		slog.String("reason", string(e.reason)),
		slog.String("message", e.Error()),
	)
	for _, k := range slices.Sorted(maps.Keys(e.details)) {
		attrs = append(attrs, slog.Any(k, e.details[k]))
	}
	return slog.GroupValue(attrs...)
}
