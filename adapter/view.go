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
	"fmt"
	"maps"
	"slices"
	"strconv"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/apis"
)

// ToDescriptor converts an error together with its resolved statuses into a
// portable ErrorDescriptor.
func ToDescriptor(e *apperr.Error, st apis.Status) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Kind:       e.ErrorKind(),
		Reason:     e.ErrorReason(),
		ExitCode:   st.Exit,
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    e.Error(),
	}
}

// ToView converts an error into its public ErrorView. No redaction is
// performed: the view exposes exactly what the error carries.
func ToView(e *apperr.Error) apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	return apis.ErrorView{
		Kind:     e.ErrorKind(),
		Category: e.Kind().Category().String(),
		Reason:   e.ErrorReason(),
		Message:  e.Error(),
		Details:  Details(e),
	}
}

// Details derives structured details from e's payload, followed by one
// "annotation" detail when e carries user annotations.
func Details(e *apperr.Error) []apis.Detail {
	if e == nil {
		return nil
	}
	var v detailVisitor
	e.Accept(&v)
	if ann := e.Details(); len(ann) > 0 {
		info := make(map[string]string, len(ann))
		for _, k := range slices.Sorted(maps.Keys(ann)) {
			info[k] = fmt.Sprint(ann[k])
		}
		v.out = append(v.out, apis.Detail{Type: "annotation", Info: info})
	}
	return v.out
}

// detailVisitor builds one detail per kind payload.
type detailVisitor struct {
	out []apis.Detail
}

var _ apperr.Visitor = (*detailVisitor)(nil)

func (v *detailVisitor) add(d apis.Detail) { v.out = append(v.out, d) }

func (v *detailVisitor) VisitIO(cause error) {
	if cause != nil {
		v.add(apis.Detail{Type: "cause", Reason: "io", Info: map[string]string{"message": cause.Error()}})
	}
}

func (v *detailVisitor) VisitInputFileNotFound(path string) {
	v.add(apis.Detail{Type: "path", Field: "input", Reason: "not_found", Info: map[string]string{"path": path}})
}

func (v *detailVisitor) VisitOutputDirectoryCreate(path string) {
	v.add(apis.Detail{Type: "path", Field: "output", Reason: "create_failed", Info: map[string]string{"path": path}})
}

func (v *detailVisitor) VisitLineParse(text string) {
	v.add(apis.Detail{Type: "line", Reason: "unparsable", Info: map[string]string{"line": text}})
}

func (v *detailVisitor) VisitInvalidAnimalType(c rune) {
	v.add(apis.Detail{
		Type:   "field",
		Field:  "animal_type",
		Reason: "not_in_set",
		Info:   map[string]string{"value": string(c), "allowed": "D,C,B,H,R"},
	})
}

func (v *detailVisitor) VisitInvalidRegNum(text string) {
	v.add(apis.Detail{Type: "field", Field: "reg_num", Reason: "not_u64", Info: map[string]string{"value": text}})
}

func (v *detailVisitor) VisitMalformedLine(expected, got int, line string) {
	v.add(apis.Detail{
		Type:   "count",
		Field:  "fields",
		Reason: "mismatch",
		Info: map[string]string{
			"expected": strconv.Itoa(expected),
			"got":      strconv.Itoa(got),
			"line":     line,
		},
	})
}

func (v *detailVisitor) VisitTaskJoin(cause error) {
	if cause != nil {
		v.add(apis.Detail{Type: "cause", Reason: "task", Info: map[string]string{"message": cause.Error()}})
	}
}
