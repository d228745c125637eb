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

// Package httpx writes apperr failures as JSON HTTP responses. The status
// comes from an apis.Mapper and the body is the error's apis.ErrorView.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/adapter"
	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/mapper"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// HeaderRequestID is read by the default MetaFn.
const HeaderRequestID = "X-Request-Id"

// Meta carries request-scoped context added on top of the error view.
// All fields are optional.
type Meta struct {
	Correlation       string
	TraceID           string
	SpanID            string
	RetryAfterSeconds int32
}

// Writer turns errors into HTTP responses.
type Writer struct {
	// Mapper resolves the status. Nil means mapper.Default().
	Mapper apis.Mapper
	// MetaFn extracts Meta from the request in Handler. Nil reads the
	// X-Request-Id header into Meta.Correlation.
	MetaFn func(*http.Request) Meta
}

// Write serializes err's view and writes it with the mapped status. Errors
// outside the taxonomy are converted with apperr.From first. A nil err
// writes nothing.
//
// No redaction is performed: whatever the error and meta carry is exposed.
func (w Writer) Write(rw http.ResponseWriter, err error, meta Meta) {
	e := apperr.From(err)
	if e == nil {
		return
	}
	m := w.Mapper
	if m == nil {
		m = mapper.Default()
	}
	st := m.Status(e.Kind(), e.Reason())

	body, mErr := encode(adapter.ToView(e), meta)
	if mErr != nil {
		http.Error(rw, e.Error(), st.HTTP)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(int(meta.RetryAfterSeconds)))
	}
	rw.WriteHeader(st.HTTP)
	_, _ = rw.Write(body)
}

// Handler adapts an error-returning handler. A non-nil error is written
// with Write unless fn already wrote a response header.
func (w Writer) Handler(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: rw}
		err := fn(tw, r)
		if err == nil || tw.wrote {
			return
		}
		metaFn := w.MetaFn
		if metaFn == nil {
			metaFn = requestIDMeta
		}
		w.Write(rw, err, metaFn(r))
	})
}

func requestIDMeta(r *http.Request) Meta {
	return Meta{Correlation: r.Header.Get(HeaderRequestID)}
}

// trackingWriter records whether the wrapped handler started a response.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (t *trackingWriter) WriteHeader(code int) {
	t.wrote = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(b)
}

func (t *trackingWriter) Unwrap() http.ResponseWriter { return t.ResponseWriter }

// encode renders the view through structpb so the output follows the
// protobuf JSON mapping used by the gRPC side.
func encode(v apis.ErrorView, meta Meta) ([]byte, error) {
	obj := map[string]any{
		"kind":    v.Kind,
		"message": v.Message,
	}
	putString(obj, "category", v.Category)
	putString(obj, "reason", v.Reason)
	putString(obj, "correlation", meta.Correlation)
	putString(obj, "trace_id", meta.TraceID)
	putString(obj, "span_id", meta.SpanID)
	if meta.RetryAfterSeconds > 0 {
		obj["retry_after_seconds"] = meta.RetryAfterSeconds
	}
	if len(v.Details) > 0 {
		details := make([]any, 0, len(v.Details))
		for _, d := range v.Details {
			dm := map[string]any{"type": d.Type}
			putString(dm, "field", d.Field)
			putString(dm, "reason", d.Reason)
			if len(d.Info) > 0 {
				info := make(map[string]any, len(d.Info))
				for k, val := range d.Info {
					info[k] = val
				}
				dm["info"] = info
			}
			details = append(details, dm)
		}
		obj["details"] = details
	}

	s, err := structpb.NewStruct(obj)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return protojson.MarshalOptions{UseProtoNames: true}.Marshal(s)
}

// ErrEncode is joined with the structpb error when a view cannot be encoded.
var ErrEncode = errors.New("apperr: encode error view")

func putString(m map[string]any, k, v string) {
	if v != "" {
		m[k] = v
	}
}
