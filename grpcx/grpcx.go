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

// Package grpcx converts apperr failures into gRPC statuses and back.
//
// Server side, the interceptors map an *apperr.Error to a status whose code
// comes from an apis.Mapper and whose details carry:
//
//   - errdetails.ErrorInfo with the kind as reason and the payload as
//     metadata (see adapter.Metadata);
//   - errdetails.BadRequest for input failures;
//   - errdetails.RequestInfo when MetaFn supplies a request id.
//
// Client side, FromStatus rebuilds the *apperr.Error from ErrorInfo.
package grpcx

import (
	"context"
	"errors"
	"strings"

	"dirpx.dev/apperr"
	"dirpx.dev/apperr/adapter"
	"dirpx.dev/apperr/apis"
	"dirpx.dev/apperr/kind"
	"dirpx.dev/apperr/mapper"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// Domain identifies ErrorInfo entries produced by this package.
const Domain = "apperr.dirpx.dev"

// Extras holds optional request metadata attached to the status.
type Extras struct {
	// RequestID is copied into errdetails.RequestInfo.
	RequestID string
	// ServingData is opaque server-side data for debugging, e.g. a stack
	// trace id.
	ServingData string
}

// MetaFn extracts Extras from the call context and the error.
type MetaFn func(ctx context.Context, e *apperr.Error) Extras

func noExtras(context.Context, *apperr.Error) Extras { return Extras{} }

// UnaryServerInterceptor maps *apperr.Error results of unary handlers into
// rich gRPC statuses. Other errors pass through unchanged. Nil m means
// mapper.Default(); nil metaFn adds no request info.
func UnaryServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.UnaryServerInterceptor {
	c := newConverter(m, metaFn)
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, c.convert(ctx, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.StreamServerInterceptor {
	c := newConverter(m, metaFn)
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := handler(srv, ss); err != nil {
			return c.convert(ss.Context(), err)
		}
		return nil
	}
}

type converter struct {
	m      apis.Mapper
	metaFn MetaFn
}

func newConverter(m apis.Mapper, metaFn MetaFn) converter {
	if m == nil {
		m = mapper.Default()
	}
	if metaFn == nil {
		metaFn = noExtras
	}
	return converter{m: m, metaFn: metaFn}
}

func (c converter) convert(ctx context.Context, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) || e == nil {
		return err
	}
	return Status(c.m, e, c.metaFn(ctx, e)).Err()
}

// Status builds the gRPC status for e. If the details cannot be attached the
// bare status is returned.
func Status(m apis.Mapper, e *apperr.Error, ex Extras) *gstatus.Status {
	if m == nil {
		m = mapper.Default()
	}
	// The status message travels as a protobuf string; the exact text is
	// rebuilt from ErrorInfo by FromStatus.
	base := gstatus.New(m.GRPCStatus(e.Kind(), e.Reason()), strings.ToValidUTF8(e.Error(), "\uFFFD"))

	details := []protoadapt.MessageV1{
		&errdetails.ErrorInfo{
			Reason:   e.ErrorKind(),
			Domain:   Domain,
			Metadata: adapter.Metadata(e),
		},
	}
	if br := badRequest(e); br != nil {
		details = append(details, br)
	}
	if ex.RequestID != "" || ex.ServingData != "" {
		details = append(details, &errdetails.RequestInfo{RequestId: ex.RequestID, ServingData: ex.ServingData})
	}

	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

// badRequest lists field violations for input failures; nil otherwise.
func badRequest(e *apperr.Error) *errdetails.BadRequest {
	if e.Kind().Category() != kind.CategoryInput {
		return nil
	}
	br := &errdetails.BadRequest{}
	for _, d := range adapter.Details(e) {
		if d.Type == "annotation" {
			continue
		}
		field := d.Field
		if field == "" {
			field = d.Type
		}
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       field,
			Description: d.Reason,
		})
	}
	return br
}

// ExtractErrorInfo pulls the ErrorInfo written by this package out of a gRPC
// error.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return info, true
		}
	}
	return nil, false
}

// FromStatus rebuilds the *apperr.Error carried by a gRPC error. The result
// renders the same message as the server-side value.
func FromStatus(err error) (*apperr.Error, bool) {
	info, ok := ExtractErrorInfo(err)
	if !ok {
		return nil, false
	}
	e, mErr := adapter.FromMetadata(info.GetMetadata())
	if mErr != nil {
		return nil, false
	}
	return e, true
}
