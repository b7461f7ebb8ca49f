// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package soap

import (
	"fmt"

	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/vimerrors"
)

// Fault is a SOAP fault returned by the remote service.
type Fault struct {
	// Code is the faultcode, for example "ServerFaultCode".
	Code string

	// String is the human readable faultstring.
	String string

	// Type is the fault type named in the detail, for example
	// "NotAuthenticated". It is empty when the fault carries no detail.
	Type string

	// Detail is the decoded fault detail.
	Detail transport.Object

	// StatusCode is the HTTP status of the response that carried the fault.
	StatusCode int

	raw []byte
}

func (f *Fault) Error() string {
	if f.Type != "" {
		return fmt.Sprintf("soap fault %v: %v", f.Type, f.String)
	}
	return fmt.Sprintf("soap fault %v: %v", f.Code, f.String)
}

// Body returns the raw response body that carried the fault.
func (f *Fault) Body() string {
	return string(f.raw)
}

var _faultTypeToCode = map[string]vimerrors.Code{
	"NotAuthenticated":      vimerrors.CodeUnauthenticated,
	"InvalidLogin":          vimerrors.CodeUnauthenticated,
	"NoPermission":          vimerrors.CodePermissionDenied,
	"InvalidArgument":       vimerrors.CodeInvalidArgument,
	"InvalidRequest":        vimerrors.CodeInvalidArgument,
	"InvalidType":           vimerrors.CodeInvalidArgument,
	"MethodNotFound":        vimerrors.CodeInvalidArgument,
	"ManagedObjectNotFound": vimerrors.CodeNotFound,
	"RequestCanceled":       vimerrors.CodeCancelled,
	"InvalidState":          vimerrors.CodeFailedPrecondition,
	"NotSupported":          vimerrors.CodeFailedPrecondition,
	"RuntimeFault":          vimerrors.CodeInternal,
}

// VimError exposes the fault as a vimerrors Status.
func (f *Fault) VimError() *vimerrors.Status {
	code, ok := _faultTypeToCode[f.Type]
	if !ok {
		code = vimerrors.CodeUnknown
		if f.StatusCode != 0 && f.StatusCode != 500 {
			code = vimerrors.CodeFromHTTPStatus(f.StatusCode)
		}
	}
	return vimerrors.Newf(code, "%v", f.String).WithDetails(f.raw)
}
