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

package vimerrors

import "fmt"

// Code represents the type of error for an RPC call made through a session
// client.
//
// The codes follow the gRPC and YARPC error space so that SOAP faults and
// HTTP failures can be reasoned about without parsing messages.
type Code int

const (
	// CodeOK means no error; returned on success.
	CodeOK Code = 0

	// CodeCancelled means the operation was cancelled, typically by the caller.
	CodeCancelled Code = 1

	// CodeUnknown means an unknown error. SOAP faults that carry no
	// recognizable fault type are converted to this code.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the client specified an invalid argument, or
	// the server rejected the request as malformed.
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means the call timeout expired before the remote
	// operation returned.
	CodeDeadlineExceeded Code = 4

	// CodeNotFound means the remote endpoint or a managed object was not
	// found.
	CodeNotFound Code = 5

	// CodePermissionDenied means the authenticated user lacks the privilege
	// for the operation.
	CodePermissionDenied Code = 7

	// CodeResourceExhausted means a client side or server side limit was hit.
	CodeResourceExhausted Code = 8

	// CodeFailedPrecondition means the client is not in a state that allows
	// the operation, for example an unknown connection state.
	CodeFailedPrecondition Code = 9

	// CodeInternal means an invariant of the client or the codec was broken.
	CodeInternal Code = 13

	// CodeUnavailable means the endpoint could not be reached or returned no
	// usable content. Connection setup failures use this code.
	CodeUnavailable Code = 14

	// CodeUnauthenticated means the session is not, or no longer,
	// authenticated.
	CodeUnauthenticated Code = 16
)

var _codeToString = map[Code]string{
	CodeOK:                 "ok",
	CodeCancelled:          "cancelled",
	CodeUnknown:            "unknown",
	CodeInvalidArgument:    "invalid-argument",
	CodeDeadlineExceeded:   "deadline-exceeded",
	CodeNotFound:           "not-found",
	CodePermissionDenied:   "permission-denied",
	CodeResourceExhausted:  "resource-exhausted",
	CodeFailedPrecondition: "failed-precondition",
	CodeInternal:           "internal",
	CodeUnavailable:        "unavailable",
	CodeUnauthenticated:    "unauthenticated",
}

// String returns the string representation of the Code.
func (c Code) String() string {
	if s, ok := _codeToString[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// _statusCodeToCode maps HTTP status codes to the closest Code.
var _statusCodeToCode = map[int]Code{
	400: CodeInvalidArgument,
	401: CodeUnauthenticated,
	403: CodePermissionDenied,
	404: CodeNotFound,
	429: CodeResourceExhausted,
	499: CodeCancelled,
	500: CodeUnknown,
	502: CodeUnavailable,
	503: CodeUnavailable,
	504: CodeDeadlineExceeded,
}

// CodeFromHTTPStatus does a best-effort conversion from an HTTP status code
// to a Code.
//
// Unmapped 4xx statuses become CodeInvalidArgument, everything else
// CodeUnknown.
func CodeFromHTTPStatus(statusCode int) Code {
	if code, ok := _statusCodeToCode[statusCode]; ok {
		return code
	}
	if statusCode >= 400 && statusCode < 500 {
		return CodeInvalidArgument
	}
	return CodeUnknown
}
