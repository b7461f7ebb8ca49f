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

// Package transport defines the contract between a session client and the
// RPC transport it calls through.
//
// A Transport marshals a named operation with its arguments into a wire
// request, sends it to the configured endpoint and hands back the parsed
// result together with the raw response and the response headers. The
// session client never looks at the wire format; it only needs the
// operation result, the headers of the last response (to derive the
// session artifact) and a way to attach that artifact to later calls.
//
// The soap subpackage provides the SOAP over HTTPS implementation.
package transport

import (
	"context"
	"net/http"
)

//go:generate mockgen -destination=transporttest/transport.go -package=transporttest go.uber.org/vimsession/transport Transport,Security

// Transport sends operations to a remote service.
type Transport interface {
	// Call sends the given request through this transport and returns its
	// response.
	//
	// Remote faults are returned as errors. The Response MAY be non-nil
	// alongside an error when the transport has a raw body to report.
	Call(ctx context.Context, request *Request) (*Response, error)

	// SetEndpoint changes the URL calls are sent to. The initial endpoint
	// comes from the service description.
	SetEndpoint(uri string)

	// SetSecurity replaces the Security attached to every subsequent call.
	// Passing nil removes it.
	SetSecurity(security Security)

	// LastResponseHeaders returns the headers of the most recent response
	// received by this transport, or nil if there was none.
	LastResponseHeaders() http.Header

	// Close releases the resources held by the transport. Calls made after
	// Close fail.
	Close() error
}

// Factory opens a Transport for the service described at uri.
//
// Implementations fetch and read the service description before returning.
type Factory func(ctx context.Context, uri string, opts Options) (Transport, error)
