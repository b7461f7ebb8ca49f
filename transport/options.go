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

package transport

import (
	"time"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Options configures a Transport created by a Factory.
//
// Options are passed per client. Nothing in this module changes process
// wide TLS settings.
type Options struct {
	// InsecureSkipVerify disables verification of the server certificate
	// chain and host name.
	InsecureSkipVerify bool

	// LegacyTLS lowers the minimum TLS version to 1.0 for management
	// endpoints that still run old stacks with self-signed certificates.
	LegacyTLS bool

	// Timeout is the default timeout of a single call when the request
	// does not carry its own.
	//
	// Defaults to two minutes.
	Timeout time.Duration

	// Version is the API version sent with each call, for example "6.7".
	// The version is optional.
	Version string

	// Logger sets a logger to use for internal logging.
	//
	// The default is to not write any logs.
	Logger *zap.Logger

	// Tracer is used to create a span for every call.
	//
	// Defaults to opentracing.GlobalTracer().
	Tracer opentracing.Tracer
}

// DefaultTimeout is the call timeout used when none is configured.
const DefaultTimeout = 2 * time.Minute

// WithDefaults returns a copy of the options with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Tracer == nil {
		o.Tracer = opentracing.GlobalTracer()
	}
	return o
}
