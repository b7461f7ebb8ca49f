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

package vimsession

import (
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/vimsession/internal/backoff"
	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/transport/soap"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultReconnectLimit is the number of consecutive expired sessions
	// a call tolerates before the error is returned.
	DefaultReconnectLimit = 10

	// DefaultTimeout bounds a single remote call.
	DefaultTimeout = 120 * time.Second
)

// Option customizes a Client.
type Option interface {
	apply(*clientOptions)
}

type optionFunc func(*clientOptions)

func (f optionFunc) apply(opts *clientOptions) { f(opts) }

type clientOptions struct {
	reconnectLimit int
	timeout        time.Duration
	version        string
	factory        transport.Factory
	logger         *zap.Logger
	scope          tally.Scope
	tracer         opentracing.Tracer
	backoff        backoff.Strategy
	limiter        *rate.Limiter
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		reconnectLimit: DefaultReconnectLimit,
		timeout:        DefaultTimeout,
		factory:        soap.Dial,
		logger:         zap.NewNop(),
		scope:          tally.NoopScope,
		backoff:        backoff.None,
	}
}

// WithReconnectLimit sets how many consecutive "session is not
// authenticated" errors a call absorbs by logging in again. The call that
// sees the limit-th consecutive expiry fails with that error.
//
// Defaults to 10.
func WithReconnectLimit(limit int) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.reconnectLimit = limit
	})
}

// WithTimeout sets the timeout of every remote call, including the calls
// made while connecting. CallTimeout overrides it for one call.
//
// Defaults to two minutes.
func WithTimeout(timeout time.Duration) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.timeout = timeout
	})
}

// WithVersion sets the API version sent with every call.
func WithVersion(version string) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.version = version
	})
}

// WithTransportFactory replaces the SOAP transport, mostly for tests.
func WithTransportFactory(f transport.Factory) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.factory = f
	})
}

// WithLogger sets a zap Logger for the client and its transport.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.logger = logger
	})
}

// WithTally sets a Tally scope to record session metrics.
func WithTally(scope tally.Scope) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.scope = scope
	})
}

// WithTracer sets the tracer the transport creates call spans with.
// Defaults to the global tracer.
func WithTracer(tracer opentracing.Tracer) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.tracer = tracer
	})
}

// WithReconnectBackoff waits between a session expiry and the login that
// follows it. By default the client logs in again immediately.
func WithReconnectBackoff(strategy backoff.Strategy) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.backoff = strategy
	})
}

// WithRateLimit limits remote calls to r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) Option {
	return optionFunc(func(opts *clientOptions) {
		opts.limiter = rate.NewLimiter(r, burst)
	})
}

// CallOption customizes a single RunCommand or Call.
type CallOption interface {
	applyCall(*callOptions)
}

type callOptionFunc func(*callOptions)

func (f callOptionFunc) applyCall(opts *callOptions) { f(opts) }

type callOptions struct {
	timeout time.Duration
}

// CallTimeout overrides the client timeout for one call.
func CallTimeout(timeout time.Duration) CallOption {
	return callOptionFunc(func(opts *callOptions) {
		opts.timeout = timeout
	})
}
