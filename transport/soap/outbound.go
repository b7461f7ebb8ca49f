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

// Package soap implements transport.Transport as SOAP 1.1 over HTTPS.
//
// Dial fetches the WSDL service description, learns the service port and
// its address, and returns a Transport that posts one envelope per call.
// Each call carries a fresh operationID header for server side correlation,
// the Security installed with SetSecurity, and an opentracing span.
//
//	t, err := soap.Dial(ctx, "https://vc.local/sdk/vimService.wsdl", transport.Options{
//		InsecureSkipVerify: true,
//	})
package soap

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	opentracinglog "github.com/opentracing/opentracing-go/log"
	"go.uber.org/atomic"
	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/vimerrors"
	"go.uber.org/zap"
)

var errTransportClosed = vimerrors.FailedPreconditionErrorf("soap transport is closed")

// Transport is a SOAP transport bound to one service port.
type Transport struct {
	closed *atomic.Bool
	client *http.Client
	desc   *Description
	opts   transport.Options
	newID  func() string

	lock        sync.Mutex
	endpoint    string
	security    transport.Security
	lastHeaders http.Header
}

var (
	_ transport.Transport = (*Transport)(nil)
	_ transport.Factory   = Dial
)

// Dial opens a Transport for the service described at uri. It has the
// signature of a transport.Factory.
func Dial(ctx context.Context, uri string, opts transport.Options) (transport.Transport, error) {
	t, err := New(ctx, uri, opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// New fetches the service description at uri and builds a Transport for its
// first service port.
func New(ctx context.Context, uri string, opts transport.Options) (*Transport, error) {
	opts = opts.WithDefaults()
	client := buildClient(opts)

	fetchCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	desc, err := fetchDescription(fetchCtx, client, uri)
	if err != nil {
		client.CloseIdleConnections()
		return nil, err
	}

	endpoint := desc.Location
	if endpoint == "" {
		endpoint = uri
	}
	opts.Logger.Debug("read service description",
		zap.String("uri", uri),
		zap.String("service", desc.Service),
		zap.String("port", desc.Port),
		zap.String("namespace", desc.Namespace))

	return &Transport{
		closed:   atomic.NewBool(false),
		client:   client,
		desc:     desc,
		opts:     opts,
		newID:    func() string { return uuid.New().String() },
		endpoint: endpoint,
	}, nil
}

// Describe returns what the transport learned from the service description.
func (t *Transport) Describe() Description {
	return *t.desc
}

// Endpoint returns the URL calls are currently sent to.
func (t *Transport) Endpoint() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.endpoint
}

// SetEndpoint implements transport.Transport.
func (t *Transport) SetEndpoint(uri string) {
	t.lock.Lock()
	t.endpoint = uri
	t.lock.Unlock()
}

// SetSecurity implements transport.Transport.
func (t *Transport) SetSecurity(security transport.Security) {
	t.lock.Lock()
	t.security = security
	t.lock.Unlock()
}

// LastResponseHeaders implements transport.Transport.
func (t *Transport) LastResponseHeaders() http.Header {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.lastHeaders
}

// Close implements transport.Transport.
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}
	t.client.CloseIdleConnections()
	return nil
}

// Call implements transport.Transport.
func (t *Transport) Call(ctx context.Context, treq *transport.Request) (*transport.Response, error) {
	if t.closed.Load() {
		return nil, errTransportClosed
	}
	if treq == nil || treq.Operation == "" {
		return nil, vimerrors.InvalidArgumentErrorf("soap call requires an operation name")
	}

	timeout := treq.Timeout
	if timeout <= 0 {
		timeout = t.opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	t.lock.Lock()
	endpoint, security := t.endpoint, t.security
	t.lock.Unlock()

	operationID := t.newID()
	var body bytes.Buffer
	if err := encodeEnvelope(&body, t.desc.Namespace, operationID, treq.Operation, treq.Args); err != nil {
		return nil, vimerrors.InvalidArgumentErrorf("%v", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, vimerrors.InvalidArgumentErrorf("invalid endpoint %q: %v", endpoint, err)
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", t.soapAction())
	if security != nil {
		security.Apply(req.Header)
	}

	start := time.Now()
	ctx, span := t.startSpan(ctx, req, treq, operationID, start)
	defer span.Finish()

	resp, err := t.client.Do(req.WithContext(ctx))
	if err != nil {
		// Workaround borrowed from ctxhttp: the client error hides whether
		// the context ended.
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		err = t.transportError(treq, err, time.Since(start))
		ext.Error.Set(span, true)
		span.LogFields(opentracinglog.Error(err))
		return nil, err
	}
	defer resp.Body.Close()
	ext.HTTPStatusCode.Set(span, uint16(resp.StatusCode))

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		err = t.transportError(treq, err, time.Since(start))
		ext.Error.Set(span, true)
		span.LogFields(opentracinglog.Error(err))
		return nil, err
	}

	t.lock.Lock()
	t.lastHeaders = resp.Header
	t.lock.Unlock()

	tres := &transport.Response{Raw: raw, Header: resp.Header}
	result, fault, err := decodeEnvelope(raw)
	switch {
	case fault != nil:
		fault.StatusCode = resp.StatusCode
		err = fault
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		err = vimerrors.Newf(vimerrors.CodeFromHTTPStatus(resp.StatusCode),
			"%v: %v", treq.Operation, resp.Status).WithDetails(raw)
	}

	t.opts.Logger.Debug("soap call",
		zap.String("operation", treq.Operation),
		zap.String("operationID", operationID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err))

	if err != nil {
		ext.Error.Set(span, true)
		span.LogFields(opentracinglog.Error(err))
		return tres, err
	}
	tres.Result = result
	return tres, nil
}

func (t *Transport) soapAction() string {
	if t.opts.Version == "" {
		return t.desc.Namespace
	}
	return t.desc.Namespace + "/" + t.opts.Version
}

func (t *Transport) transportError(treq *transport.Request, err error, elapsed time.Duration) error {
	switch err {
	case context.DeadlineExceeded:
		return vimerrors.DeadlineExceededErrorf("call to %q timed out after %v", treq.Operation, elapsed)
	case context.Canceled:
		return vimerrors.Newf(vimerrors.CodeCancelled, "call to %q was cancelled", treq.Operation)
	}
	return vimerrors.Wrap(vimerrors.CodeUnavailable, err)
}

func (t *Transport) startSpan(ctx context.Context, req *http.Request, treq *transport.Request, operationID string, start time.Time) (context.Context, opentracing.Span) {
	var parent opentracing.SpanContext // ok to be nil
	if parentSpan := opentracing.SpanFromContext(ctx); parentSpan != nil {
		parent = parentSpan.Context()
	}
	span := t.opts.Tracer.StartSpan(
		treq.Operation,
		opentracing.StartTime(start),
		opentracing.ChildOf(parent),
		opentracing.Tags{
			"rpc.service":  t.desc.Service,
			"operation.id": operationID,
		},
	)
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPUrl.Set(span, req.URL.String())
	ext.HTTPMethod.Set(span, req.Method)
	_ = t.opts.Tracer.Inject(span.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header))
	return opentracing.ContextWithSpan(ctx, span), span
}
