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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/multierr"
	"go.uber.org/vimsession/internal/backoff"
	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/vimerrors"
	"go.uber.org/zap"
)

// Operations the client calls itself.
const (
	OperationRetrieveServiceContent = "RetrieveServiceContent"
	OperationLogin                  = "Login"
	OperationLogout                 = "Logout"
)

// Response is the result of a remote operation along with the raw response
// body and headers.
type Response = transport.Response

// Client is a session client for one host.
type Client struct {
	info     ConnectionInfo
	opts     clientOptions
	observer *observer

	mu             sync.Mutex
	state          State
	transport      transport.Transport
	attempt        *connectAttempt
	service        *ServiceContent
	sessionManager transport.ManagedObjectReference
	security       transport.Security
	session        *Session
	reconnects     int
}

// connectAttempt is a connect in progress. Callers that find the client
// connecting wait on done and share the outcome.
type connectAttempt struct {
	done    chan struct{}
	session *Session
	err     error
}

func (a *connectAttempt) wait(ctx context.Context) (*Session, error) {
	select {
	case <-a.done:
		return a.session, a.err
	case <-ctx.Done():
		return nil, contextError(ctx, "waiting for connect")
	}
}

// New builds a disconnected Client. Nothing is sent until Connect or the
// first call.
func New(info ConnectionInfo, opts ...Option) (*Client, error) {
	options := defaultClientOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	if options.scope == nil {
		options.scope = tally.NoopScope
	}
	if options.backoff == nil {
		options.backoff = backoff.None
	}
	if err := validate(info, options); err != nil {
		return nil, err
	}

	return &Client{
		info:     info,
		opts:     options,
		observer: newObserver(options.logger, options.scope, info.Host),
	}, nil
}

func validate(info ConnectionInfo, opts clientOptions) (err error) {
	if info.Host == "" {
		err = multierr.Append(err, errors.New("host is required"))
	}
	if info.User == "" {
		err = multierr.Append(err, errors.New("user is required"))
	}
	if info.Password == "" {
		err = multierr.Append(err, errors.New("password is required"))
	}
	if opts.reconnectLimit < 1 {
		err = multierr.Append(err, fmt.Errorf("reconnect limit must be at least 1, got %d", opts.reconnectLimit))
	}
	if opts.timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must be positive, got %v", opts.timeout))
	}
	if opts.factory == nil {
		err = multierr.Append(err, errors.New("transport factory is required"))
	}
	return err
}

// ConnectionInfo returns the host and credential of the client.
func (c *Client) ConnectionInfo() ConnectionInfo {
	return c.info
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the current session, or nil unless the client is ready.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// ServiceContent returns the bootstrap service content of the current
// session, or nil unless the client is ready.
func (c *Client) ServiceContent() *ServiceContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.service
}

// ReconnectCount returns the number of consecutive session expiries since
// the last successful call.
func (c *Client) ReconnectCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnects
}

// Connect establishes the session and returns it.
//
// If the client is ready, Connect returns the current session without
// calling the server. If another Connect is in progress, it waits for that
// one and returns its outcome. Otherwise it opens the transport, retrieves
// the service content and logs in. Any failure leaves the client
// disconnected.
func (c *Client) Connect(ctx context.Context) (*Session, error) {
	return c.connect(ctx, true)
}

func (c *Client) connect(ctx context.Context, resetReconnects bool) (*Session, error) {
	c.mu.Lock()
	switch c.state {
	case StateReady:
		session := c.session
		c.mu.Unlock()
		return session, nil
	case StateConnecting:
		attempt := c.attempt
		c.mu.Unlock()
		return attempt.wait(ctx)
	}
	if err := c.transitionLocked(eventConnect); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	attempt := &connectAttempt{done: make(chan struct{})}
	c.attempt = attempt
	c.mu.Unlock()

	attempt.session, attempt.err = c.establish(ctx, attempt, resetReconnects)
	close(attempt.done)
	return attempt.session, attempt.err
}

func (c *Client) establish(ctx context.Context, attempt *connectAttempt, resetReconnects bool) (*Session, error) {
	start := time.Now()
	uri := c.info.ServiceURI()
	tr, err := c.opts.factory(ctx, uri, c.transportOptions())
	if err != nil {
		return nil, c.connectFailed(attempt, nil, err)
	}
	tr.SetEndpoint(uri)

	c.mu.Lock()
	current := c.currentLocked(attempt)
	if current {
		c.transport = tr
	}
	c.mu.Unlock()
	if !current {
		return nil, c.connectFailed(attempt, tr, c.closedWhileConnecting())
	}

	res, err := c.send(ctx, tr, &transport.Request{
		Operation: OperationRetrieveServiceContent,
		Args:      transport.Args{}.With(transport.ThisArg, transport.ServiceInstance),
		Timeout:   c.opts.timeout,
	})
	if err != nil {
		return nil, c.connectFailed(attempt, tr, err)
	}
	content, err := newServiceContent(res)
	if err != nil {
		return nil, c.connectFailed(attempt, tr, err)
	}

	res, err = c.send(ctx, tr, &transport.Request{
		Operation: OperationLogin,
		Args: transport.Args{}.
			With(transport.ThisArg, content.SessionManager).
			With("userName", c.info.User).
			With("password", c.info.Password),
		Timeout: c.opts.timeout,
	})
	if err != nil {
		return nil, c.connectFailed(attempt, tr, err)
	}
	session, err := newSession(res)
	if err != nil {
		return nil, c.connectFailed(attempt, tr, err)
	}
	security, err := transport.NewCookieSecurity(tr.LastResponseHeaders())
	if err != nil {
		return nil, c.connectFailed(attempt, tr, err)
	}
	tr.SetSecurity(security)

	c.mu.Lock()
	if !c.currentLocked(attempt) {
		c.mu.Unlock()
		return nil, c.connectFailed(attempt, tr, c.closedWhileConnecting())
	}
	if err := c.transitionLocked(eventConnected); err != nil {
		c.mu.Unlock()
		return nil, c.connectFailed(attempt, tr, err)
	}
	c.transport = tr
	c.service = content
	c.sessionManager = content.SessionManager
	c.security = security
	c.session = session
	if resetReconnects {
		c.reconnects = 0
	}
	c.mu.Unlock()

	c.observer.connected(session.UserName, time.Since(start))
	return session, nil
}

// currentLocked reports whether attempt is still the connect in progress.
// It is not once Close forced the client to disconnect.
func (c *Client) currentLocked(attempt *connectAttempt) bool {
	return c.attempt == attempt && c.state == StateConnecting
}

func (c *Client) closedWhileConnecting() error {
	return vimerrors.Newf(vimerrors.CodeCancelled, "client for host %v closed while connecting", c.info.Host)
}

// connectFailed moves the client back to disconnected unless the attempt
// was already abandoned, and closes the attempt's transport.
func (c *Client) connectFailed(attempt *connectAttempt, tr transport.Transport, err error) error {
	c.mu.Lock()
	if c.currentLocked(attempt) {
		c.disconnectLocked(eventConnectFailed)
	}
	c.mu.Unlock()

	if tr != nil {
		_ = tr.Close()
	}
	c.observer.connectFailed(err)
	return err
}

// transitionLocked moves the client to the state reached on e.
func (c *Client) transitionLocked(e event) error {
	next, err := c.state.next(e)
	if err != nil {
		return vimerrors.FailedPreconditionErrorf("%v for host %v", err, c.info.Host)
	}
	c.state = next
	return nil
}

// disconnectLocked drops the session and returns its transport for the
// caller to close once the lock is released.
func (c *Client) disconnectLocked(e event) transport.Transport {
	if err := c.transitionLocked(e); err != nil {
		c.observer.logger.Error("forcing disconnect", zap.Error(err))
	}
	c.state = StateDisconnected

	tr := c.transport
	c.transport = nil
	c.service = nil
	c.sessionManager = transport.ManagedObjectReference{}
	c.security = nil
	c.session = nil
	return tr
}

// RunCommand invokes a remote operation and returns its result along with
// the raw response and headers. A nil args sends no arguments.
//
// A disconnected client connects first. When the server reports that the
// session is not authenticated, the client logs in again and retries the
// call, until the reconnect limit of consecutive expiries is reached; the
// call then fails with the server's error and the client is left
// disconnected. Any other error is returned as is.
//
// A successful Logout leaves the client disconnected.
func (c *Client) RunCommand(ctx context.Context, operation string, args transport.Args, opts ...CallOption) (*Response, error) {
	if args == nil {
		args = transport.Args{}
	}
	options := callOptions{timeout: c.opts.timeout}
	for _, opt := range opts {
		opt.applyCall(&options)
	}

	call := c.observer.begin(operation)
	var (
		boff     backoff.Backoff
		retrying bool
		attempts int
	)
	for {
		if ctx.Err() != nil {
			err := contextError(ctx, operation)
			call.failure(err)
			return nil, err
		}

		c.mu.Lock()
		state, tr := c.state, c.transport
		c.mu.Unlock()

		switch {
		case state == StateDisconnected, state == StateConnecting && tr == nil:
			// Re-logins after an expiry keep counting toward the limit.
			if _, err := c.connect(ctx, !retrying); err != nil {
				call.failure(err)
				return nil, err
			}
			continue
		case state == StateReady, state == StateConnecting:
		default:
			err := vimerrors.FailedPreconditionErrorf("invalid connection state %v for host %v", state, c.info.Host)
			call.failure(err)
			return nil, err
		}

		attempts++
		res, err := c.send(ctx, tr, &transport.Request{
			Operation: operation,
			Args:      args,
			Timeout:   options.timeout,
		})
		if err == nil {
			c.succeeded(operation)
			call.success(attempts)
			return res, nil
		}

		exp, err := c.classify(err, operation, args)
		if exp.stale != nil {
			_ = exp.stale.Close()
		}
		if err != nil {
			if exp.reconnects > 0 {
				call.reconnectsExhausted(exp.reconnects, err)
			}
			call.failure(err)
			return nil, err
		}
		call.authExpired(exp.reconnects)
		retrying = true

		if boff == nil {
			boff = c.opts.backoff.Backoff()
		}
		if backoff.Wait(ctx, boff, uint(exp.reconnects-1)) != nil {
			err := contextError(ctx, operation)
			call.failure(err)
			return nil, err
		}
	}
}

// Call is RunCommand for callers that only need the result.
func (c *Client) Call(ctx context.Context, operation string, args transport.Args, opts ...CallOption) (transport.Object, error) {
	res, err := c.RunCommand(ctx, operation, args, opts...)
	if err != nil {
		return nil, err
	}
	return res.Result, nil
}

// succeeded resets the reconnect count after a successful call and ends
// the session after a Logout.
func (c *Client) succeeded(operation string) {
	c.mu.Lock()
	c.reconnects = 0
	var stale transport.Transport
	if operation == OperationLogout {
		stale = c.disconnectLocked(eventLogout)
	}
	c.mu.Unlock()

	if stale != nil {
		_ = stale.Close()
	}
}

// Close ends the session.
//
// A ready client sends one Logout and is disconnected afterwards whether or
// not Logout succeeded; a Logout failure is logged, not returned. A client
// that is connecting is forced to disconnected. Closing a disconnected
// client does nothing.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	from := c.state
	switch from {
	case StateDisconnected:
		c.mu.Unlock()
		return nil
	case StateReady:
		tr, sm := c.transport, c.sessionManager
		c.mu.Unlock()

		_, logoutErr := c.send(ctx, tr, &transport.Request{
			Operation: OperationLogout,
			Args:      transport.Args{}.With(transport.ThisArg, sm),
			Timeout:   c.opts.timeout,
		})

		c.mu.Lock()
		stale := c.disconnectLocked(eventClose)
		c.mu.Unlock()

		err := closeTransport(tr)
		if stale != tr {
			err = multierr.Append(err, closeTransport(stale))
		}
		c.observer.closed(from, logoutErr)
		return err
	default:
		stale := c.disconnectLocked(eventClose)
		c.mu.Unlock()

		c.observer.closed(from, nil)
		return closeTransport(stale)
	}
}

func closeTransport(tr transport.Transport) error {
	if tr == nil {
		return nil
	}
	return tr.Close()
}

// send applies the rate limit and calls the transport.
func (c *Client) send(ctx context.Context, tr transport.Transport, req *transport.Request) (*transport.Response, error) {
	if c.opts.limiter != nil {
		if err := c.opts.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, contextError(ctx, req.Operation)
			}
			return nil, vimerrors.Newf(vimerrors.CodeResourceExhausted, "%v: %v", req.Operation, err)
		}
	}
	return tr.Call(ctx, req)
}

func (c *Client) transportOptions() transport.Options {
	return transport.Options{
		InsecureSkipVerify: !c.info.VerifyTLS,
		LegacyTLS:          !c.info.VerifyTLS,
		Timeout:            c.opts.timeout,
		Version:            c.opts.version,
		Logger:             c.opts.logger,
		Tracer:             c.opts.tracer,
	}
}

func contextError(ctx context.Context, operation string) error {
	if ctx.Err() == context.DeadlineExceeded {
		return vimerrors.DeadlineExceededErrorf("%v: %v", operation, ctx.Err())
	}
	return vimerrors.Newf(vimerrors.CodeCancelled, "%v: %v", operation, ctx.Err())
}
