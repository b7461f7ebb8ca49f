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
	"errors"
	"regexp"

	"go.uber.org/vimsession/transport"
)

var _authExpiredPattern = regexp.MustCompile(`session is not authenticated`)

var errGeneral = errors.New("general error")

// bodyError is implemented by transport errors that carry the raw
// response, such as soap.Fault.
type bodyError interface {
	Body() string
}

// isAuthExpired reports whether err says the session is no longer
// authenticated.
func isAuthExpired(err error) bool {
	if err == nil {
		return false
	}
	if _authExpiredPattern.MatchString(err.Error()) {
		return true
	}
	var be bodyError
	return errors.As(err, &be) && _authExpiredPattern.MatchString(be.Body())
}

// expiry describes a session expiry seen by classify.
type expiry struct {
	// reconnects is the consecutive expiry count, zero if the error was
	// not an expiry.
	reconnects int

	// stale is the transport of the expired session, for the caller to
	// close.
	stale transport.Transport
}

// classify decides what a failed call does next. A nil error means the
// session expired within the reconnect limit and the call may be retried;
// otherwise the returned error is final.
//
// An expiry always moves the client to StateDisconnected and counts against
// the reconnect limit.
func (c *Client) classify(err error, operation string, args transport.Args) (expiry, error) {
	if err == nil {
		err = errGeneral
	}
	if !isAuthExpired(err) {
		return expiry{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconnects++
	exp := expiry{
		reconnects: c.reconnects,
		stale:      c.disconnectLocked(eventAuthExpired),
	}
	if c.reconnects < c.opts.reconnectLimit {
		return exp, nil
	}
	return exp, err
}
