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

package transporttest

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.uber.org/vimsession/transport"
)

// RequestMatcher is a gomock Matcher for verifying the operation, arguments
// and timeout of a *transport.Request.
type RequestMatcher struct {
	t         *testing.T
	operation string
	args      *transport.Args
	timeout   time.Duration
}

// RequestMatcherOption customizes the behavior of a RequestMatcher.
type RequestMatcherOption interface {
	run(*RequestMatcher)
}

// RequestArgs requires that the request carry exactly these arguments, in
// this order. An empty RequestArgs requires an empty, non-nil argument list.
type RequestArgs transport.Args

func (a RequestArgs) run(m *RequestMatcher) {
	args := transport.Args(a)
	if args == nil {
		args = transport.Args{}
	}
	m.args = &args
}

// RequestTimeout requires that the request carry the given timeout.
type RequestTimeout time.Duration

func (d RequestTimeout) run(m *RequestMatcher) {
	m.timeout = time.Duration(d)
}

// NewRequestMatcher creates a RequestMatcher for the given operation.
func NewRequestMatcher(t *testing.T, operation string, options ...RequestMatcherOption) *RequestMatcher {
	matcher := &RequestMatcher{t: t, operation: operation}
	for _, opt := range options {
		opt.run(matcher)
	}
	return matcher
}

// Matches returns true if got is a request for the expected operation that
// satisfies all configured constraints.
func (m *RequestMatcher) Matches(got interface{}) bool {
	req, ok := got.(*transport.Request)
	if !ok {
		m.t.Logf("expected a *transport.Request but got a %T: %v", got, got)
		return false
	}

	if req.Operation != m.operation {
		return false
	}

	if m.args != nil {
		if req.Args == nil {
			m.t.Logf("expected non-nil arguments for %q", m.operation)
			return false
		}
		if !reflect.DeepEqual(*m.args, req.Args) {
			m.t.Logf("Arguments did not match:\n\t   %v (want)\n\t!= %v (got)", *m.args, req.Args)
			return false
		}
	}

	if m.timeout != 0 && req.Timeout != m.timeout {
		m.t.Logf("Timeout did not match: %v (want) != %v (got)", m.timeout, req.Timeout)
		return false
	}

	return true
}

func (m *RequestMatcher) String() string {
	return fmt.Sprintf("RequestMatcher(Operation:%v)", m.operation)
}
