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
	"net/http"
	"strings"

	"go.uber.org/vimsession/vimerrors"
)

// Security attaches session credentials to outgoing calls.
//
// A Security value is derived once from an authentication response and then
// replaced wholesale on the next authentication. Implementations must not
// be mutated after construction.
type Security interface {
	// Apply adds the credentials to the headers of an outgoing request.
	Apply(header http.Header)
}

// CookieSecurity is a Security that replays the session cookies set by an
// authentication response.
type CookieSecurity struct {
	cookies []*http.Cookie
	header  string
}

var _ Security = (*CookieSecurity)(nil)

// NewCookieSecurity builds a CookieSecurity from the Set-Cookie headers of a
// response. It fails if the headers set no cookie.
func NewCookieSecurity(header http.Header) (*CookieSecurity, error) {
	cookies := (&http.Response{Header: header}).Cookies()
	if len(cookies) == 0 {
		return nil, vimerrors.UnauthenticatedErrorf("no session cookie in response headers")
	}

	pairs := make([]string, 0, len(cookies))
	kept := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		kept = append(kept, &http.Cookie{Name: c.Name, Value: c.Value})
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return &CookieSecurity{cookies: kept, header: strings.Join(pairs, "; ")}, nil
}

// Apply sets the Cookie header.
func (s *CookieSecurity) Apply(header http.Header) {
	if s == nil || s.header == "" {
		return
	}
	header.Set("Cookie", s.header)
}

// Cookies returns copies of the session cookies.
func (s *CookieSecurity) Cookies() []*http.Cookie {
	out := make([]*http.Cookie, len(s.cookies))
	for i, c := range s.cookies {
		copied := *c
		out[i] = &copied
	}
	return out
}
