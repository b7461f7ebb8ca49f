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

// Package vimsession provides a stateful session client for vSphere style
// SOAP management APIs.
//
// A Client owns a single authenticated session against one host. It
// connects lazily on the first call, bootstraps the service content,
// logs in and attaches the session cookie to every subsequent call. When
// the server reports that the session is no longer authenticated, the
// client logs in again and retries the call, up to a configurable number
// of consecutive times.
//
//	client, err := vimsession.New(vimsession.ConnectionInfo{
//		Host:     "vc.local",
//		User:     "administrator@vsphere.local",
//		Password: password,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close(ctx)
//
//	res, err := client.RunCommand(ctx, "CurrentTime", transport.Args{}.With("_this", transport.ServiceInstance))
//
// A Client is meant to be driven by a single logical owner. Its state is
// guarded against data races but calls issued while a connect is in
// flight may reach the server before the session is authenticated.
package vimsession
