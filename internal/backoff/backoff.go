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

// Package backoff provides the delay strategies used between re-login
// attempts.
package backoff

import (
	"context"
	"time"
)

// Strategy is a factory for backoff algorithms.
// Each Backoff it returns is used by a single reconnect sequence.
type Strategy interface {
	Backoff() Backoff
}

// Backoff determines how long to wait after a number of failed attempts.
type Backoff interface {
	Duration(attempts uint) time.Duration
}

// None is a Strategy that never waits.
var None Strategy = none{}

type none struct{}

func (none) Backoff() Backoff { return none{} }

func (none) Duration(uint) time.Duration { return 0 }

// Wait blocks for b's delay after the given attempt, returning early with
// the context's error if it ends first.
func Wait(ctx context.Context, b Backoff, attempts uint) error {
	d := b.Duration(attempts)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
