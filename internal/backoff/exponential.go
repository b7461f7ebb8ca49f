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

package backoff

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// ExponentialOption customizes an Exponential strategy.
type ExponentialOption func(*exponentialOptions)

type exponentialOptions struct {
	first, max time.Duration
	newRand    func() *rand.Rand
}

func (e exponentialOptions) validate() (err error) {
	if e.first <= 0 {
		err = multierr.Append(err, errors.New("invalid first backoff, need greater than zero"))
	}
	if e.max <= 0 {
		err = multierr.Append(err, errors.New("invalid max backoff, need greater than zero"))
	}
	if e.max < e.first {
		err = multierr.Append(err, errors.New("max backoff must not be less than first backoff"))
	}
	return err
}

var defaultExponentialOpts = exponentialOptions{
	first: 100 * time.Millisecond,
	max:   10 * time.Second,
	newRand: func() *rand.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	},
}

// FirstBackoff sets the upper bound of the delay after the first attempt.
// Each subsequent attempt doubles it.
func FirstBackoff(t time.Duration) ExponentialOption {
	return func(options *exponentialOptions) {
		options.first = t
	}
}

// MaxBackoff sets the absolute max delay that will ever be returned.
func MaxBackoff(t time.Duration) ExponentialOption {
	return func(options *exponentialOptions) {
		options.max = t
	}
}

// randGenerator overrides the random source for tests.
func randGenerator(newRand func() *rand.Rand) ExponentialOption {
	return func(options *exponentialOptions) {
		options.newRand = newRand
	}
}

// Exponential is a "full jitter" exponential backoff strategy: after n
// attempts the delay is drawn from [0, min(max, first*2^n)].
type Exponential struct {
	opts exponentialOptions
}

var _ Strategy = (*Exponential)(nil)

// NewExponential returns a new Exponential strategy.
func NewExponential(opts ...ExponentialOption) (*Exponential, error) {
	options := defaultExponentialOpts
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return &Exponential{opts: options}, nil
}

// Backoff returns a Backoff with its own random source.
func (e *Exponential) Backoff() Backoff {
	return &exponentialBackoff{
		first: e.opts.first.Nanoseconds(),
		max:   e.opts.max.Nanoseconds(),
		rand:  e.opts.newRand(),
	}
}

type exponentialBackoff struct {
	first, max int64

	mu   sync.Mutex
	rand *rand.Rand
}

func (b *exponentialBackoff) Duration(attempts uint) time.Duration {
	bound := b.max
	if attempts < 63 {
		// Overflow or going past max both clamp to max.
		if d := b.first << attempts; d > 0 && d < bound && d>>attempts == b.first {
			bound = d
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Duration(b.rand.Int63n(bound + 1))
}
