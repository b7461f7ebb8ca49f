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

	"github.com/uber-go/tally"
	"go.uber.org/zap"
)

// observer records logs and metrics for a Client.
type observer struct {
	logger *zap.Logger

	calls               tally.Counter
	successes           tally.Counter
	failures            tally.Counter
	authExpired         tally.Counter
	reconnects          tally.Counter
	reconnectsExhausted tally.Counter
	connects            tally.Counter
	connectFailures     tally.Counter
	latency             tally.Timer
}

func newObserver(logger *zap.Logger, scope tally.Scope, host string) *observer {
	scope = scope.Tagged(map[string]string{"host": host})
	return &observer{
		logger:              logger.With(zap.String("host", host)),
		calls:               scope.Counter("calls"),
		successes:           scope.Counter("successes"),
		failures:            scope.Counter("failures"),
		authExpired:         scope.Counter("auth_expired"),
		reconnects:          scope.Counter("reconnects"),
		reconnectsExhausted: scope.Counter("reconnects_exhausted"),
		connects:            scope.Counter("connects"),
		connectFailures:     scope.Counter("connect_failures"),
		latency:             scope.Timer("latency"),
	}
}

// call tracks a single RunCommand across its attempts.
type call struct {
	o         *observer
	operation string
	start     time.Time
}

func (o *observer) begin(operation string) call {
	o.calls.Inc(1)
	return call{o: o, operation: operation, start: time.Now()}
}

func (c call) success(attempts int) {
	c.o.successes.Inc(1)
	c.o.latency.Record(time.Since(c.start))
	if ce := c.o.logger.Check(zap.DebugLevel, "call succeeded"); ce != nil {
		ce.Write(zap.String("operation", c.operation), zap.Int("attempts", attempts))
	}
}

func (c call) failure(err error) {
	c.o.failures.Inc(1)
	c.o.latency.Record(time.Since(c.start))
	c.o.logger.Debug("call failed", zap.String("operation", c.operation), zap.Error(err))
}

func (c call) authExpired(reconnects int) {
	c.o.authExpired.Inc(1)
	c.o.reconnects.Inc(1)
	c.o.logger.Warn("session expired, logging in again",
		zap.String("operation", c.operation),
		zap.Int("reconnects", reconnects))
}

func (c call) reconnectsExhausted(reconnects int, err error) {
	c.o.authExpired.Inc(1)
	c.o.reconnectsExhausted.Inc(1)
	c.o.logger.Error("session expired too many times in a row",
		zap.String("operation", c.operation),
		zap.Int("reconnects", reconnects),
		zap.Error(err))
}

func (o *observer) connected(user string, elapsed time.Duration) {
	o.connects.Inc(1)
	o.logger.Info("session established",
		zap.String("user", user),
		zap.Stringer("state", StateReady),
		zap.Duration("elapsed", elapsed))
}

func (o *observer) connectFailed(err error) {
	o.connectFailures.Inc(1)
	o.logger.Warn("connect failed", zap.Stringer("state", StateDisconnected), zap.Error(err))
}

func (o *observer) closed(from State, logoutErr error) {
	if logoutErr != nil {
		o.logger.Warn("logout failed", zap.Stringer("from", from), zap.Error(logoutErr))
	}
	o.logger.Info("session closed", zap.Stringer("from", from), zap.Stringer("state", StateDisconnected))
}
