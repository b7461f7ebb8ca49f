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

// Package vimsessionconfig builds session clients from YAML or TOML
// configuration.
//
//	host: ${VIM_HOST}
//	username: ${VIM_USER:administrator@vsphere.local}
//	password: ${VIM_PASSWORD}
//	sslVerify: false
//	reconnectLimit: 10
//	timeout: 2m
//	backoff:
//	  exponential:
//	    first: 100ms
//	    max: 5s
//
// The host, username and password values may reference environment
// variables. Documents are read from any URL the afs package supports,
// including local files, so a configuration can live in object storage.
package vimsessionconfig

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/vimsession"
	"go.uber.org/vimsession/internal/backoff"
	"golang.org/x/time/rate"
)

// Config is the configuration of a session client.
type Config struct {
	Host     string `config:"host,interpolate"`
	Username string `config:"username,interpolate"`
	Password string `config:"password,interpolate"`

	// SSLVerify enables certificate verification. Off by default.
	SSLVerify bool `config:"sslVerify"`

	ReconnectLimit int           `config:"reconnectLimit,interpolate"`
	Timeout        time.Duration `config:"timeout,interpolate"`
	Version        string        `config:"version"`

	// RateLimit caps calls per second when positive. Burst defaults to 1.
	RateLimit float64 `config:"rateLimit"`
	Burst     int     `config:"burst"`

	Backoff Backoff `config:"backoff"`
}

// Default returns a Config with the default limits filled in.
func Default() Config {
	return Config{
		ReconnectLimit: vimsession.DefaultReconnectLimit,
		Timeout:        vimsession.DefaultTimeout,
	}
}

// Backoff configures the wait between a session expiry and the following
// login.
//
//	exponential:
//	  first: 100ms
//	  max: 30s
type Backoff struct {
	Exponential ExponentialBackoff `config:"exponential"`
}

// Strategy returns the configured strategy, or backoff.None when nothing is
// configured.
func (c Backoff) Strategy() (backoff.Strategy, error) {
	return c.Exponential.Strategy()
}

// ExponentialBackoff is exponential backoff with full jitter. "first" is the
// range of the first delay; each further attempt doubles it, up to "max".
type ExponentialBackoff struct {
	First time.Duration `config:"first"`
	Max   time.Duration `config:"max"`
}

// Strategy returns the exponential strategy, or backoff.None when neither
// bound is set.
func (c ExponentialBackoff) Strategy() (backoff.Strategy, error) {
	if c.First == 0 && c.Max == 0 {
		return backoff.None, nil
	}

	var opts []backoff.ExponentialOption
	if c.First > 0 {
		opts = append(opts, backoff.FirstBackoff(c.First))
	}
	if c.Max > 0 {
		opts = append(opts, backoff.MaxBackoff(c.Max))
	}
	return backoff.NewExponential(opts...)
}

// Validate reports every problem with the configuration.
func (c Config) Validate() (err error) {
	if c.Host == "" {
		err = multierr.Append(err, errors.New("host is required"))
	}
	if c.Username == "" {
		err = multierr.Append(err, errors.New("username is required"))
	}
	if c.Password == "" {
		err = multierr.Append(err, errors.New("password is required"))
	}
	if c.ReconnectLimit < 1 {
		err = multierr.Append(err, fmt.Errorf("reconnectLimit must be at least 1, got %d", c.ReconnectLimit))
	}
	if c.Timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must be positive, got %v", c.Timeout))
	}
	if c.RateLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("rateLimit must not be negative, got %v", c.RateLimit))
	}
	if c.Burst < 0 {
		err = multierr.Append(err, fmt.Errorf("burst must not be negative, got %d", c.Burst))
	}
	return err
}

// ConnectionInfo returns the host and credential of the configuration.
func (c Config) ConnectionInfo() vimsession.ConnectionInfo {
	return vimsession.ConnectionInfo{
		Host:      c.Host,
		User:      c.Username,
		Password:  c.Password,
		VerifyTLS: c.SSLVerify,
	}
}

// Options translates the configuration into client options.
func (c Config) Options() ([]vimsession.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	strategy, err := c.Backoff.Strategy()
	if err != nil {
		return nil, fmt.Errorf("invalid backoff: %v", err)
	}

	opts := []vimsession.Option{
		vimsession.WithReconnectLimit(c.ReconnectLimit),
		vimsession.WithTimeout(c.Timeout),
		vimsession.WithReconnectBackoff(strategy),
	}
	if c.Version != "" {
		opts = append(opts, vimsession.WithVersion(c.Version))
	}
	if c.RateLimit > 0 {
		burst := c.Burst
		if burst == 0 {
			burst = 1
		}
		opts = append(opts, vimsession.WithRateLimit(rate.Limit(c.RateLimit), burst))
	}
	return opts, nil
}

// Build creates a client from the configuration. Options given here are
// applied after the configured ones.
func (c Config) Build(opts ...vimsession.Option) (*vimsession.Client, error) {
	configured, err := c.Options()
	if err != nil {
		return nil, err
	}
	return vimsession.New(c.ConnectionInfo(), append(configured, opts...)...)
}
