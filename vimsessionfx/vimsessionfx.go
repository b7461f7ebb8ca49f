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

// Package vimsessionfx provides a lifecycle managed session client to fx
// applications.
//
//	fx.New(
//		fx.Supply(vimsessionfx.ConfigURL("file:///etc/vim/session.yaml")),
//		vimsessionfx.Module,
//		fx.Invoke(func(c *vimsession.Client) { ... }),
//	)
//
// The client logs out when the application stops.
package vimsessionfx

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/vimsession"
	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/vimsessionconfig"
	"go.uber.org/zap"
)

// Module loads the configuration named by a ConfigURL and provides a
// *vimsession.Client.
var Module = fx.Options(
	fx.Provide(NewConfig),
	fx.Provide(NewClient),
)

// ConfigURL is the location of the session configuration document.
type ConfigURL string

// ConfigParams defines the dependencies of NewConfig.
type ConfigParams struct {
	fx.In

	URL ConfigURL
}

// ConfigResult defines the values produced by NewConfig.
type ConfigResult struct {
	fx.Out

	Config vimsessionconfig.Config
}

// NewConfig loads the session configuration.
func NewConfig(p ConfigParams) (ConfigResult, error) {
	cfg, err := vimsessionconfig.Load(context.Background(), string(p.URL))
	if err != nil {
		return ConfigResult{}, err
	}
	return ConfigResult{Config: *cfg}, nil
}

// ClientParams defines the dependencies of NewClient.
type ClientParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    vimsessionconfig.Config
	Logger    *zap.Logger        `optional:"true"`
	Scope     tally.Scope        `optional:"true"`
	Tracer    opentracing.Tracer `optional:"true"`
	Factory   transport.Factory  `optional:"true"`
}

// ClientResult defines the values produced by NewClient.
type ClientResult struct {
	fx.Out

	Client *vimsession.Client
}

// NewClient builds a client and closes its session on stop.
func NewClient(p ClientParams) (ClientResult, error) {
	var opts []vimsession.Option
	if p.Logger != nil {
		opts = append(opts, vimsession.WithLogger(p.Logger.Named("vimsession")))
	}
	if p.Scope != nil {
		opts = append(opts, vimsession.WithTally(p.Scope.SubScope("vimsession")))
	}
	if p.Tracer != nil {
		opts = append(opts, vimsession.WithTracer(p.Tracer))
	}
	if p.Factory != nil {
		opts = append(opts, vimsession.WithTransportFactory(p.Factory))
	}

	client, err := p.Config.Build(opts...)
	if err != nil {
		return ClientResult{}, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
	return ClientResult{Client: client}, nil
}
