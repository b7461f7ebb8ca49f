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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerzap "github.com/uber/jaeger-client-go/log/zap"
	"go.uber.org/multierr"
	"go.uber.org/vimsession"
	"go.uber.org/vimsession/vimsessionconfig"
	"go.uber.org/zap"
)

const _passwordEnv = "VIM_PASSWORD"

type flags struct {
	config         string
	host           string
	user           string
	password       string
	insecure       bool
	timeout        time.Duration
	reconnectLimit int
	verbose        bool
	trace          bool
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "vimctl",
		Short: "Run operations against a vSphere SOAP endpoint",
		Long: `vimctl opens an authenticated session against a vSphere style SOAP
endpoint and runs operations over it. Expired sessions are renewed
transparently.

Flags override values read from --config.`,
		SilenceUsage: true,
	}
	root.SetIn(in)
	root.SetOut(out)

	f.register(root.PersistentFlags())
	root.AddCommand(newConnectCommand(f), newCallCommand(f), newShellCommand(f))
	return root
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "configuration URL (YAML or TOML, any afs scheme)")
	fs.StringVar(&f.host, "host", "", "host name of the endpoint")
	fs.StringVar(&f.user, "user", "", "user name")
	fs.StringVar(&f.password, "password", "", "password (default $"+_passwordEnv+")")
	fs.BoolVar(&f.insecure, "insecure", true, "skip certificate verification")
	fs.DurationVar(&f.timeout, "timeout", 0, "timeout of each call (default 2m)")
	fs.IntVar(&f.reconnectLimit, "reconnect-limit", 0, "consecutive session expiries tolerated per call (default 10)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
	fs.BoolVar(&f.trace, "trace", false, "report spans to jaeger, configured from JAEGER_* variables")
}

// resolveConfig merges the configuration file, the flags and the
// environment. Changed reports whether a flag was given explicitly.
func (f *flags) resolveConfig(ctx context.Context, changed func(name string) bool) (vimsessionconfig.Config, error) {
	cfg := vimsessionconfig.Default()
	if f.config != "" {
		loaded, err := vimsessionconfig.Load(ctx, f.config)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if f.host != "" {
		cfg.Host = f.host
	}
	if f.user != "" {
		cfg.Username = f.user
	}
	switch {
	case f.password != "":
		cfg.Password = f.password
	case cfg.Password == "":
		cfg.Password = os.Getenv(_passwordEnv)
	}
	if changed("insecure") || f.config == "" {
		cfg.SSLVerify = !f.insecure
	}
	if f.timeout > 0 {
		cfg.Timeout = f.timeout
	}
	if f.reconnectLimit > 0 {
		cfg.ReconnectLimit = f.reconnectLimit
	}
	return cfg, cfg.Validate()
}

// session is a connected client and what it needs torn down.
type session struct {
	client *vimsession.Client
	logger *zap.Logger
	closer io.Closer
}

func (f *flags) open(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := f.resolveConfig(ctx, cmd.Flags().Changed)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(f.verbose)
	if err != nil {
		return nil, err
	}
	tracer, closer, err := newTracer(f.trace, logger)
	if err != nil {
		return nil, err
	}

	client, err := cfg.Build(
		vimsession.WithLogger(logger),
		vimsession.WithTracer(tracer),
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return &session{client: client, logger: logger, closer: closer}, nil
}

func (s *session) Close(ctx context.Context) error {
	err := multierr.Combine(s.client.Close(ctx), s.closer.Close())
	_ = s.logger.Sync()
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func newTracer(enabled bool, logger *zap.Logger) (opentracing.Tracer, io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid jaeger configuration: %v", err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "vimctl"
	}
	if !enabled {
		cfg.Disabled = true
	}
	return cfg.NewTracer(jaegercfg.Logger(jaegerzap.NewLogger(logger)))
}
