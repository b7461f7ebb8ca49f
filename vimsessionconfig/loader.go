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

package vimsessionconfig

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"go.uber.org/vimsession/internal/config"
	"go.uber.org/vimsession/internal/interpolate"
)

// Loader reads configuration documents.
type Loader struct {
	fs       afs.Service
	resolver interpolate.VariableResolver
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithResolver resolves ${VAR} references with r instead of the process
// environment.
func WithResolver(r func(name string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.resolver = r
	}
}

// WithFileSystem reads documents through fs.
func WithFileSystem(fs afs.Service) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// NewLoader builds a Loader that reads through afs and resolves variables
// from the environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:       afs.New(),
		resolver: interpolate.Env,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the document at URL. Documents ending in .toml are TOML,
// anything else is YAML.
func (l *Loader) Load(ctx context.Context, URL string) (*Config, error) {
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %v", URL, err)
	}
	cfg, err := l.decode(data, config.FormatOf(URL))
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %v", URL, err)
	}
	return cfg, nil
}

// LoadYAML decodes a YAML document.
func (l *Loader) LoadYAML(data []byte) (*Config, error) {
	return l.decode(data, config.YAML)
}

// LoadTOML decodes a TOML document.
func (l *Loader) LoadTOML(data []byte) (*Config, error) {
	return l.decode(data, config.TOML)
}

// decode decodes a document over the defaults and validates it.
func (l *Loader) decode(data []byte, format config.Format) (*Config, error) {
	cfg := Default()
	if err := config.Decode(&cfg, data, format, config.InterpolateWith(l.resolver)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the document at URL with the default Loader.
func Load(ctx context.Context, URL string) (*Config, error) {
	return NewLoader().Load(ctx, URL)
}
