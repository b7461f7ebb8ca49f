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

package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/uber-go/mapdecode"
	"gopkg.in/yaml.v2"
)

// Format is the syntax of a configuration document.
type Format int

const (
	// YAML documents, the default.
	YAML Format = iota
	// TOML documents.
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks the format from a file name or URL extension. Anything
// other than .toml is read as YAML.
func FormatOf(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if strings.EqualFold(path.Ext(name), ".toml") {
		return TOML
	}
	return YAML
}

// Parse reads a document into a generic map suitable for DecodeInto.
func Parse(data []byte, format Format) (interface{}, error) {
	switch format {
	case TOML:
		var m map[string]interface{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %v", err)
		}
		return m, nil
	case YAML:
		var m map[interface{}]interface{}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %v", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported config format %v", format)
	}
}

// Decode parses data and decodes it into dst.
func Decode(dst interface{}, data []byte, format Format, opts ...mapdecode.Option) error {
	src, err := Parse(data, format)
	if err != nil {
		return err
	}
	return DecodeInto(dst, src, opts...)
}
