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

// Package config turns parsed YAML or TOML documents into structs.
//
// Fields are matched by the "config" struct tag. A tag may carry the
// interpolate option, in which case ${NAME} and ${NAME:default} references
// in the document's string value are resolved before decoding:
//
//	Password string `config:"password,interpolate"`
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/uber-go/mapdecode"
	"go.uber.org/vimsession/internal/interpolate"
)

const _tagName = "config"

// DecodeInto decodes src into dst using the `config` struct tag.
func DecodeInto(dst interface{}, src interface{}, opts ...mapdecode.Option) error {
	opts = append(opts, mapdecode.TagName(_tagName))
	return mapdecode.Decode(dst, src, opts...)
}

// fieldTag is a parsed `config:"name,option..."` tag.
type fieldTag struct {
	name        string
	interpolate bool
}

func parseFieldTag(field reflect.StructField) fieldTag {
	parts := strings.Split(field.Tag.Get(_tagName), ",")
	tag := fieldTag{name: parts[0]}
	if tag.name == "" {
		tag.name = field.Name
	}
	for _, opt := range parts[1:] {
		if opt == "interpolate" {
			tag.interpolate = true
		}
	}
	return tag
}

// InterpolateWith resolves variable references in fields tagged with the
// interpolate option. Errors name the field, never its value.
func InterpolateWith(resolver interpolate.VariableResolver) mapdecode.Option {
	return mapdecode.FieldHook(interpolateHook{resolver: resolver}.hook)
}

type interpolateHook struct {
	resolver interpolate.VariableResolver
}

func (h interpolateHook) hook(dest reflect.StructField, src reflect.Value) (reflect.Value, error) {
	tag := parseFieldTag(dest)
	if !tag.interpolate {
		return src, nil
	}
	raw, ok := src.Interface().(string)
	if !ok {
		return src, nil
	}

	s, err := interpolate.Parse(raw)
	if err != nil {
		return src, fmt.Errorf("config field %q: malformed variable reference", tag.name)
	}
	if !s.HasVariables() {
		return src, nil
	}
	out, err := s.Render(h.resolver)
	if err != nil {
		return src, fmt.Errorf("config field %q: %v", tag.name, err)
	}
	return reflect.ValueOf(out), nil
}
