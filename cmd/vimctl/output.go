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
	"fmt"
	"io"
	"strings"

	"go.uber.org/vimsession"
	"go.uber.org/vimsession/transport"
	"gopkg.in/yaml.v2"
)

// parseArgs reads NAME=VALUE words into operation arguments, keeping their
// order. A value written @Type:Value is a managed object reference.
func parseArgs(words []string) (transport.Args, error) {
	args := transport.Args{}
	for _, w := range words {
		name, value, ok := strings.Cut(w, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q is not NAME=VALUE", w)
		}
		if !strings.HasPrefix(value, "@") {
			args = args.With(name, value)
			continue
		}
		typ, val, ok := strings.Cut(value[1:], ":")
		if !ok || typ == "" || val == "" {
			return nil, fmt.Errorf("reference %q of %v is not @Type:Value", value, name)
		}
		args = args.With(name, transport.ManagedObjectReference{Type: typ, Value: val})
	}
	return args, nil
}

func printResponse(w io.Writer, res *vimsession.Response, raw bool) error {
	if raw {
		_, err := fmt.Fprintf(w, "%s\n", res.Raw)
		return err
	}
	return printObject(w, res.Result)
}

func printObject(w io.Writer, o transport.Object) error {
	if len(o) == 0 {
		_, err := fmt.Fprintln(w, "{}")
		return err
	}
	out, err := yaml.Marshal(toYAML(o))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// toYAML renders references as "Type:Value" strings.
func toYAML(v interface{}) interface{} {
	switch v := v.(type) {
	case transport.Object:
		m := make(map[string]interface{}, len(v))
		for k, e := range v {
			m[k] = toYAML(e)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(v))
		for i, e := range v {
			l[i] = toYAML(e)
		}
		return l
	case transport.ManagedObjectReference:
		return v.String()
	default:
		return v
	}
}
