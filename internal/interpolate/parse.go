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

package interpolate

import (
	"fmt"
	"strings"
)

// Parse parses s into a String.
//
// Variables are written ${NAME} or ${NAME:default}. Names start with a
// letter or underscore and may contain letters, digits, underscores and
// single dashes between them. A backslash before a dollar sign makes it
// literal. A dollar sign not followed by a brace is literal.
func Parse(s string) (String, error) {
	var (
		out String
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, literal(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == '$':
			lit.WriteByte('$')
			i++
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated variable at offset %d in %q", i, s)
			}
			v, err := parseVariable(s[i+2 : i+2+end])
			if err != nil {
				return nil, fmt.Errorf("invalid variable at offset %d in %q: %v", i, s, err)
			}
			flush()
			out = append(out, v)
			i += 2 + end
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return out, nil
}

func parseVariable(body string) (variable, error) {
	name, def, hasDefault := body, "", false
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		name, def, hasDefault = body[:idx], body[idx+1:], true
	}
	if err := validateName(name); err != nil {
		return variable{}, err
	}
	return variable{Name: name, Default: def, HasDefault: hasDefault}, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || isLetter(c):
		case isDigit(c) && i > 0:
		case c == '-' && i > 0 && i < len(name)-1 && name[i-1] != '-':
		default:
			return fmt.Errorf("unexpected %q in name %q", c, name)
		}
	}
	return nil
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
