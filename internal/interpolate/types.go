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

// Package interpolate expands ${NAME} and ${NAME:default} references in
// configuration values.
package interpolate

import (
	"fmt"
	"os"
	"strings"
)

// A String is a sequence of terms. Literals render as-is and variables are
// looked up with a VariableResolver.
type (
	term interface {
		term()
	}

	literal string

	variable struct {
		Name       string
		Default    string
		HasDefault bool
	}
)

func (literal) term()  {}
func (variable) term() {}

// VariableResolver returns the value of a variable and whether it is set.
// Rendering an unset variable without a default fails.
type VariableResolver func(name string) (value string, ok bool)

// Env resolves variables from the process environment.
var Env VariableResolver = os.LookupEnv

// String is a parsed interpolatable string. Obtain one with Parse.
type String []term

// Render renders the string, resolving variables with resolve.
func (s String) Render(resolve VariableResolver) (string, error) {
	var b strings.Builder
	for _, t := range s {
		switch t := t.(type) {
		case literal:
			b.WriteString(string(t))
		case variable:
			if val, ok := resolve(t.Name); ok {
				b.WriteString(val)
			} else if t.HasDefault {
				b.WriteString(t.Default)
			} else {
				return "", errUnknownVariable{Name: t.Name}
			}
		}
	}
	return b.String(), nil
}

// HasVariables reports whether rendering s depends on a resolver.
func (s String) HasVariables() bool {
	for _, t := range s {
		if _, ok := t.(variable); ok {
			return true
		}
	}
	return false
}

type errUnknownVariable struct{ Name string }

func (e errUnknownVariable) Error() string {
	return fmt.Sprintf("variable %q does not have a value or a default", e.Name)
}
