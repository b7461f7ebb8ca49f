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

package transport

import "fmt"

// ThisArg is the name of the argument that carries the managed object an
// operation is invoked on.
const ThisArg = "_this"

// Arg is a single named operation argument.
type Arg struct {
	Name  string
	Value interface{}
}

// Args is an ordered list of operation arguments.
//
// Order is significant: SOAP services validate arguments against a schema
// sequence, so arguments are encoded in the order they were added. Values
// may be strings, numbers, booleans, time.Time, ManagedObjectReference,
// nested Args, Object, map[string]interface{} or slices of those.
//
// A nil Args is an empty argument list.
type Args []Arg

// With returns a copy of the Args with the given argument appended.
//
//	args := transport.Args{}.With("_this", ref).With("userName", "admin")
func (a Args) With(name string, value interface{}) Args {
	out := make(Args, len(a), len(a)+1)
	copy(out, a)
	return append(out, Arg{Name: name, Value: value})
}

// Get returns the value of the first argument with the given name.
func (a Args) Get(name string) (interface{}, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Len returns the number of arguments.
func (a Args) Len() int {
	return len(a)
}

// ManagedObjectReference identifies an object on the remote service by type
// and server assigned value.
type ManagedObjectReference struct {
	Type  string
	Value string
}

// ServiceInstance is the well-known root object of the service.
var ServiceInstance = ManagedObjectReference{Type: "ServiceInstance", Value: "ServiceInstance"}

// IsZero reports whether the reference is empty.
func (r ManagedObjectReference) IsZero() bool {
	return r.Type == "" && r.Value == ""
}

func (r ManagedObjectReference) String() string {
	return fmt.Sprintf("%s:%s", r.Type, r.Value)
}
