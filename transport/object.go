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

// Object is a decoded response element.
//
// Leaf elements are strings, elements with a "type" attribute and text
// content are ManagedObjectReference values, nested elements are Object
// values and repeated elements are []interface{}.
type Object map[string]interface{}

// Get returns the named value.
func (o Object) Get(name string) (interface{}, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o[name]
	return v, ok
}

// String returns the named value as a string. Non-string values are
// formatted with fmt.
func (o Object) String(name string) string {
	v, ok := o.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Object returns the named nested Object, or nil.
func (o Object) Object(name string) Object {
	v, _ := o.Get(name)
	return AsObject(v)
}

// Reference returns the named value as a ManagedObjectReference. A plain
// string is taken as the reference value with an empty type.
func (o Object) Reference(name string) (ManagedObjectReference, bool) {
	v, ok := o.Get(name)
	if !ok {
		return ManagedObjectReference{}, false
	}
	switch ref := v.(type) {
	case ManagedObjectReference:
		return ref, true
	case *ManagedObjectReference:
		if ref == nil {
			return ManagedObjectReference{}, false
		}
		return *ref, true
	case string:
		return ManagedObjectReference{Value: ref}, ref != ""
	}
	return ManagedObjectReference{}, false
}

// AsObject converts v to an Object if it is one, or a
// map[string]interface{}. It returns nil otherwise.
func AsObject(v interface{}) Object {
	switch o := v.(type) {
	case Object:
		return o
	case map[string]interface{}:
		return Object(o)
	}
	return nil
}
