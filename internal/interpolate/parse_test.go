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
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapResolver(m map[string]string) VariableResolver {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestParseSuccess(t *testing.T) {
	tests := []struct {
		give string
		want String
	}{
		{give: "", want: nil},
		{give: "vc.local", want: String{literal("vc.local")}},
		{
			give: "https://${VIM_HOST}/sdk",
			want: String{literal("https://"), variable{Name: "VIM_HOST"}, literal("/sdk")},
		},
		{
			give: "${VIM_USER:}",
			want: String{variable{Name: "VIM_USER", HasDefault: true}},
		},
		{
			give: "${user:Administrator@vsphere.local}",
			want: String{variable{Name: "user", HasDefault: true, Default: "Administrator@vsphere.local"}},
		},
		{
			give: "${a::b}",
			want: String{variable{Name: "a", HasDefault: true, Default: ":b"}},
		},
		{
			give: `pa\${ss}`,
			want: String{literal("pa${ss}")},
		},
		{
			give: "$5 ${b-a-r}",
			want: String{literal("$5 "), variable{Name: "b-a-r"}},
		},
		{
			give: "a$",
			want: String{literal("a$")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			out, err := Parse(tt.give)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []string{
		"${foo",
		"${}",
		"${:x}",
		"${foo.}",
		"${foo-}",
		"${foo--bar}",
		"${1foo}",
	}

	for _, tt := range tests {
		_, err := Parse(tt)
		assert.Error(t, err, tt)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		desc    string
		give    string
		vars    map[string]string
		want    string
		wantErr string
	}{
		{desc: "literal", give: "vc.local", want: "vc.local"},
		{
			desc: "set variable",
			give: "${VIM_HOST}:443",
			vars: map[string]string{"VIM_HOST": "vc.local"},
			want: "vc.local:443",
		},
		{
			desc: "set to empty beats default",
			give: "${VIM_USER:admin}",
			vars: map[string]string{"VIM_USER": ""},
			want: "",
		},
		{desc: "default", give: "${VIM_USER:admin}", want: "admin"},
		{
			desc:    "unset",
			give:    "${VIM_PASSWORD}",
			wantErr: `variable "VIM_PASSWORD" does not have a value or a default`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			s, err := Parse(tt.give)
			if !assert.NoError(t, err) {
				return
			}
			got, err := s.Render(mapResolver(tt.vars))
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasVariables(t *testing.T) {
	s, _ := Parse("plain")
	assert.False(t, s.HasVariables())
	s, _ = Parse("${X}")
	assert.True(t, s.HasVariables())
}
