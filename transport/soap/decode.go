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

package soap

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/vimerrors"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// decodeEnvelope parses a SOAP response. It returns the content of the
// operation response element, or the Fault carried in the body.
func decodeEnvelope(raw []byte) (transport.Object, *Fault, error) {
	d := newXMLDecoder(bytes.NewReader(raw))
	inBody := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, nil, vimerrors.InternalErrorf("response has no SOAP body")
		}
		if err != nil {
			return nil, nil, vimerrors.InternalErrorf("malformed SOAP response: %v", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !inBody {
			inBody = start.Name.Local == "Body"
			continue
		}

		if start.Name.Local == "Fault" {
			fault, err := decodeFault(d)
			if err != nil {
				return nil, nil, err
			}
			fault.raw = raw
			return nil, fault, nil
		}

		v, err := decodeElement(d, start)
		if err != nil {
			return nil, nil, vimerrors.InternalErrorf("malformed SOAP response: %v", err)
		}
		if obj := transport.AsObject(v); obj != nil {
			return obj, nil, nil
		}
		// Operations without a return value answer with an empty element.
		return transport.Object{}, nil, nil
	}
}

// decodeElement decodes the element opened by start into a string, a
// ManagedObjectReference or an Object.
func decodeElement(d *xml.Decoder, start xml.StartElement) (interface{}, error) {
	var (
		text     strings.Builder
		children transport.Object
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := decodeElement(d, t)
			if err != nil {
				return nil, err
			}
			if children == nil {
				children = transport.Object{}
			}
			addChild(children, t.Name.Local, v)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if children != nil {
				return children, nil
			}
			if typ, ok := attr(start, "", "type"); ok {
				return transport.ManagedObjectReference{Type: typ, Value: text.String()}, nil
			}
			return text.String(), nil
		}
	}
}

func addChild(children transport.Object, name string, v interface{}) {
	existing, ok := children[name]
	if !ok {
		children[name] = v
		return
	}
	if list, ok := existing.([]interface{}); ok {
		children[name] = append(list, v)
		return
	}
	children[name] = []interface{}{existing, v}
}

func attr(start xml.StartElement, space, local string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func decodeFault(d *xml.Decoder) (*Fault, error) {
	fault := &Fault{}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, vimerrors.InternalErrorf("malformed SOAP fault: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "detail" {
				if err := decodeFaultDetail(d, fault); err != nil {
					return nil, vimerrors.InternalErrorf("malformed SOAP fault detail: %v", err)
				}
				continue
			}
			v, err := decodeElement(d, t)
			if err != nil {
				return nil, vimerrors.InternalErrorf("malformed SOAP fault: %v", err)
			}
			s, _ := v.(string)
			switch t.Name.Local {
			case "faultcode":
				fault.Code = strings.TrimSpace(s)
			case "faultstring":
				fault.String = strings.TrimSpace(s)
			}
		case xml.EndElement:
			return fault, nil
		}
	}
}

func decodeFaultDetail(d *xml.Decoder, fault *Fault) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := decodeElement(d, t)
			if err != nil {
				return err
			}
			if fault.Type != "" {
				continue
			}
			fault.Type = strings.TrimSuffix(t.Name.Local, "Fault")
			if typ, ok := attr(t, xsiNamespace, "type"); ok {
				fault.Type = typ[strings.IndexByte(typ, ':')+1:]
			}
			fault.Detail = transport.AsObject(v)
		case xml.EndElement:
			return nil
		}
	}
}
