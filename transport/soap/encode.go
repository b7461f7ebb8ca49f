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
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"go.uber.org/vimsession/transport"
)

const (
	envelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	operationIDHeader = "operationID"
)

// encodeEnvelope writes a SOAP 1.1 envelope for the given operation.
//
// A string value for the _this argument is sent as a reference whose type
// and value are both that string, which is how the well-known singletons
// ("ServiceInstance", "SessionManager") are addressed.
func encodeEnvelope(buf *bytes.Buffer, namespace, operationID, operation string, args transport.Args) error {
	if _, err := buf.WriteString(xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(buf)

	envelope := xml.StartElement{Name: xml.Name{Space: envelopeNamespace, Local: "Envelope"}}
	if err := enc.EncodeToken(envelope); err != nil {
		return err
	}

	if operationID != "" {
		header := xml.StartElement{Name: xml.Name{Space: envelopeNamespace, Local: "Header"}}
		if err := enc.EncodeToken(header); err != nil {
			return err
		}
		id := xml.StartElement{Name: xml.Name{Space: namespace, Local: operationIDHeader}}
		if err := encodeText(enc, id, operationID); err != nil {
			return err
		}
		if err := enc.EncodeToken(header.End()); err != nil {
			return err
		}
	}

	body := xml.StartElement{Name: xml.Name{Space: envelopeNamespace, Local: "Body"}}
	if err := enc.EncodeToken(body); err != nil {
		return err
	}
	op := xml.StartElement{Name: xml.Name{Space: namespace, Local: operation}}
	if err := enc.EncodeToken(op); err != nil {
		return err
	}
	for _, arg := range args {
		value := arg.Value
		if s, ok := value.(string); ok && arg.Name == transport.ThisArg {
			value = transport.ManagedObjectReference{Type: s, Value: s}
		}
		if err := encodeValue(enc, arg.Name, value); err != nil {
			return fmt.Errorf("encoding argument %q of %v: %v", arg.Name, operation, err)
		}
	}
	for _, end := range []xml.StartElement{op, body, envelope} {
		if err := enc.EncodeToken(end.End()); err != nil {
			return err
		}
	}
	return enc.Flush()
}

func encodeText(enc *xml.Encoder, start xml.StartElement, text string) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func encodeValue(enc *xml.Encoder, name string, value interface{}) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}

	switch v := value.(type) {
	case nil:
		return nil
	case transport.ManagedObjectReference:
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "type"}, Value: v.Type}}
		return encodeText(enc, start, v.Value)
	case *transport.ManagedObjectReference:
		if v == nil {
			return nil
		}
		return encodeValue(enc, name, *v)
	case string:
		return encodeText(enc, start, v)
	case bool:
		return encodeText(enc, start, strconv.FormatBool(v))
	case time.Time:
		return encodeText(enc, start, v.Format(time.RFC3339Nano))
	case []byte:
		return encodeText(enc, start, base64.StdEncoding.EncodeToString(v))
	case transport.Args:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, arg := range v {
			if err := encodeValue(enc, arg.Name, arg.Value); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	case transport.Object:
		return encodeMap(enc, start, v)
	case map[string]interface{}:
		return encodeMap(enc, start, v)
	case fmt.Stringer:
		return encodeText(enc, start, v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(enc, name, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return encodeValue(enc, name, rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return encodeText(enc, start, fmt.Sprint(value))
	}
	return fmt.Errorf("unsupported argument type %T", value)
}

// encodeMap writes map entries sorted by key with _this first, since maps
// carry no order of their own.
func encodeMap(enc *xml.Encoder, start xml.StartElement, m map[string]interface{}) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == transport.ThisArg || keys[j] == transport.ThisArg {
			return keys[i] == transport.ThisArg
		}
		return keys[i] < keys[j]
	})

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range keys {
		if err := encodeValue(enc, k, m[k]); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
