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
	"context"
	"encoding/xml"
	"io"
	"io/ioutil"
	"net/http"

	"go.uber.org/vimsession/vimerrors"
	"golang.org/x/net/html/charset"
)

// DefaultNamespace is the XML namespace of operation elements when the
// service description does not import one.
const DefaultNamespace = "urn:vim25"

// Description is what a transport learned from the service description.
type Description struct {
	// TargetNamespace of the service description document.
	TargetNamespace string

	// Namespace of the operation elements.
	Namespace string

	// Service and Port name the first service port in the description.
	Service string
	Port    string

	// Location is the SOAP address of the port.
	Location string
}

type wsdlDefinitions struct {
	TargetNamespace string        `xml:"targetNamespace,attr"`
	Imports         []wsdlImport  `xml:"import"`
	Services        []wsdlService `xml:"service"`
}

type wsdlImport struct {
	Namespace string `xml:"namespace,attr"`
	Location  string `xml:"location,attr"`
}

type wsdlService struct {
	Name  string     `xml:"name,attr"`
	Ports []wsdlPort `xml:"port"`
}

type wsdlPort struct {
	Name    string `xml:"name,attr"`
	Address struct {
		Location string `xml:"location,attr"`
	} `xml:"address"`
}

func newXMLDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// parseDescription reads a WSDL document.
func parseDescription(body []byte) (*Description, error) {
	var defs wsdlDefinitions
	if err := newXMLDecoder(bytes.NewReader(body)).Decode(&defs); err != nil {
		return nil, vimerrors.InvalidArgumentErrorf("malformed service description: %v", err)
	}
	if len(defs.Services) == 0 || len(defs.Services[0].Ports) == 0 {
		return nil, vimerrors.InvalidArgumentErrorf("service description declares no service port")
	}

	svc := defs.Services[0]
	port := svc.Ports[0]
	desc := &Description{
		TargetNamespace: defs.TargetNamespace,
		Namespace:       DefaultNamespace,
		Service:         svc.Name,
		Port:            port.Name,
		Location:        port.Address.Location,
	}
	for _, imp := range defs.Imports {
		if imp.Namespace != "" {
			desc.Namespace = imp.Namespace
			break
		}
	}
	return desc, nil
}

// fetchDescription downloads and parses the service description at uri.
func fetchDescription(ctx context.Context, client *http.Client, uri string) (*Description, error) {
	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, vimerrors.InvalidArgumentErrorf("invalid service description URL %q: %v", uri, err)
	}
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, vimerrors.DeadlineExceededErrorf("fetching service description %q: %v", uri, ctx.Err())
		default:
		}
		return nil, vimerrors.Wrap(vimerrors.CodeUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, vimerrors.Wrap(vimerrors.CodeUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, vimerrors.Newf(vimerrors.CodeFromHTTPStatus(resp.StatusCode),
			"fetching service description %q: %v", uri, resp.Status).WithDetails(body)
	}
	return parseDescription(body)
}
