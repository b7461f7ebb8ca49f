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

package vimsession

import (
	"fmt"

	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/vimerrors"
)

// ConnectionInfo identifies the host and credential of a Client. It does
// not change for the lifetime of the Client.
type ConnectionInfo struct {
	Host     string
	User     string
	Password string

	// VerifyTLS enables verification of the server certificate. It is off
	// by default because management endpoints commonly present self-signed
	// certificates.
	VerifyTLS bool
}

// ServiceURI is the service description URI of the host.
func (i ConnectionInfo) ServiceURI() string {
	return fmt.Sprintf("https://%s/sdk/vimService.wsdl", i.Host)
}

// String formats the connection info without the password.
func (i ConnectionInfo) String() string {
	return fmt.Sprintf("{Host:%s User:%s Password:<redacted> VerifyTLS:%v}", i.Host, i.User, i.VerifyTLS)
}

// Session is the authenticated session returned by Login.
type Session struct {
	UserName string
	FullName string
	Key      string

	// Fields holds everything Login returned.
	Fields transport.Object
}

// ServiceContent is the result of the bootstrap RetrieveServiceContent
// call. It is held while the session lives.
type ServiceContent struct {
	RootFolder        transport.ManagedObjectReference
	PropertyCollector transport.ManagedObjectReference
	SessionManager    transport.ManagedObjectReference

	About transport.Object

	// Fields holds the whole returnval.
	Fields transport.Object
}

func returnval(res *transport.Response) (transport.Object, []byte) {
	if res == nil {
		return nil, nil
	}
	return res.Result.Object("returnval"), res.Raw
}

func newServiceContent(res *transport.Response) (*ServiceContent, error) {
	content, raw := returnval(res)
	if len(content) == 0 {
		return nil, vimerrors.Newf(vimerrors.CodeUnavailable,
			"%v returned no service content", OperationRetrieveServiceContent).WithDetails(raw)
	}

	if _, ok := content.Reference("sessionManager"); !ok {
		return nil, vimerrors.Newf(vimerrors.CodeUnavailable,
			"service content has no session manager").WithDetails(raw)
	}

	return &ServiceContent{
		RootFolder:        typedReference(content, "rootFolder", "Folder"),
		PropertyCollector: typedReference(content, "propertyCollector", "PropertyCollector"),
		SessionManager:    typedReference(content, "sessionManager", "SessionManager"),
		About:             content.Object("about"),
		Fields:            content,
	}, nil
}

// typedReference reads a reference, defaulting its type for responses that
// carry only the value.
func typedReference(o transport.Object, name, typ string) transport.ManagedObjectReference {
	ref, ok := o.Reference(name)
	if ok && ref.Type == "" {
		ref.Type = typ
	}
	return ref
}

func newSession(res *transport.Response) (*Session, error) {
	fields, raw := returnval(res)
	if len(fields) == 0 {
		return nil, vimerrors.Newf(vimerrors.CodeUnavailable,
			"%v returned no session", OperationLogin).WithDetails(raw)
	}
	return &Session{
		UserName: fields.String("userName"),
		FullName: fields.String("fullName"),
		Key:      fields.String("key"),
		Fields:   fields,
	}, nil
}
