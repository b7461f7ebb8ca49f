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

package vimsessionfx

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/vimsession"
	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/transport/transporttest"
	"go.uber.org/vimsession/vimsessionconfig"
	"go.uber.org/zap/zaptest"
)

func testConfig() vimsessionconfig.Config {
	cfg := vimsessionconfig.Default()
	cfg.Host = "vc.local"
	cfg.Username = "admin"
	cfg.Password = "x"
	return cfg
}

func TestNewConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: vc.local\nusername: admin\npassword: x\n"), 0o600))

	res, err := NewConfig(ConfigParams{URL: ConfigURL("file://" + path)})
	require.NoError(t, err)
	assert.Equal(t, testConfig(), res.Config)

	_, err = NewConfig(ConfigParams{URL: ConfigURL("file://" + filepath.Join(t.TempDir(), "missing.yaml"))})
	assert.Error(t, err)
}

func TestNewClientInvalidConfig(t *testing.T) {
	_, err := NewClient(ClientParams{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    vimsessionconfig.Config{},
	})
	assert.Error(t, err)
}

func TestNewClientLogsOutOnStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transporttest.NewMockTransport(ctrl)
	tr.EXPECT().SetEndpoint(gomock.Any()).AnyTimes()
	tr.EXPECT().SetSecurity(gomock.Any()).AnyTimes()
	tr.EXPECT().Close().Return(nil).AnyTimes()
	tr.EXPECT().LastResponseHeaders().Return(http.Header{"Set-Cookie": {"vmware_soap_session=abc"}}).AnyTimes()
	tr.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, vimsession.OperationRetrieveServiceContent)).
		Return(&transport.Response{Result: transport.Object{
			"returnval": transport.Object{"sessionManager": "SessionManager"},
		}}, nil)
	tr.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, vimsession.OperationLogin)).
		Return(&transport.Response{Result: transport.Object{
			"returnval": transport.Object{"userName": "admin"},
		}}, nil)
	tr.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, vimsession.OperationLogout)).
		Return(&transport.Response{}, nil)

	lc := fxtest.NewLifecycle(t)
	res, err := NewClient(ClientParams{
		Lifecycle: lc,
		Config:    testConfig(),
		Logger:    zaptest.NewLogger(t),
		Scope:     tally.NewTestScope("", nil),
		Factory: func(context.Context, string, transport.Options) (transport.Transport, error) {
			return tr, nil
		},
	})
	require.NoError(t, err)

	lc.RequireStart()
	_, err = res.Client.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, vimsession.StateReady, res.Client.State())

	lc.RequireStop()
	assert.Equal(t, vimsession.StateDisconnected, res.Client.State())
}

func TestModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("host = \"vc.local\"\nusername = \"admin\"\npassword = \"x\"\n"), 0o600))

	var client *vimsession.Client
	app := fxtest.New(t,
		fx.Supply(ConfigURL("file://"+path)),
		Module,
		fx.Populate(&client),
	)
	app.RequireStart().RequireStop()

	require.NotNil(t, client)
	assert.Equal(t, "vc.local", client.ConnectionInfo().Host)
}
