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
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"
	"go.uber.org/vimsession/internal/backoff"
	"go.uber.org/vimsession/transport"
	"go.uber.org/vimsession/transport/soap"
	"go.uber.org/vimsession/transport/transporttest"
	"go.uber.org/vimsession/vimerrors"
	"go.uber.org/zap"
	zapobserver "go.uber.org/zap/zaptest/observer"
)

var (
	_sessionManager = transport.ManagedObjectReference{Type: "SessionManager", Value: "SM-1"}

	_loginArgs = transport.Args{}.
			With(transport.ThisArg, _sessionManager).
			With("userName", "admin").
			With("password", "x")

	_bootstrapArgs = transport.Args{}.With(transport.ThisArg, transport.ServiceInstance)
)

func serviceContentResponse() *transport.Response {
	return &transport.Response{
		Result: transport.Object{
			"returnval": transport.Object{
				"rootFolder":     transport.ManagedObjectReference{Type: "Folder", Value: "group-d1"},
				"sessionManager": "SM-1",
				"about":          transport.Object{"apiVersion": "7.0.3.0"},
			},
		},
	}
}

func loginResponse() *transport.Response {
	return &transport.Response{
		Result: transport.Object{
			"returnval": transport.Object{
				"key":      "52a1",
				"userName": "admin",
				"fullName": "Administrator",
			},
		},
	}
}

func sessionExpired() error {
	return &soap.Fault{
		Code:   "ServerFaultCode",
		String: "The session is not authenticated.",
		Type:   "NotAuthenticated",
	}
}

type fixture struct {
	t         *testing.T
	transport *transporttest.MockTransport
	client    *Client
	scope     tally.TestScope
	logs      *zapobserver.ObservedLogs

	dials  atomic.Int32
	onDial func()

	mu          sync.Mutex
	dialURI     string
	dialOptions transport.Options
	headers     http.Header
}

func newFixture(t *testing.T, info ConnectionInfo, opts ...Option) *fixture {
	ctrl := gomock.NewController(t)
	core, logs := zapobserver.New(zap.DebugLevel)
	f := &fixture{
		t:         t,
		transport: transporttest.NewMockTransport(ctrl),
		scope:     tally.NewTestScope("", nil),
		logs:      logs,
		headers: http.Header{
			"Set-Cookie": {`vmware_soap_session="52a1"; Path=/; HttpOnly; Secure`},
		},
	}

	factory := func(ctx context.Context, uri string, o transport.Options) (transport.Transport, error) {
		f.dials.Inc()
		f.mu.Lock()
		f.dialURI, f.dialOptions = uri, o
		f.mu.Unlock()
		if f.onDial != nil {
			f.onDial()
		}
		return f.transport, nil
	}
	opts = append([]Option{
		WithTransportFactory(factory),
		WithLogger(zap.New(core)),
		WithTally(f.scope),
	}, opts...)

	client, err := New(info, opts...)
	require.NoError(t, err)
	f.client = client

	f.transport.EXPECT().SetEndpoint("https://vc.local/sdk/vimService.wsdl").AnyTimes()
	f.transport.EXPECT().SetSecurity(gomock.Any()).AnyTimes()
	f.transport.EXPECT().Close().Return(nil).AnyTimes()
	f.transport.EXPECT().LastResponseHeaders().DoAndReturn(func() http.Header {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.headers
	}).AnyTimes()
	return f
}

func defaultInfo() ConnectionInfo {
	return ConnectionInfo{Host: "vc.local", User: "admin", Password: "x"}
}

// expectConnect expects times bootstrap and login sequences.
func (f *fixture) expectConnect(times int) {
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(f.t, OperationRetrieveServiceContent,
			transporttest.RequestArgs(_bootstrapArgs))).
		Return(serviceContentResponse(), nil).
		Times(times)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(f.t, OperationLogin,
			transporttest.RequestArgs(_loginArgs))).
		Return(loginResponse(), nil).
		Times(times)
}

func (f *fixture) counter(name string) int64 {
	c, ok := f.scope.Snapshot().Counters()[name+"+host=vc.local"]
	if !ok {
		return 0
	}
	return c.Value()
}

func TestNewValidation(t *testing.T) {
	_, err := New(ConnectionInfo{}, WithReconnectLimit(0), WithTimeout(0), WithTransportFactory(nil))
	require.Error(t, err)
	for _, msg := range []string{
		"host is required",
		"user is required",
		"password is required",
		"reconnect limit must be at least 1, got 0",
		"timeout must be positive, got 0s",
		"transport factory is required",
	} {
		assert.Contains(t, err.Error(), msg)
	}

	client, err := New(defaultInfo(), WithLogger(nil), WithTally(nil), WithReconnectBackoff(nil))
	require.NoError(t, err)
	assert.Equal(t, StateDisconnected, client.State())
	assert.Nil(t, client.Session())
	assert.Equal(t, defaultInfo(), client.ConnectionInfo())
}

func TestConnect(t *testing.T) {
	f := newFixture(t, defaultInfo())
	f.expectConnect(1)

	session, err := f.client.Connect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "admin", session.UserName)
	assert.Equal(t, "Administrator", session.FullName)
	assert.Equal(t, "52a1", session.Key)
	assert.Equal(t, loginResponse().Result.Object("returnval"), session.Fields)
	assert.Equal(t, StateReady, f.client.State())
	assert.Same(t, session, f.client.Session())
	assert.Equal(t, 0, f.client.ReconnectCount())

	content := f.client.ServiceContent()
	require.NotNil(t, content)
	assert.Equal(t, _sessionManager, content.SessionManager)
	assert.Equal(t, transport.ManagedObjectReference{Type: "Folder", Value: "group-d1"}, content.RootFolder)
	assert.True(t, content.PropertyCollector.IsZero())
	assert.Equal(t, "7.0.3.0", content.About.String("apiVersion"))

	assert.Equal(t, "https://vc.local/sdk/vimService.wsdl", f.dialURI)
	assert.True(t, f.dialOptions.InsecureSkipVerify, "certificates are not verified by default")
	assert.True(t, f.dialOptions.LegacyTLS)
	assert.Equal(t, DefaultTimeout, f.dialOptions.Timeout)

	assert.Equal(t, int64(1), f.counter("connects"))
	assert.Equal(t, 1, f.logs.FilterMessage("session established").Len())

	t.Run("again while ready", func(t *testing.T) {
		again, err := f.client.Connect(context.Background())
		require.NoError(t, err)
		assert.Same(t, session, again)
		assert.Equal(t, int32(1), f.dials.Load())
	})
}

func TestConnectVerifyTLS(t *testing.T) {
	info := defaultInfo()
	info.VerifyTLS = true
	f := newFixture(t, info)
	f.transport.EXPECT().Call(gomock.Any(), gomock.Any()).
		Return(nil, vimerrors.UnavailableErrorf("x509: certificate signed by unknown authority"))

	_, err := f.client.Connect(context.Background())
	require.Error(t, err)
	assert.False(t, f.dialOptions.InsecureSkipVerify)
	assert.False(t, f.dialOptions.LegacyTLS)
	assert.Equal(t, StateDisconnected, f.client.State())
	assert.Equal(t, int64(1), f.counter("connect_failures"))
}

func TestConnectDialFails(t *testing.T) {
	dialErr := vimerrors.UnavailableErrorf("dial tcp: no route to host")
	client, err := New(defaultInfo(), WithTransportFactory(
		func(context.Context, string, transport.Options) (transport.Transport, error) {
			return nil, dialErr
		}))
	require.NoError(t, err)

	_, err = client.Connect(context.Background())
	assert.Equal(t, dialErr, err)
	assert.Equal(t, StateDisconnected, client.State())
}

func TestConnectEmptyBootstrap(t *testing.T) {
	tests := []struct {
		desc string
		give *transport.Response
		want string
	}{
		{
			desc: "nil response",
			want: "RetrieveServiceContent returned no service content",
		},
		{
			desc: "empty result",
			give: &transport.Response{Result: transport.Object{}, Raw: []byte("<empty/>")},
			want: "RetrieveServiceContent returned no service content",
		},
		{
			desc: "empty returnval",
			give: &transport.Response{Result: transport.Object{"returnval": ""}},
			want: "RetrieveServiceContent returned no service content",
		},
		{
			desc: "no session manager",
			give: &transport.Response{Result: transport.Object{
				"returnval": transport.Object{"rootFolder": "group-d1"},
			}},
			want: "service content has no session manager",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f := newFixture(t, defaultInfo())
			f.transport.EXPECT().
				Call(gomock.Any(), transporttest.NewRequestMatcher(t, OperationRetrieveServiceContent)).
				Return(tt.give, nil)

			session, err := f.client.Connect(context.Background())
			require.Error(t, err)
			assert.Nil(t, session)
			assert.True(t, vimerrors.IsUnavailable(err))
			assert.Equal(t, tt.want, vimerrors.ErrorMessage(err))
			if tt.give != nil && tt.give.Raw != nil {
				assert.Equal(t, tt.give.Raw, vimerrors.FromError(err).Details())
			}
			assert.Equal(t, StateDisconnected, f.client.State())
			assert.Nil(t, f.client.Session())
			assert.Nil(t, f.client.ServiceContent())
		})
	}
}

func TestConnectLoginFails(t *testing.T) {
	f := newFixture(t, defaultInfo())
	loginErr := &soap.Fault{Code: "ServerFaultCode", String: "Cannot complete login due to an incorrect user name or password.", Type: "InvalidLogin"}
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, OperationRetrieveServiceContent)).
		Return(serviceContentResponse(), nil)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, OperationLogin)).
		Return(nil, loginErr)

	_, err := f.client.Connect(context.Background())
	assert.Equal(t, loginErr, err)
	assert.True(t, vimerrors.IsUnauthenticated(err))
	assert.Equal(t, StateDisconnected, f.client.State())
	assert.Equal(t, 1, f.logs.FilterMessage("connect failed").Len())
}

func TestConnectWithoutSessionCookie(t *testing.T) {
	f := newFixture(t, defaultInfo())
	f.headers = http.Header{}
	f.expectConnect(1)

	_, err := f.client.Connect(context.Background())
	assert.True(t, vimerrors.IsUnauthenticated(err))
	assert.Equal(t, StateDisconnected, f.client.State())
	assert.Nil(t, f.client.Session())
}

func TestConnectConcurrent(t *testing.T) {
	var (
		entered = make(chan struct{})
		release = make(chan struct{})
		once    sync.Once
	)
	f := newFixture(t, defaultInfo())
	f.onDial = func() {
		once.Do(func() { close(entered) })
		<-release
	}
	f.expectConnect(1)

	var (
		wg       sync.WaitGroup
		sessions [2]*Session
		errs     [2]error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions[0], errs[0] = f.client.Connect(context.Background())
	}()
	<-entered
	assert.Equal(t, StateConnecting, f.client.State())

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions[1], errs[1] = f.client.Connect(context.Background())
	}()
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Same(t, sessions[0], sessions[1])
	assert.Equal(t, int32(1), f.dials.Load(), "exactly one connect sequence")
}

func TestConnectWaitRespectsContext(t *testing.T) {
	var (
		entered = make(chan struct{})
		release = make(chan struct{})
	)
	f := newFixture(t, defaultInfo())
	f.onDial = func() {
		close(entered)
		<-release
	}
	f.expectConnect(1)

	done := make(chan error, 1)
	go func() {
		_, err := f.client.Connect(context.Background())
		done <- err
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.client.Connect(ctx)
	assert.Equal(t, vimerrors.CodeCancelled, vimerrors.ErrorCode(err))

	close(release)
	assert.NoError(t, <-done)
}

func TestRunCommandColdClient(t *testing.T) {
	f := newFixture(t, defaultInfo())
	f.expectConnect(1)
	want := &transport.Response{
		Result: transport.Object{"returnval": "2026-10-19T10:00:00Z"},
		Raw:    []byte("<raw/>"),
		Header: http.Header{"Content-Type": {"text/xml"}},
	}
	args := transport.Args{}.With(transport.ThisArg, transport.ServiceInstance)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, "CurrentTime",
			transporttest.RequestArgs(args),
			transporttest.RequestTimeout(DefaultTimeout))).
		Return(want, nil)

	res, err := f.client.RunCommand(context.Background(), "CurrentTime", args)
	require.NoError(t, err)
	assert.Same(t, want, res)
	assert.Equal(t, StateReady, f.client.State())
	assert.Equal(t, int64(1), f.counter("calls"))
	assert.Equal(t, int64(1), f.counter("successes"))
}

func TestRunCommandNilArgs(t *testing.T) {
	f := newFixture(t, defaultInfo())
	f.expectConnect(1)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, "RetrieveProperties",
			transporttest.RequestArgs(nil))).
		Return(&transport.Response{Result: transport.Object{}}, nil).
		Times(2)

	_, err := f.client.RunCommand(context.Background(), "RetrieveProperties", nil)
	require.NoError(t, err)
	_, err = f.client.RunCommand(context.Background(), "RetrieveProperties", transport.Args{})
	require.NoError(t, err)
}

func TestRunCommandCallTimeout(t *testing.T) {
	f := newFixture(t, defaultInfo(), WithTimeout(time.Minute))
	f.expectConnect(1)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, "WaitForUpdatesEx",
			transporttest.RequestTimeout(5*time.Minute))).
		Return(&transport.Response{}, nil)

	_, err := f.client.RunCommand(context.Background(), "WaitForUpdatesEx", nil, CallTimeout(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, f.dialOptions.Timeout)
}

func TestRunCommandRetriesExpiredSession(t *testing.T) {
	tests := []struct {
		desc     string
		limit    int
		expiries int
	}{
		{desc: "one expiry", limit: DefaultReconnectLimit, expiries: 1},
		{desc: "several expiries", limit: DefaultReconnectLimit, expiries: 4},
		{desc: "one below the limit", limit: DefaultReconnectLimit, expiries: DefaultReconnectLimit - 1},
		{desc: "small limit", limit: 2, expiries: 1},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f := newFixture(t, defaultInfo(), WithReconnectLimit(tt.limit))
			f.expectConnect(tt.expiries + 1)
			op := transporttest.NewRequestMatcher(t, "CreateContainerView")
			f.transport.EXPECT().Call(gomock.Any(), op).Return(nil, sessionExpired()).Times(tt.expiries)
			f.transport.EXPECT().Call(gomock.Any(), op).
				Return(&transport.Response{Result: transport.Object{"returnval": "session[1]"}}, nil)

			res, err := f.client.RunCommand(context.Background(), "CreateContainerView", nil)
			require.NoError(t, err)
			assert.Equal(t, "session[1]", res.Result.String("returnval"))
			assert.Equal(t, StateReady, f.client.State())
			assert.Equal(t, 0, f.client.ReconnectCount())
			assert.Equal(t, int64(tt.expiries), f.counter("auth_expired"))
			assert.Equal(t, int64(tt.expiries), f.counter("reconnects"))
			assert.Equal(t, tt.expiries, f.logs.FilterMessage("session expired, logging in again").Len())
		})
	}
}

func TestRunCommandExhaustsReconnects(t *testing.T) {
	const limit = 3
	f := newFixture(t, defaultInfo(), WithReconnectLimit(limit))
	f.expectConnect(limit + 1)
	expired := sessionExpired()
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, "RetrievePropertiesEx")).
		Return(nil, expired).
		Times(limit)

	_, err := f.client.RunCommand(context.Background(), "RetrievePropertiesEx", nil)
	assert.Equal(t, expired, err)
	assert.Equal(t, StateDisconnected, f.client.State())
	assert.Nil(t, f.client.Session())
	assert.Equal(t, limit, f.client.ReconnectCount())
	assert.Equal(t, int64(1), f.counter("reconnects_exhausted"))
	assert.Equal(t, int64(1), f.counter("failures"))
	assert.Equal(t, 1, f.logs.FilterMessage("session expired too many times in a row").Len())

	_, err = f.client.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, f.client.State())
	assert.Equal(t, 0, f.client.ReconnectCount(), "an explicit connect starts a new count")
}

func TestRunCommandOtherErrorsNotRetried(t *testing.T) {
	tests := []struct {
		desc string
		give error
	}{
		{desc: "unavailable", give: vimerrors.UnavailableErrorf("connection refused")},
		{desc: "fault", give: &soap.Fault{Code: "ServerFaultCode", String: "The object has already been deleted", Type: "ManagedObjectNotFound"}},
		{desc: "timeout", give: vimerrors.DeadlineExceededErrorf("call to PowerOnVM_Task timed out")},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f := newFixture(t, defaultInfo())
			f.expectConnect(1)
			f.transport.EXPECT().
				Call(gomock.Any(), transporttest.NewRequestMatcher(t, "PowerOnVM_Task")).
				Return(nil, tt.give)

			_, err := f.client.RunCommand(context.Background(), "PowerOnVM_Task", nil)
			assert.Equal(t, tt.give, err)
			assert.Equal(t, StateReady, f.client.State())
			assert.Equal(t, 0, f.client.ReconnectCount())
		})
	}
}

func TestRunCommandLogoutDisconnects(t *testing.T) {
	f := newFixture(t, defaultInfo())
	f.expectConnect(1)
	logoutArgs := transport.Args{}.With(transport.ThisArg, _sessionManager)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, OperationLogout, transporttest.RequestArgs(logoutArgs))).
		Return(&transport.Response{Result: transport.Object{}}, nil)

	_, err := f.client.Connect(context.Background())
	require.NoError(t, err)

	_, err = f.client.RunCommand(context.Background(), OperationLogout, logoutArgs)
	require.NoError(t, err)
	assert.Equal(t, StateDisconnected, f.client.State())
	assert.Nil(t, f.client.Session())
	assert.Nil(t, f.client.ServiceContent())
}

func TestRunCommandLogoutWhileConnecting(t *testing.T) {
	var (
		entered = make(chan struct{})
		release = make(chan struct{})
	)
	f := newFixture(t, defaultInfo())
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, OperationRetrieveServiceContent,
			transporttest.RequestArgs(_bootstrapArgs))).
		DoAndReturn(func(context.Context, *transport.Request) (*transport.Response, error) {
			close(entered)
			<-release
			return nil, vimerrors.UnavailableErrorf("connection reset")
		})
	logoutArgs := transport.Args{}.With(transport.ThisArg, _sessionManager)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, OperationLogout, transporttest.RequestArgs(logoutArgs))).
		Return(&transport.Response{Result: transport.Object{}}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.client.Connect(context.Background())
		done <- err
	}()
	<-entered
	require.Equal(t, StateConnecting, f.client.State())

	_, err := f.client.RunCommand(context.Background(), OperationLogout, logoutArgs)
	require.NoError(t, err)
	assert.Equal(t, StateDisconnected, f.client.State())

	close(release)
	err = <-done
	assert.True(t, vimerrors.IsUnavailable(err), "unexpected error %v", err)
	assert.Equal(t, StateDisconnected, f.client.State())
	assert.Nil(t, f.client.Session())
}

func TestRunCommandInvalidState(t *testing.T) {
	f := newFixture(t, defaultInfo())
	f.client.state = State(42)

	_, err := f.client.RunCommand(context.Background(), "CurrentTime", nil)
	require.Error(t, err)
	assert.True(t, vimerrors.IsFailedPrecondition(err))
	assert.Equal(t, "invalid connection state State(42) for host vc.local", vimerrors.ErrorMessage(err))
}

func TestRunCommandCancelled(t *testing.T) {
	f := newFixture(t, defaultInfo())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.client.RunCommand(ctx, "CurrentTime", nil)
	assert.Equal(t, vimerrors.CodeCancelled, vimerrors.ErrorCode(err))
	assert.Equal(t, int32(0), f.dials.Load())
}

type recordingStrategy struct {
	mu       sync.Mutex
	attempts []uint
}

func (s *recordingStrategy) Backoff() backoff.Backoff { return s }

func (s *recordingStrategy) Duration(attempts uint) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempts)
	return 0
}

func TestRunCommandReconnectBackoff(t *testing.T) {
	strategy := &recordingStrategy{}
	f := newFixture(t, defaultInfo(), WithReconnectBackoff(strategy))
	f.expectConnect(3)
	op := transporttest.NewRequestMatcher(t, "FindByInventoryPath")
	f.transport.EXPECT().Call(gomock.Any(), op).Return(nil, sessionExpired()).Times(2)
	f.transport.EXPECT().Call(gomock.Any(), op).Return(&transport.Response{}, nil)

	_, err := f.client.RunCommand(context.Background(), "FindByInventoryPath", nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{0, 1}, strategy.attempts)
}

func TestRunCommandRateLimited(t *testing.T) {
	f := newFixture(t, defaultInfo(), WithRateLimit(0, 0))

	_, err := f.client.RunCommand(context.Background(), "CurrentTime", nil)
	assert.Equal(t, vimerrors.CodeResourceExhausted, vimerrors.ErrorCode(err))
	assert.Equal(t, StateDisconnected, f.client.State())
}

func TestCall(t *testing.T) {
	f := newFixture(t, defaultInfo())
	f.expectConnect(1)
	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, "CurrentTime")).
		Return(&transport.Response{Result: transport.Object{"returnval": "now"}, Raw: []byte("<raw/>")}, nil)

	result, err := f.client.Call(context.Background(), "CurrentTime", nil)
	require.NoError(t, err)
	assert.Equal(t, transport.Object{"returnval": "now"}, result)

	f.transport.EXPECT().
		Call(gomock.Any(), transporttest.NewRequestMatcher(t, "CurrentTime")).
		Return(nil, vimerrors.UnavailableErrorf("gone"))
	result, err = f.client.Call(context.Background(), "CurrentTime", nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestClose(t *testing.T) {
	logoutArgs := transport.Args{}.With(transport.ThisArg, _sessionManager)

	t.Run("disconnected", func(t *testing.T) {
		f := newFixture(t, defaultInfo())
		assert.NoError(t, f.client.Close(context.Background()))
		assert.NoError(t, f.client.Close(context.Background()))
		assert.Equal(t, StateDisconnected, f.client.State())
		assert.Equal(t, 0, f.logs.Len())
	})

	tests := []struct {
		desc      string
		logoutErr error
	}{
		{desc: "logout succeeds"},
		{desc: "logout fails", logoutErr: sessionExpired()},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f := newFixture(t, defaultInfo())
			f.expectConnect(1)
			_, err := f.client.Connect(context.Background())
			require.NoError(t, err)

			f.transport.EXPECT().
				Call(gomock.Any(), transporttest.NewRequestMatcher(t, OperationLogout, transporttest.RequestArgs(logoutArgs))).
				Return(&transport.Response{}, tt.logoutErr).
				Times(1)

			assert.NoError(t, f.client.Close(context.Background()))
			assert.Equal(t, StateDisconnected, f.client.State())
			assert.Nil(t, f.client.Session())
			assert.Equal(t, 1, f.logs.FilterMessage("session closed").Len())
			if tt.logoutErr != nil {
				assert.Equal(t, 1, f.logs.FilterMessage("logout failed").Len())
			}
		})
	}
}

func TestCloseWhileConnecting(t *testing.T) {
	var (
		entered = make(chan struct{})
		release = make(chan struct{})
	)
	f := newFixture(t, defaultInfo())
	f.onDial = func() {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.client.Connect(context.Background())
		done <- err
	}()
	<-entered

	require.NoError(t, f.client.Close(context.Background()))
	assert.Equal(t, StateDisconnected, f.client.State())

	close(release)
	err := <-done
	assert.Equal(t, vimerrors.CodeCancelled, vimerrors.ErrorCode(err))
	assert.Equal(t, StateDisconnected, f.client.State())
}

type bodyErr struct{ msg, body string }

func (e bodyErr) Error() string { return e.msg }
func (e bodyErr) Body() string  { return e.body }

func TestIsAuthExpired(t *testing.T) {
	tests := []struct {
		desc string
		give error
		want bool
	}{
		{desc: "nil", give: nil},
		{desc: "fault", give: sessionExpired(), want: true},
		{desc: "status", give: vimerrors.UnauthenticatedErrorf("The session is not authenticated."), want: true},
		{desc: "body only", give: bodyErr{msg: "500 Internal Server Error", body: "<faultstring>The session is not authenticated.</faultstring>"}, want: true},
		{desc: "case sensitive", give: vimerrors.UnauthenticatedErrorf("Session Is Not Authenticated")},
		{desc: "invalid login", give: vimerrors.UnauthenticatedErrorf("incorrect user name or password")},
		{desc: "other body", give: bodyErr{msg: "bad", body: "<faultstring>bad</faultstring>"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, isAuthExpired(tt.give))
		})
	}
}

func TestClassifyNilError(t *testing.T) {
	f := newFixture(t, defaultInfo())
	exp, err := f.client.classify(nil, "CurrentTime", nil)
	assert.Equal(t, errGeneral, err)
	assert.Equal(t, 0, exp.reconnects)
	assert.Equal(t, StateDisconnected, f.client.State())
}

func TestConnectionInfoString(t *testing.T) {
	info := ConnectionInfo{Host: "vc.local", User: "admin", Password: "hunter2"}
	assert.NotContains(t, info.String(), "hunter2")
	assert.Contains(t, info.String(), "vc.local")
}
