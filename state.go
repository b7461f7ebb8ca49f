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

import "fmt"

// State is the connection state of a Client.
type State int

const (
	// StateDisconnected is the initial state, and the state after Close, a
	// failed connect or an expired session.
	StateDisconnected State = iota
	// StateConnecting means a connect is in progress.
	StateConnecting
	// StateReady means the session is authenticated.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// event is something that moves a Client between states.
type event int

const (
	eventConnect event = iota + 1
	eventConnected
	eventConnectFailed
	eventAuthExpired
	eventLogout
	eventClose
)

func (e event) String() string {
	switch e {
	case eventConnect:
		return "connect"
	case eventConnected:
		return "connected"
	case eventConnectFailed:
		return "connect failed"
	case eventAuthExpired:
		return "auth expired"
	case eventLogout:
		return "logout"
	case eventClose:
		return "close"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

type transitionKey struct {
	from State
	on   event
}

var _transitions = map[transitionKey]State{
	{StateDisconnected, eventConnect}:     StateConnecting,
	{StateConnecting, eventConnected}:     StateReady,
	{StateConnecting, eventConnectFailed}: StateDisconnected,
	{StateConnecting, eventAuthExpired}:   StateDisconnected,
	{StateReady, eventAuthExpired}:        StateDisconnected,
	{StateDisconnected, eventAuthExpired}: StateDisconnected,
	{StateConnecting, eventLogout}:        StateDisconnected,
	{StateReady, eventLogout}:             StateDisconnected,
	{StateDisconnected, eventLogout}:      StateDisconnected,
	{StateConnecting, eventClose}:         StateDisconnected,
	{StateReady, eventClose}:              StateDisconnected,
	{StateDisconnected, eventClose}:       StateDisconnected,
}

// next returns the state reached from s on e.
func (s State) next(e event) (State, error) {
	to, ok := _transitions[transitionKey{s, e}]
	if !ok {
		return s, fmt.Errorf("illegal transition from %v on %v", s, e)
	}
	return to, nil
}
