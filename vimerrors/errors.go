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

// Package vimerrors provides the error status type returned by session
// clients and SOAP transports.
//
// Every error that originates in this module is, or wraps, a *Status. Errors
// produced by transports may instead implement
//
//	VimError() *Status
//
// to expose their status without giving up their own type. FromError and
// the IsXxx helpers understand both forms.
package vimerrors

import (
	"bytes"
	"errors"
	"fmt"
)

// Status represents an error with a Code.
type Status struct {
	code    Code
	err     error
	details []byte
}

type vimError interface {
	VimError() *Status
}

// Newf returns a new Status.
//
// The Code should never be CodeOK, if it is, this will return nil.
func Newf(code Code, format string, args ...interface{}) *Status {
	if code == CodeOK {
		return nil
	}

	var err error
	if len(args) == 0 {
		err = errors.New(format)
	} else {
		err = fmt.Errorf(format, args...)
	}

	return &Status{
		code: code,
		err:  err,
	}
}

// Wrap returns a Status with the given code that wraps err. The message of
// the Status is the message of err.
func Wrap(code Code, err error) *Status {
	if code == CodeOK || err == nil {
		return nil
	}
	return &Status{code: code, err: &wrapError{err: err}}
}

// FromError returns the Status for the provided error.
//
// If the error:
//   - is nil, return nil
//   - is a 'Status', return the 'Status'
//   - has a 'VimError() *Status' method, returns the 'Status'
//
// Otherwise, return a wrapped error with code 'CodeUnknown'.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}
	if st, ok := fromError(err); ok {
		return st
	}
	return &Status{
		code: CodeUnknown,
		err:  &wrapError{err: err},
	}
}

func fromError(err error) (st *Status, ok bool) {
	if errors.As(err, &st) {
		return st, true
	}

	var verr vimError
	if errors.As(err, &verr) {
		return verr.VimError(), true
	}
	return nil, false
}

// IsStatus returns whether the provided error is a Status, or exposes one
// through VimError. This includes wrapped errors.
func IsStatus(err error) bool {
	_, ok := fromError(err)
	return ok
}

// WithDetails returns a new Status with the given details bytes, typically
// the raw response that produced the error.
func (s *Status) WithDetails(details []byte) *Status {
	if s == nil {
		return nil
	}
	if len(details) == 0 {
		details = nil
	}
	return &Status{
		code:    s.code,
		err:     s.err,
		details: details,
	}
}

// Code returns the error code for this Status.
func (s *Status) Code() Code {
	if s == nil {
		return CodeOK
	}
	return s.code
}

// Message returns the error message for this Status.
func (s *Status) Message() string {
	if s == nil || s.err == nil {
		return ""
	}
	return s.err.Error()
}

// Details returns the error details for this Status.
func (s *Status) Details() []byte {
	if s == nil {
		return nil
	}
	return s.details
}

// Unwrap supports errors.Unwrap.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return errors.Unwrap(s.err)
}

// Error implements the error interface.
func (s *Status) Error() string {
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(s.code.String())
	if s.err != nil && s.err.Error() != "" {
		_, _ = buffer.WriteString(` message:`)
		_, _ = buffer.WriteString(s.err.Error())
	}
	return buffer.String()
}

type wrapError struct {
	err error
}

func (e *wrapError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *wrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// ErrorCode returns the Code for the given error, CodeOK if the error is
// nil, or CodeUnknown if the error carries no Status.
func ErrorCode(err error) Code {
	return FromError(err).Code()
}

// ErrorMessage returns the message for the given error, or "" if the error
// is nil.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if st, ok := fromError(err); ok {
		return st.Message()
	}
	return err.Error()
}

// InvalidArgumentErrorf returns a new Status with code CodeInvalidArgument.
func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidArgument, format, args...)
}

// DeadlineExceededErrorf returns a new Status with code CodeDeadlineExceeded.
func DeadlineExceededErrorf(format string, args ...interface{}) error {
	return Newf(CodeDeadlineExceeded, format, args...)
}

// FailedPreconditionErrorf returns a new Status with code
// CodeFailedPrecondition.
func FailedPreconditionErrorf(format string, args ...interface{}) error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// InternalErrorf returns a new Status with code CodeInternal.
func InternalErrorf(format string, args ...interface{}) error {
	return Newf(CodeInternal, format, args...)
}

// UnavailableErrorf returns a new Status with code CodeUnavailable.
func UnavailableErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnavailable, format, args...)
}

// UnauthenticatedErrorf returns a new Status with code CodeUnauthenticated.
func UnauthenticatedErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnauthenticated, format, args...)
}

// IsUnauthenticated returns true if ErrorCode(err) == CodeUnauthenticated.
func IsUnauthenticated(err error) bool {
	return ErrorCode(err) == CodeUnauthenticated
}

// IsUnavailable returns true if ErrorCode(err) == CodeUnavailable.
func IsUnavailable(err error) bool {
	return ErrorCode(err) == CodeUnavailable
}

// IsDeadlineExceeded returns true if ErrorCode(err) == CodeDeadlineExceeded.
func IsDeadlineExceeded(err error) bool {
	return ErrorCode(err) == CodeDeadlineExceeded
}

// IsFailedPrecondition returns true if ErrorCode(err) == CodeFailedPrecondition.
func IsFailedPrecondition(err error) bool {
	return ErrorCode(err) == CodeFailedPrecondition
}
