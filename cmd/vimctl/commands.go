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

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"go.uber.org/vimsession"
	"go.uber.org/vimsession/transport"
)

func newConnectCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Log in, print the session and log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := f.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			session, err := s.client.Connect(ctx)
			if err != nil {
				return err
			}
			return printObject(cmd.OutOrStdout(), session.Fields)
		},
	}
}

func newCallCommand(f *flags) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "call OPERATION [NAME=VALUE ...]",
		Short: "Run one operation",
		Long: `Run one operation and print its result as YAML.

Arguments are sent in the order given. A value written @Type:Value is a
managed object reference; _this=ServiceInstance is shorthand for
_this=@ServiceInstance:ServiceInstance.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opArgs, err := parseArgs(args[1:])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := f.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			res, err := s.client.RunCommand(ctx, args[0], opArgs)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), res, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw response body")
	return cmd
}

func newShellCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run operations read line by line over one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := f.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			return runShell(ctx, s.client, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runner runs operations; *vimsession.Client is one.
type runner interface {
	RunCommand(ctx context.Context, operation string, args transport.Args, opts ...vimsession.CallOption) (*vimsession.Response, error)
}

// runShell reads "OPERATION [NAME=VALUE ...]" lines and runs them until
// EOF or "exit". Failed operations are reported and the shell goes on.
func runShell(ctx context.Context, r runner, in io.Reader, out io.Writer) error {
	parser := shellwords.NewParser()
	parser.ParseEnv = true

	scanner := bufio.NewScanner(in)
	for prompt(out); scanner.Scan(); prompt(out) {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "exit", "quit":
			return nil
		}

		args, err := parseArgs(words[1:])
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		res, err := r.RunCommand(ctx, words[0], args)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err := printResponse(out, res, false); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func prompt(out io.Writer) {
	fmt.Fprint(out, "vim> ")
}
