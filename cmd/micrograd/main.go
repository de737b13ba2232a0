// Package main provides the micrograd CLI.
//
// Usage:
//
//	micrograd [-log-level info] [-log-format text] <command> [flags]
//
// Commands:
//
//	version   Show version
//	demo      Evaluate d = a*b + b**3 at a=-4, b=2 and print gradients
//	graph     Write the demo graph as Graphviz DOT
//	train     Train an MLP from an HCL run file
//	eval      Evaluate a saved checkpoint on a run file's samples
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/born-ml/micrograd/internal/ctxlog"
)

const version = "v0.1.0"

// ExitError carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run parses global flags, installs the logger and dispatches a command.
// Results go to stdout, logs to stderr.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("micrograd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, `micrograd - scalar reverse-mode autodiff and tiny MLPs.

Usage:
  micrograd [options] <command> [flags]

Commands:
  version   Show version
  demo      Evaluate d = a*b + b**3 at a=-4, b=2 and print gradients
  graph     Write the demo graph as Graphviz DOT
  train     Train an MLP from an HCL run file
  eval      Evaluate a saved checkpoint on a run file's samples

Options:
`)
		fs.PrintDefaults()
	}

	logLevel := fs.String("log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format: 'text' or 'json'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}

	level := strings.ToLower(*logLevel)
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	format := strings.ToLower(*logFormat)
	if format != "text" && format != "json" {
		return usageError("invalid log-format: must be 'text' or 'json'")
	}

	ctx = ctxlog.WithLogger(ctx, newLogger(level, format, stderr))

	if fs.NArg() == 0 {
		fs.Usage()
		return usageError("missing command")
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "micrograd %s\n", version)
		return nil
	case "demo":
		return runDemo(stdout)
	case "graph":
		return runGraph(ctx, stdout, stderr, rest)
	case "train":
		return runTrain(ctx, stdout, stderr, rest)
	case "eval":
		return runEval(ctx, stdout, stderr, rest)
	default:
		return usageError("unknown command %q", cmd)
	}
}
