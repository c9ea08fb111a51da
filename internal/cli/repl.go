package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Analyze(ctx context.Context) error
	Retry(ctx context.Context) error
	Reset(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Delete(ctx context.Context) error
	Report(ctx context.Context) error
	StoreKey(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the SynthScan CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//   - help           — show available commands
//   - analyze        — submit a media file for analysis
//   - retry          — re-run the failed analysis
//   - reset          — discard the current session
//   - status         — show the current session
//   - list           — list archived analyses
//   - show           — restore an archived analysis (interactive ID prompt)
//   - delete         — delete an archived analysis
//   - report         — export an analysis as a PDF
//   - key            — store the detector API key
//   - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("synthscan %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: analyze, retry, reset, status, (l)ist, show, delete, report, key, exit")

		case "analyze":
			_ = a.Analyze(ctx)

		case "retry":
			_ = a.Retry(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "status":
			_ = a.Status(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "report":
			_ = a.Report(ctx)

		case "key":
			_ = a.StoreKey(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
