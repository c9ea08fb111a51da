package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/synthscan/synthscan/internal/session"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Analyze prompts for a media file path, submits it for analysis, and
// renders the outcome. The submission blocks until the session settles;
// encode and analysis failures surface through the rendered session state,
// not through the returned error.
func (a *App) Analyze(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter media file path", os.Stdout)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println("No file selected.")
		return nil
	}

	fmt.Printf("Analyzing %s ...\n", filepath.Base(path))
	if err := a.session.Submit(ctx, path); err != nil {
		if errors.Is(err, session.ErrBusy) {
			fmt.Println("An analysis is already in progress. Wait for it to finish or 'reset'.")
		}
		return err
	}

	renderSnapshot(os.Stdout, a.session.Snapshot())
	return nil
}

// Retry re-submits the failed analysis, reusing the encoded media when it
// was captured before the failure.
func (a *App) Retry(ctx context.Context) error {
	if err := a.session.Retry(ctx); err != nil {
		switch {
		case errors.Is(err, session.ErrNoFailedAnalysis):
			fmt.Println("Nothing to retry.")
		case errors.Is(err, session.ErrNotRetryable):
			fmt.Println("This failure cannot be fixed by retrying. Choose a different file.")
		}
		return err
	}

	renderSnapshot(os.Stdout, a.session.Snapshot())
	return nil
}

// Reset discards the current session.
func (a *App) Reset(ctx context.Context) error {
	a.session.Reset()
	fmt.Println("Session cleared.")
	return nil
}

// Status renders the current session state.
func (a *App) Status(ctx context.Context) error {
	renderSnapshot(os.Stdout, a.session.Snapshot())
	return nil
}
