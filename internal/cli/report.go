package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/synthscan/synthscan/internal/filex"
	"github.com/synthscan/synthscan/internal/models"
	"github.com/synthscan/synthscan/internal/report"
)

// Report exports an archived analysis as a PDF under ./reports. With a
// completed analysis in the session its record is exported directly;
// otherwise the user is prompted for a record id.
func (a *App) Report(ctx context.Context) error {
	rec, err := a.recordForReport()
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}

	dir, err := filex.EnsureSubDir("reports")
	if err != nil {
		a.log.Error(ctx, "failed to create reports directory", "error", err)
		fmt.Println("Could not create the reports directory.")
		return err
	}

	out := filepath.Join(dir, fmt.Sprintf("analysis_%s.pdf", shortID(rec.Id)))
	if err := report.WriteRecord(out, rec); err != nil {
		a.log.Error(ctx, "failed to write report", "id", rec.Id, "error", err)
		fmt.Println("Could not write the report.")
		return err
	}

	fmt.Println("Report saved to:", out)
	return nil
}

func (a *App) recordForReport() (*models.Record, error) {
	if snap := a.session.Snapshot(); snap.RecordID != "" {
		if rec, ok := a.history.Get(snap.RecordID); ok {
			return rec, nil
		}
	}

	id, err := getSimpleText(a.reader, "Enter record id to export", os.Stdout)
	if err != nil {
		return nil, err
	}
	rec, ok := a.findRecord(id)
	if !ok {
		fmt.Println("Record not found:", id)
		return nil, nil
	}
	return rec, nil
}
