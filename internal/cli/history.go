package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/synthscan/synthscan/internal/models"
)

// List prints one line per archived analysis, newest first.
func (a *App) List(ctx context.Context) error {
	recs := a.history.List()
	if len(recs) == 0 {
		fmt.Println("History is empty.")
		return nil
	}
	for i := range recs {
		fmt.Println(formatRecordLine(&recs[i]))
	}
	return nil
}

// Show restores an archived analysis into the session and renders it. IDs
// may be given in the shortened form printed by List.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter record id to show", os.Stdout)
	if err != nil {
		return err
	}

	rec, ok := a.findRecord(id)
	if !ok {
		fmt.Println("Record not found:", id)
		return nil
	}

	a.session.LoadRecord(*rec)
	renderSnapshot(os.Stdout, a.session.Snapshot())
	return nil
}

// Delete removes an archived analysis. When the deleted record is the one
// currently shown in the session, the session is cleared too.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter record id to delete", os.Stdout)
	if err != nil {
		return err
	}

	rec, ok := a.findRecord(id)
	if !ok {
		fmt.Println("Record not found:", id)
		return nil
	}

	if err := a.history.Remove(ctx, rec.Id); err != nil {
		a.log.Error(ctx, "failed to delete record", "id", rec.Id, "error", err)
		fmt.Println("Could not delete the record.")
		return err
	}

	if snap := a.session.Snapshot(); snap.FromHistory && snap.RecordID == rec.Id {
		a.session.Reset()
	}

	fmt.Println("Deleted", shortID(rec.Id))
	return nil
}

// findRecord resolves an id entered by the user, accepting both full ids and
// the unambiguous shortened prefixes shown by List.
func (a *App) findRecord(id string) (*models.Record, bool) {
	if id == "" {
		return nil, false
	}
	if r, found := a.history.Get(id); found {
		return r, true
	}
	if len(id) < 4 {
		return nil, false
	}

	var match *models.Record
	for _, r := range a.history.List() {
		if len(r.Id) >= len(id) && r.Id[:len(id)] == id {
			if match != nil {
				// Ambiguous prefix.
				return nil, false
			}
			c := r
			match = &c
		}
	}
	return match, match != nil
}
