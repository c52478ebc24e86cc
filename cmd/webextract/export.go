package main

import (
	"fmt"

	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/fs"
)

// Run executes the export command: write every stored record to disk
// as JSON, replacing any previous export atomically.
func (c *ExportCmd) Run(deps *Dependencies) error {
	recs, err := deps.Pages.FindRecords(deps.Ctx, webextract.RecordFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webextract.ErrorMessage(err))
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No records to export.")
		return nil
	}

	store := fs.NewExportStore(c.Dir, c.Name)
	for _, rec := range recs {
		if err := store.Save(rec); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records\n", len(recs))
	return nil
}
