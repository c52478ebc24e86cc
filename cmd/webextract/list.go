package main

import (
	"fmt"

	"github.com/fwojciec/webextract"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := webextract.RecordFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.MimeType != "" {
		filter.MimeType = &c.MimeType
	}

	recs, err := deps.Pages.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webextract.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'webextract batch' to extract some.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %-20s  %s  %s\n",
			r.ID, r.Content.MimeType, r.Content.URL, r.Content.Title)
	}

	return nil
}
