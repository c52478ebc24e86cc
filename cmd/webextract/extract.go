package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/webextract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	body, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	page := &webextract.RawPage{
		URL:             c.URL,
		Body:            body,
		DeclaredType:    c.Type,
		DeclaredCharset: c.Charset,
	}
	if page.URL == "" {
		page.URL = fileURL(c.File)
	}

	content, err := deps.Extractor.Extract(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webextract.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		return printMarkdown(deps, content)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(content)
}

// printMarkdown renders the page's main content as Markdown: the
// fallback extractor isolates the content HTML, the converter turns it
// into Markdown. Pages without isolatable content HTML fall back to
// the pruned plain text.
func printMarkdown(deps *Dependencies, content *webextract.ExtractedContent) error {
	if content.Decoded != "" {
		if res, err := deps.Fallback.Extract(content.Decoded); err == nil && res.ContentHTML != "" {
			md, err := deps.Converter.Convert(res.ContentHTML)
			if err == nil {
				fmt.Fprintln(deps.Stdout, md)
				return nil
			}
		}
	}
	fmt.Fprintln(deps.Stdout, content.TextPruned)
	return nil
}

// fileURL derives a file:// URL for pages extracted straight from disk.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "file://" + path
	}
	return "file://" + abs
}
