package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/bloom"
	"golang.org/x/sync/errgroup"
)

// expectedBatchPages sizes the dedup filter; a generous overestimate
// only costs a few megabytes of filter bits.
const expectedBatchPages = 1 << 20

// Run executes the batch command: extract every regular file under the
// directory concurrently and store the results.
func (c *BatchCmd) Run(deps *Dependencies) error {
	files, err := collectFiles(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(deps.Stdout, "No files found.")
		return nil
	}

	var (
		mu     sync.Mutex
		seen   = bloom.NewSeenFilter(expectedBatchPages)
		stored int
		dupes  int
		failed int
	)

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)

	for _, file := range files {
		g.Go(func() error {
			url := fileURL(file)

			if c.SkipDupes {
				mu.Lock()
				dup := seen.SeenURL(url)
				mu.Unlock()
				if dup {
					mu.Lock()
					dupes++
					mu.Unlock()
					return nil
				}
			}

			body, err := os.ReadFile(file)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", file, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			content, err := deps.Extractor.Extract(ctx, &webextract.RawPage{URL: url, Body: body})
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", file, webextract.ErrorMessage(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			if c.SkipDupes && content.TextContent != "" {
				mu.Lock()
				dup := seen.SeenContent(content.TextContent)
				mu.Unlock()
				if dup {
					mu.Lock()
					dupes++
					mu.Unlock()
					return nil
				}
			}

			if err := deps.Pages.CreateRecord(ctx, &webextract.Record{Content: *content}); err != nil {
				return err
			}
			mu.Lock()
			stored++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d of %d pages (%d duplicates, %d failed)\n",
		stored, len(files), dupes, failed)
	return nil
}

// collectFiles lists every regular file under dir, recursively.
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
