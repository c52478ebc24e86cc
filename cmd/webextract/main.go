package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/chardet"
	"github.com/fwojciec/webextract/density"
	"github.com/fwojciec/webextract/extract"
	"github.com/fwojciec/webextract/goquery"
	"github.com/fwojciec/webextract/htmltomarkdown"
	"github.com/fwojciec/webextract/readability"
	weslog "github.com/fwojciec/webextract/slog"
	"github.com/fwojciec/webextract/sqlite"
	"github.com/fwojciec/webextract/trafilatura"
	"github.com/fwojciec/webextract/uniseg"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the page store.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PageService webextract.PageService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webextract"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webextract --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Extractor = buildExtractor(cli.Verbose, stderr)
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Fallback = trafilatura.NewExtractor()

	// Only the commands that touch stored records need the database.
	switch cmd {
	case "batch", "list", "show", "delete", "export":
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WEBEXTRACT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.PageService = sqlite.NewPageService(m.DB)
		deps.Pages = m.PageService
	}

	return kongCtx.Run(deps)
}

// buildExtractor wires the full pipeline: statistical charset
// detection, grapheme-aware normalization, density pruning, metadata
// scraping, and both whole-page fallback extractors.
func buildExtractor(verbose bool, stderr io.Writer) webextract.ExtractService {
	var svc webextract.ExtractService = extract.NewPipeline(
		chardet.NewDetector(),
		uniseg.NewNormalizer(),
		density.NewPruner(),
		goquery.NewMetaScraper(),
		trafilatura.NewExtractor(),
		readability.NewExtractor(),
	)
	if verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		svc = weslog.NewLoggingExtractService(svc, logger)
	}
	return svc
}

func defaultDBPath() string {
	if path := os.Getenv("WEBEXTRACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "webextract.db"
	}
	dir := filepath.Join(home, ".webextract")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "webextract.db")
}
