package main

import (
	"context"
	"io"

	"github.com/fwojciec/webextract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor webextract.ExtractService
	Converter webextract.Converter
	Fallback  webextract.FallbackExtractor
	Pages     webextract.PageService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log each extraction to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract content from a captured page file"`
	Batch   BatchCmd   `cmd:"" help:"Extract a directory of captured pages into the database"`
	List    ListCmd    `cmd:"" help:"List stored extraction records"`
	Show    ShowCmd    `cmd:"" help:"Show one stored record as JSON"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored record"`
	Export  ExportCmd  `cmd:"" help:"Export stored records as JSON files"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" help:"Path of the captured page"`
	URL      string `short:"u" help:"URL the page was captured from"`
	Type     string `short:"t" name:"type" help:"Declared content type (as from a Content-Type header)"`
	Charset  string `short:"c" help:"Declared charset label"`
	Markdown bool   `short:"m" help:"Print main content as Markdown instead of JSON"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Dir         string `arg:"" help:"Directory of captured pages"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent extraction limit"`
	SkipDupes   bool   `default:"true" negatable:"" help:"Skip pages with previously seen URLs or text"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	URL      string `help:"Filter by exact URL"`
	MimeType string `help:"Filter by resolved content type"`
	Limit    int    `default:"50" help:"Maximum records to list"`
	Offset   int    `help:"Records to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" help:"Parent directory for the export"`
	Name string `default:"export" help:"Export directory name"`
}
