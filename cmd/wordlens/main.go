package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wordlens/internal/fetch"
	"github.com/cognicore/wordlens/internal/pages"
	"github.com/cognicore/wordlens/pkg/wordlens"
	"github.com/cognicore/wordlens/pkg/wordlens/config"
	"github.com/cognicore/wordlens/pkg/wordlens/content"
)

// Opts with all CLI options
type Opts struct {
	File  string  `short:"f" long:"file" description:"read page text from file (default stdin)"`
	URL   string  `short:"u" long:"url" description:"fetch and analyse a web page"`
	Batch string  `short:"b" long:"batch" description:"JSONL file of pages, - for stdin"`
	HTML  bool    `long:"html" description:"treat file or stdin input as HTML"`
	Ratio float64 `long:"ratio" description:"text/HTML ratio reported for plain text input"`

	Profile   string   `short:"p" long:"profile" env:"WORDLENS_PROFILE" description:"YAML analysis profile"`
	Rules     []string `short:"r" long:"rules" description:"language rule override file (repeatable)"`
	Stoplists []string `long:"stoplist" description:"extra stop words file (repeatable)"`

	GroupSize     int  `short:"g" long:"group-size" description:"words per phrase, 1-5 (overrides profile)"`
	MinCount      int  `short:"m" long:"min-count" description:"minimum occurrences (overrides profile)"`
	CaseSensitive bool `short:"c" long:"case-sensitive" description:"keep letter case"`

	Format  string        `long:"format" choice:"table" choice:"json" choice:"csv" choice:"copy" default:"table" description:"output format"`
	Timeout time.Duration `long:"timeout" default:"15s" description:"page fetch timeout"`

	// Common options
	Debug   bool `long:"dbg" env:"WORDLENS_DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdin, os.Stdout)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run loads configuration, collects the requested pages and writes one report per page.
func run(ctx context.Context, opts Opts, stdin io.Reader, stdout io.Writer) error {
	runID := ulid.Make()
	log.Printf("[DEBUG] run %s, wordlens %s", runID, revision)

	loader := config.Loader{
		ProfilePath:   opts.Profile,
		RulePaths:     opts.Rules,
		StoplistPaths: opts.Stoplists,
	}
	if opts.Debug {
		loader.Observer = wordlens.ObserverFunc(func(msg string) {
			log.Printf("[DEBUG] run %s: %s", runID, msg)
		})
	}
	comp, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	analyzeOpts := applyOverrides(comp.Profile.Options(), opts)
	if err := analyzeOpts.Validate(); err != nil {
		return err
	}

	input, err := collectPages(ctx, opts, stdin)
	if err != nil {
		return err
	}

	reports := make([]pageReport, 0, len(input))
	for _, page := range input {
		res, err := comp.Engine.AnalyzePage(page, analyzeOpts)
		if err != nil {
			if len(input) == 1 {
				return fmt.Errorf("analyze %s: %w", sourceName(page), err)
			}
			log.Printf("[WARN] skipping %s: %v", sourceName(page), err)
			continue
		}
		rep := newReport(page, res, comp.Profile.DensityRanges)
		log.Printf("[DEBUG] %s: %s, %d words, %d phrases", rep.ID, rep.Source, res.TotalWords, len(res.Words))
		reports = append(reports, rep)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no page could be analysed")
	}

	return writeReports(stdout, opts.Format, reports)
}

func applyOverrides(o wordlens.AnalyzeOptions, opts Opts) wordlens.AnalyzeOptions {
	if opts.GroupSize != 0 {
		o.GroupSize = opts.GroupSize
	}
	if opts.MinCount != 0 {
		o.MinCount = opts.MinCount
	}
	if opts.CaseSensitive {
		o.CaseSensitive = true
	}
	return o
}

func collectPages(ctx context.Context, opts Opts, stdin io.Reader) ([]content.Page, error) {
	switch {
	case opts.URL != "":
		client := &fetch.Client{Timeout: opts.Timeout}
		page, err := client.Page(ctx, opts.URL)
		if err != nil {
			return nil, err
		}
		return []content.Page{page}, nil

	case opts.Batch != "":
		var records []pages.Record
		var err error
		if opts.Batch == "-" {
			records, err = pages.Read(stdin, "stdin")
		} else {
			records, err = pages.LoadFromJSONL(opts.Batch)
		}
		if err != nil {
			return nil, fmt.Errorf("load batch: %w", err)
		}
		out := make([]content.Page, 0, len(records))
		for _, rec := range records {
			page, err := rec.Page()
			if err != nil {
				log.Printf("[WARN] %v", err)
				continue
			}
			out = append(out, page)
		}
		return out, nil
	}

	var (
		data []byte
		err  error
		name = "stdin"
	)
	if opts.File != "" {
		name = opts.File
		data, err = os.ReadFile(opts.File)
	} else {
		data, err = io.ReadAll(io.LimitReader(stdin, content.MaxHTMLSize))
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if opts.HTML || isHTMLFile(opts.File) {
		page, err := content.Extract(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
		page.URL = name
		return []content.Page{page}, nil
	}
	page := content.FromText(string(data), opts.Ratio)
	page.URL = name
	return []content.Page{page}, nil
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

func sourceName(p content.Page) string {
	if p.URL != "" {
		return p.URL
	}
	return "page"
}

func setupLog(dbg bool) {
	// stdout carries the report, so every level goes to stderr once
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(io.Discard)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
