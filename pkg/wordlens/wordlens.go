// Package wordlens computes word and phrase frequency and density for page
// text in several languages.
package wordlens

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cognicore/wordlens/pkg/wordlens/content"
	"github.com/cognicore/wordlens/pkg/wordlens/density"
	"github.com/cognicore/wordlens/pkg/wordlens/detect"
	"github.com/cognicore/wordlens/pkg/wordlens/filter"
	"github.com/cognicore/wordlens/pkg/wordlens/ingest"
	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
	"github.com/cognicore/wordlens/pkg/wordlens/lang"
	"github.com/cognicore/wordlens/pkg/wordlens/ngram"
)

// WordCount is one output phrase.
type WordCount = density.Row

// Result is the outcome of one analysis.
type Result struct {
	Language         lang.Code   `json:"language,omitempty"`
	Confidence       float64     `json:"confidence,omitempty"`
	Words            []WordCount `json:"words"`
	TotalWords       int         `json:"totalWords"`
	UniqueWords      int         `json:"uniqueWords"`
	AvgWordLength    float64     `json:"avgWordLength"`
	WordLengthStdDev float64     `json:"wordLengthStdDev,omitempty"`
	ReadingTime      int         `json:"readingTime"`
	TextHTMLRatio    float64     `json:"textHtmlRatio"`
	Title            string      `json:"title,omitempty"`
	Headings         []string    `json:"headings,omitempty"`
}

// Engine runs analyses against a rule registry. It holds no per-call state
// and is safe for concurrent use.
type Engine struct {
	registry *lang.Registry
	detector *detect.Detector
	observer Observer
}

// Options configures an Engine
type Options struct {
	Rules    *lang.Registry // nil means lang.Default()
	Observer Observer
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	reg := opts.Rules
	if reg == nil {
		reg = lang.Default()
	}
	return &Engine{
		registry: reg,
		detector: detect.New(reg),
		observer: opts.Observer,
	}
}

var defaultEngine = sync.OnceValue(func() *Engine { return New(Options{}) })

// Analyze runs text through the default engine.
func Analyze(text string, opts AnalyzeOptions, textHTMLRatio float64) (Result, error) {
	return defaultEngine().Analyze(text, opts, textHTMLRatio)
}

// Registry returns the rules the engine analyses with.
func (e *Engine) Registry() *lang.Registry {
	return e.registry
}

var markup = regexp.MustCompile(`<[^>]+>`)

// Analyze detects the language of text, extracts n-grams of opts.GroupSize
// tokens and returns those seen at least opts.MinCount times with their
// density. textHTMLRatio is copied into the result unchanged.
func (e *Engine) Analyze(text string, opts AnalyzeOptions, textHTMLRatio float64) (res Result, err error) {
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return Result{}, &Error{
			Kind: internalerr.ErrInputTooLarge,
			Msg:  fmt.Sprintf("input text is too large: %d characters (max %d)", n, MaxTextLength),
		}
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &Error{Kind: internalerr.ErrInternal, Msg: "analyze text", Err: fmt.Errorf("%v", r)}
		}
	}()

	return e.analyze(text, opts, textHTMLRatio), nil
}

// AnalyzePage analyses the page text and copies its title and headings.
func (e *Engine) AnalyzePage(page content.Page, opts AnalyzeOptions) (Result, error) {
	res, err := e.Analyze(page.Text, opts, page.TextHTMLRatio)
	if err != nil {
		return Result{}, err
	}
	res.Title = page.Title
	res.Headings = page.Headings
	return res, nil
}

func (e *Engine) analyze(text string, opts AnalyzeOptions, ratio float64) Result {
	body := strings.Join(strings.Fields(markup.ReplaceAllString(text, " ")), " ")
	if body == "" {
		return emptyResult(ratio)
	}

	det := e.detector.Detect(body)
	e.emit("detected language %s (confidence %.2f)", det.Language, det.Confidence)
	rules := e.registry.Get(det.Language)

	normalized := ingest.Normalize(body, rules, opts.CaseSensitive)
	tok := ingest.NewTokenizer(rules, opts.CaseSensitive)

	all := tok.Tokenize(normalized, true)
	if len(all) == 0 {
		e.emit("no admissible tokens")
		res := emptyResult(ratio)
		res.Language, res.Confidence = det.Language, det.Confidence
		return res
	}
	stats := density.Compute(all)

	table := ngram.Extract(all, opts.GroupSize)
	valid := filter.New(rules, opts.CaseSensitive).Apply(table, opts.GroupSize)
	e.emit("%d tokens, %d %d-grams (%d distinct), %d valid", len(all), table.Total(), opts.GroupSize, table.Len(), valid.Len())

	unique := density.UniqueCount(tok.Tokenize(normalized, false))
	rows := density.Rows(valid, opts.MinCount, stats.TotalWords, opts.GroupSize)
	e.emit("%d phrases with count >= %d", len(rows), opts.MinCount)

	return Result{
		Language:         det.Language,
		Confidence:       det.Confidence,
		Words:            rows,
		TotalWords:       stats.TotalWords,
		UniqueWords:      unique,
		AvgWordLength:    stats.AvgWordLength,
		WordLengthStdDev: stats.WordLengthStdDev,
		ReadingTime:      stats.ReadingTime,
		TextHTMLRatio:    ratio,
	}
}

func emptyResult(ratio float64) Result {
	return Result{Words: []WordCount{}, TextHTMLRatio: ratio}
}

func (e *Engine) emit(format string, args ...any) {
	if e.observer == nil {
		return
	}
	e.observer.OnEvent(fmt.Sprintf(format, args...))
}
