package lang

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
	"github.com/cognicore/wordlens/pkg/wordlens/stoplist"
)

// Code is a language code of the rule registry (ISO 639-1).
type Code string

// Built-in languages.
const (
	ES Code = "es"
	IT Code = "it"
	PT Code = "pt"
	NL Code = "nl"
	PL Code = "pl"
	FR Code = "fr"
	DE Code = "de"
	EN Code = "en"
)

// builtinOrder is the detector's iteration order. Ties go to the earlier entry.
var builtinOrder = []Code{ES, IT, PT, NL, PL, FR, DE, EN}

// Tag returns the BCP 47 tag of the code.
func (c Code) Tag() language.Tag {
	return language.Make(string(c))
}

func (c Code) String() string { return string(c) }

// Pattern is a compiled matcher over a whole token. The zero value never matches.
type Pattern struct {
	re *regexp.Regexp
}

// Match reports whether s matches the pattern.
func (p Pattern) Match(s string) bool {
	return p.re != nil && p.re.MatchString(s)
}

// String returns the source of the compiled pattern.
func (p Pattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

// Contraction expands one contraction inside normalized text.
type Contraction struct {
	From   string
	To     string
	folded *regexp.Regexp
}

// NewContraction builds a contraction with its case-insensitive matcher.
func NewContraction(from, to string) Contraction {
	c := Contraction{From: from, To: to}
	if from != "" {
		c.folded = foldedLiteral(from)
	}
	return c
}

// Apply replaces every occurrence of the contraction in s. An empty From
// leaves s unchanged.
func (c Contraction) Apply(s string, caseSensitive bool) string {
	if c.From == "" {
		return s
	}
	if caseSensitive {
		return strings.ReplaceAll(s, c.From, c.To)
	}
	folded := c.folded
	if folded == nil {
		folded = foldedLiteral(c.From)
	}
	return folded.ReplaceAllLiteralString(s, c.To)
}

func foldedLiteral(s string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(s))
}

// Rules is the compiled, read-only rule table of one language.
// All literals are stored in NFD so they compare equal to normalized text.
// The word sets are only reachable through methods; registries share one
// Rules value between every engine of the process.
type Rules struct {
	Code Code
	Name string

	Articles            Pattern
	ValidSingleLetters  Pattern
	CommonPhraseEndings Pattern
	InvalidStarters     Pattern
	CompoundJoiner      *regexp.Regexp // nil when the language has no joiner

	Signature       *regexp.Regexp
	SignatureWeight float64
	Diacritics      string

	stopWords      *stoplist.Manager
	contractions   []Contraction
	multiWordStops map[string]struct{}
	// detector input, kept composed (NFC)
	wordFrequencies map[string]float64
}

// StopWords returns the stop words of the language.
func (r *Rules) StopWords() *stoplist.Manager {
	return r.stopWords
}

// Contractions returns a copy of the expansions in application order.
func (r *Rules) Contractions() []Contraction {
	return slices.Clone(r.contractions)
}

// IsMultiWordStop reports whether phrase is a known-bad fixed phrase.
func (r *Rules) IsMultiWordStop(phrase string) bool {
	_, ok := r.multiWordStops[phrase]
	return ok
}

// WordFrequency returns the detection weight of a composed (NFC) word.
func (r *Rules) WordFrequency(word string) (float64, bool) {
	w, ok := r.wordFrequencies[word]
	return w, ok
}

// Compile validates a rule file and builds its Rules.
func Compile(f File) (*Rules, error) {
	r := &Rules{
		Code:            Code(f.Code),
		Name:            f.Name,
		multiWordStops:  make(map[string]struct{}, len(f.MultiWordStops)),
		wordFrequencies: make(map[string]float64, len(f.WordFrequencies)),
		SignatureWeight: f.Signature.Weight,
		Diacritics:      norm.NFC.String(f.Diacritics),
	}

	stops := make([]string, 0, len(f.StopWords))
	for _, w := range f.StopWords {
		stops = append(stops, norm.NFD.String(w))
	}
	r.stopWords = stoplist.NewManager(stops)

	var err error
	if r.Articles, err = compilePattern(f.Articles); err != nil {
		return nil, fmt.Errorf("compile %s articles: %w", f.Code, err)
	}
	if r.ValidSingleLetters, err = compilePattern(f.ValidSingleLetters); err != nil {
		return nil, fmt.Errorf("compile %s valid_single_letters: %w", f.Code, err)
	}
	if r.CommonPhraseEndings, err = compilePattern(f.CommonPhraseEndings); err != nil {
		return nil, fmt.Errorf("compile %s common_phrase_endings: %w", f.Code, err)
	}
	if r.InvalidStarters, err = compilePattern(f.InvalidStarters); err != nil {
		return nil, fmt.Errorf("compile %s invalid_starters: %w", f.Code, err)
	}

	for _, c := range f.Contractions {
		if c.From == "" {
			return nil, fmt.Errorf("compile %s contractions: empty contraction: %w", f.Code, internalerr.ErrInvalidInput)
		}
		r.contractions = append(r.contractions, NewContraction(norm.NFD.String(c.From), norm.NFD.String(c.To)))
	}

	if f.CompoundJoiner != "" {
		if r.CompoundJoiner, err = regexp.Compile(f.CompoundJoiner); err != nil {
			return nil, fmt.Errorf("compile %s compound_joiner: %w", f.Code, err)
		}
	}

	for _, p := range f.MultiWordStops {
		r.multiWordStops[norm.NFD.String(p)] = struct{}{}
	}
	for w, v := range f.WordFrequencies {
		r.wordFrequencies[norm.NFC.String(w)] = v
	}

	if f.Signature.Pattern != "" {
		if r.Signature, err = regexp.Compile(`(?i)` + f.Signature.Pattern); err != nil {
			return nil, fmt.Errorf("compile %s signature: %w", f.Code, err)
		}
	}

	return r, nil
}

// compilePattern compiles a token pattern case-insensitively after NFD.
func compilePattern(src string) (Pattern, error) {
	if src == "" {
		return Pattern{}, nil
	}
	re, err := regexp.Compile(`(?i)` + norm.NFD.String(src))
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{re: re}, nil
}
