package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wordlens/pkg/wordlens/lang"
	"github.com/cognicore/wordlens/pkg/wordlens/ngram"
)

// Reason explains why a phrase was rejected.
type Reason int

// Rejection reasons. Valid means the phrase is kept.
const (
	Valid Reason = iota
	TokenCount
	ShortStopWord
	InvalidSingleLetter
	AllStopWords
	StopWordPair
	InvalidStarter
	PhraseEnding
	RepeatedToken
	DoubleArticle
	MultiWordStop
)

var reasonNames = map[Reason]string{
	Valid:               "valid",
	TokenCount:          "token count",
	ShortStopWord:       "short stop word",
	InvalidSingleLetter: "invalid single letter",
	AllStopWords:        "all stop words",
	StopWordPair:        "stop word pair",
	InvalidStarter:      "invalid starter",
	PhraseEnding:        "phrase ending",
	RepeatedToken:       "repeated token",
	DoubleArticle:       "double article",
	MultiWordStop:       "multi-word stop",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// Filter drops grammatically degenerate n-grams using one language's rules.
type Filter struct {
	rules         *lang.Rules
	caseSensitive bool
}

// New creates a filter for rules.
func New(rules *lang.Rules, caseSensitive bool) *Filter {
	return &Filter{rules: rules, caseSensitive: caseSensitive}
}

// Apply returns a new table holding only the valid phrases of t, in the same order.
func (f *Filter) Apply(t *ngram.Table, groupSize int) *ngram.Table {
	out := ngram.NewTable()
	for _, e := range t.Entries() {
		if f.Check(e.Phrase, groupSize) == Valid {
			out.Add(e.Phrase, e.Count)
		}
	}
	return out
}

// Check classifies one phrase. Every rule is an independent disqualifier;
// the first one found is reported.
func (f *Filter) Check(phrase string, groupSize int) Reason {
	words := strings.Split(phrase, " ")
	if len(words) != groupSize {
		return TokenCount
	}
	for i, w := range words {
		words[i] = f.compareForm(w)
	}

	if groupSize == 1 {
		return f.checkSingle(words[0])
	}

	if f.rules.StopWords().AllStop(words) {
		return AllStopWords
	}

	last := len(words) - 2
	for i := 0; i < len(words)-1; i++ {
		cur, next := words[i], words[i+1]

		if f.rules.StopWords().IsStop(cur) && f.rules.StopWords().IsStop(next) {
			return StopWordPair
		}
		if i == 0 && f.rules.InvalidStarters.Match(cur) {
			return InvalidStarter
		}
		if i == last && f.rules.CommonPhraseEndings.Match(next) {
			return PhraseEnding
		}
		if cur == next {
			return RepeatedToken
		}
		if f.rules.Articles.Match(cur) && f.rules.Articles.Match(next) {
			return DoubleArticle
		}
	}

	if f.rules.IsMultiWordStop(f.compareForm(phrase)) {
		return MultiWordStop
	}
	return Valid
}

func (f *Filter) checkSingle(word string) Reason {
	n := utf8.RuneCountInString(word)
	if f.rules.StopWords().IsStop(word) && n <= 3 {
		return ShortStopWord
	}
	if n == 1 && !f.rules.ValidSingleLetters.Match(word) {
		return InvalidSingleLetter
	}
	return Valid
}

func (f *Filter) compareForm(s string) string {
	if f.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
