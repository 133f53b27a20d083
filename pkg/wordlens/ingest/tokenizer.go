package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/wordlens/pkg/wordlens/lang"
)

const (
	// MinWordLength is the shortest multi-letter token admitted.
	MinWordLength = 2
	// MaxWordLength is the longest token admitted.
	MaxWordLength = 50
)

// quotes maps typographic quote variants to plain ones.
var quotes = strings.NewReplacer(
	"¿", " ", "¡", " ",
	"«", `"`, "»", `"`,
	"“", `"`, "”", `"`, "„", `"`,
	"‘", "'", "’", "'", "‚", "'",
)

// Tokenizer splits normalized text into admissible tokens of one language.
type Tokenizer struct {
	rules         *lang.Rules
	caseSensitive bool
}

// NewTokenizer creates a tokenizer for the given language rules
func NewTokenizer(rules *lang.Rules, caseSensitive bool) *Tokenizer {
	return &Tokenizer{rules: rules, caseSensitive: caseSensitive}
}

// Tokenize splits text into tokens. With keepStopWords false, stop words of
// three characters or fewer are dropped as well.
func (t *Tokenizer) Tokenize(text string, keepStopWords bool) []string {
	text = quotes.Replace(text)
	text = stripPunctuation(text)

	words := strings.FieldsFunc(text, isSpace)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if !t.admissible(word) {
			continue
		}
		if !keepStopWords && t.isShortStopWord(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// admissible reports whether a single word passes the length, digit and
// single-letter rules.
func (t *Tokenizer) admissible(word string) bool {
	n := utf8.RuneCountInString(word)
	if n == 1 {
		return t.rules.ValidSingleLetters.Match(t.compareForm(word))
	}
	if n < MinWordLength || n > MaxWordLength {
		return false
	}
	return !isNumericOnly(word)
}

func (t *Tokenizer) isShortStopWord(word string) bool {
	return t.rules.StopWords().IsStop(t.compareForm(word)) && utf8.RuneCountInString(word) <= 3
}

func (t *Tokenizer) compareForm(word string) string {
	if t.caseSensitive {
		return word
	}
	return strings.ToLower(word)
}

// stripPunctuation blanks out punctuation that does not sit directly between
// two word characters, so in-word hyphens and apostrophes survive.
func stripPunctuation(text string) string {
	if !strings.ContainsFunc(text, isStrippable) {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		if isStrippable(r) {
			inWord := i > 0 && i < len(runes)-1 && isWordRune(runes[i-1]) && isWordRune(runes[i+1])
			if !inWord {
				r = ' '
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isStrippable(r rune) bool {
	return strings.ContainsRune(`-.,:;'"()[]{}`, r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\u200b'
}

// isNumericOnly returns true if the token contains only digits.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
