package ingest

import (
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wordlens/pkg/wordlens/lang"
)

func english() *lang.Rules { return lang.Default().Get(lang.EN) }

func equalTokens(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeLowercasesAndExpands(t *testing.T) {
	got := Normalize("Don't STOP, it's late", english(), false)
	if got != "do not stop, it is late" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestNormalizeCaseSensitive(t *testing.T) {
	got := Normalize("Don't STOP", english(), true)
	if got != "Do not STOP" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestNormalizeDecomposes(t *testing.T) {
	got := Normalize("Café", english(), false)
	if got != norm.NFD.String("café") {
		t.Errorf("expected NFD output, got %q", got)
	}
	if !norm.NFD.IsNormalString(got) {
		t.Error("output should be in NFD")
	}
}

func TestNormalizeGermanCompounds(t *testing.T) {
	de := lang.Default().Get(lang.DE)
	got := Normalize("Haus-Tür", de, false)
	if got != norm.NFD.String("haustür") {
		t.Errorf("Normalize = %q", got)
	}

	// other languages keep their hyphens
	if got := Normalize("well-known", english(), false); got != "well-known" {
		t.Errorf("English hyphen should survive, got %q", got)
	}
}

func TestNormalizeContractionOrder(t *testing.T) {
	// n't is listed before 't
	got := Normalize("won't", english(), false)
	if got != "wo not" {
		t.Errorf("Normalize(won't) = %q", got)
	}
}

func TestTokenizeBasic(t *testing.T) {
	tok := NewTokenizer(english(), false)

	tokens := tok.Tokenize("the quick brown fox, the lazy dog.", true)
	equalTokens(t, tokens, []string{"the", "quick", "brown", "fox", "the", "lazy", "dog"})
}

func TestTokenizeDropsStopWords(t *testing.T) {
	tok := NewTokenizer(english(), false)

	tokens := tok.Tokenize("the cat and the dog about town", false)
	// "about" is a stop word but longer than three characters
	equalTokens(t, tokens, []string{"cat", "dog", "about", "town"})
}

func TestTokenizeCaseSensitiveStopWords(t *testing.T) {
	tok := NewTokenizer(english(), true)

	tokens := tok.Tokenize("The cat and the dog", false)
	equalTokens(t, tokens, []string{"The", "cat", "dog"})
}

func TestTokenizeSingleLetters(t *testing.T) {
	tok := NewTokenizer(english(), false)

	tokens := tok.Tokenize("i saw a b c x", true)
	equalTokens(t, tokens, []string{"i", "saw", "a"})

	// valid single letters that are stop words go in the filtered pass
	tokens = tok.Tokenize("i saw a b c x", false)
	equalTokens(t, tokens, []string{"i", "saw"})
}

func TestTokenizeDigits(t *testing.T) {
	tok := NewTokenizer(english(), false)

	tokens := tok.Tokenize("in 2024 covid19 spread 42 times", true)
	equalTokens(t, tokens, []string{"in", "covid19", "spread", "times"})
}

func TestTokenizeLengthBounds(t *testing.T) {
	tok := NewTokenizer(english(), false)

	fifty := strings.Repeat("x", 50)
	fiftyOne := strings.Repeat("y", 51)
	tokens := tok.Tokenize(fifty+" "+fiftyOne+" ok", true)
	equalTokens(t, tokens, []string{fifty, "ok"})
}

func TestTokenizePunctuation(t *testing.T) {
	tok := NewTokenizer(english(), false)

	tokens := tok.Tokenize(`a well-known (rule): "keep" it -- simple; o'neil [x] {y}`, true)
	equalTokens(t, tokens, []string{"a", "well-known", "rule", "keep", "it", "simple", "o'neil"})
}

func TestTokenizePunctuationRuns(t *testing.T) {
	tok := NewTokenizer(english(), false)

	// each punctuation char needs a word character on both sides
	tokens := tok.Tokenize("alpha--beta gamma.,delta", true)
	equalTokens(t, tokens, []string{"alpha", "beta", "gamma", "delta"})
}

func TestTokenizeSmartQuotes(t *testing.T) {
	tok := NewTokenizer(english(), false)

	tokens := tok.Tokenize("“quoted” «guillemets» ‘single’ o’neil", true)
	equalTokens(t, tokens, []string{"quoted", "guillemets", "single", "o'neil"})
}

func TestTokenizeInvertedMarks(t *testing.T) {
	es := lang.Default().Get(lang.ES)
	tok := NewTokenizer(es, false)

	tokens := tok.Tokenize(norm.NFD.String("¿qué tal? ¡hola!"), true)
	equalTokens(t, tokens, []string{norm.NFD.String("qué"), "tal?", "hola!"})
}

func TestTokenizeWhitespaceVariants(t *testing.T) {
	tok := NewTokenizer(english(), false)

	tokens := tok.Tokenize("one\u00a0two\u200bthree\t\nfour", true)
	equalTokens(t, tokens, []string{"one", "two", "three", "four"})
}

func TestTokenizeAccentedWordsKeepApostrophes(t *testing.T) {
	it := lang.Default().Get(lang.IT)
	tok := NewTokenizer(it, false)

	text := Normalize("perché c'è", it, false)
	tokens := tok.Tokenize(text, true)
	equalTokens(t, tokens, []string{norm.NFD.String("perché"), norm.NFD.String("c'è")})
}

func TestTokenizeEmpty(t *testing.T) {
	tok := NewTokenizer(english(), false)

	if tokens := tok.Tokenize("   ... --- ", true); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}

func TestAdmissible(t *testing.T) {
	tok := NewTokenizer(english(), false)

	cases := map[string]bool{
		"a":    true,
		"I":    true,
		"z":    false,
		"ok":   true,
		"123":  false,
		"a1":   true,
		"élan": true,
	}
	for word, want := range cases {
		if got := tok.admissible(word); got != want {
			t.Errorf("admissible(%q) = %v, want %v", word, got, want)
		}
	}
}
