package filter

import (
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wordlens/pkg/wordlens/lang"
	"github.com/cognicore/wordlens/pkg/wordlens/ngram"
)

type row struct {
	phrase string
	want   Reason
}

// truth tables, phrases written as the normalizer emits them (lowercase, then NFD below)
var truthTables = map[lang.Code][]row{
	lang.EN: {
		{"the cat", Valid},
		{"cat and", Valid},
		{"the dog", Valid},
		{"brown fox", Valid},
		{"and the", AllStopWords},
		{"of the", AllStopWords},
		{"in the", AllStopWords},
		{"the the", AllStopWords},
		{"a the", AllStopWords},
		{"to market", InvalidStarter},
		{"market is", PhraseEnding},
		{"cat cat", RepeatedToken},
		{"as well as", MultiWordStop},
		{"big of the", StopWordPair},
		{"cat", Valid},
		{"about", Valid},
		{"i", Valid},
		{"the", ShortStopWord},
		{"a", ShortStopWord},
		{"b", InvalidSingleLetter},
	},
	lang.ES: {
		{"la casa", Valid},
		{"casa de", Valid},
		{"casa grande", Valid},
		{"de la", AllStopWords},
		{"el la", AllStopWords},
		{"en el", AllStopWords},
		{"que es", AllStopWords},
		{"y casa", InvalidStarter},
		{"casa es", PhraseEnding},
		{"perro perro", RepeatedToken},
		{"gato", Valid},
	},
	lang.IT: {
		{"il gatto", Valid},
		{"gatto nero", Valid},
		{"di la", AllStopWords},
		{"lo il", AllStopWords},
		{"per il", AllStopWords},
		{"e gatto", InvalidStarter},
		{"gatto è", PhraseEnding},
		{"casa casa", RepeatedToken},
		{"di", ShortStopWord},
	},
	lang.PT: {
		{"gato preto", Valid},
		{"de o", AllStopWords},
		{"um uma", AllStopWords},
		{"para a", AllStopWords},
		{"o gato", InvalidStarter},
		{"mas gato", InvalidStarter},
		{"gato é", PhraseEnding},
		{"casa casa", RepeatedToken},
	},
	lang.NL: {
		{"de kat", Valid},
		{"kat zwart", Valid},
		{"van de", AllStopWords},
		{"de het", AllStopWords},
		{"in de", AllStopWords},
		{"en kat", InvalidStarter},
		{"kat is", PhraseEnding},
		{"huis huis", RepeatedToken},
	},
	lang.PL: {
		{"duży kot", Valid},
		{"w tym", AllStopWords},
		{"na to", AllStopWords},
		{"i kot", InvalidStarter},
		{"kot jest", PhraseEnding},
		{"kot kot", RepeatedToken},
		{"dom", Valid},
	},
	lang.FR: {
		{"le chat", Valid},
		{"chat noir", Valid},
		{"de la", AllStopWords},
		{"le une", AllStopWords},
		{"et le", AllStopWords},
		{"et chat", InvalidStarter},
		{"chat est", PhraseEnding},
		{"chien chien", RepeatedToken},
	},
	lang.DE: {
		{"der hund", Valid},
		{"großer hund", Valid},
		{"der die", AllStopWords},
		{"ein eine", AllStopWords},
		{"und der", AllStopWords},
		{"ein von", AllStopWords},
		{"und hund", InvalidStarter},
		{"hund ist", PhraseEnding},
		{"hund hund", RepeatedToken},
	},
}

func TestTruthTables(t *testing.T) {
	reg := lang.Default()
	for code, rows := range truthTables {
		f := New(reg.Get(code), false)
		for _, r := range rows {
			phrase := norm.NFD.String(r.phrase)
			groupSize := len(strings.Split(phrase, " "))
			if got := f.Check(phrase, groupSize); got != r.want {
				t.Errorf("%s %q: got %s, want %s", code, r.phrase, got, r.want)
			}
		}
	}
}

func TestEveryLanguageHasTruthTable(t *testing.T) {
	for _, code := range lang.Default().Codes() {
		if len(truthTables[code]) == 0 {
			t.Errorf("no truth table for %s", code)
		}
	}
}

func TestTokenCountMismatch(t *testing.T) {
	f := New(lang.Default().Get(lang.EN), false)
	if got := f.Check("brown fox", 3); got != TokenCount {
		t.Errorf("got %s, want %s", got, TokenCount)
	}
	if got := f.Check("brown fox jumps", 2); got != TokenCount {
		t.Errorf("got %s, want %s", got, TokenCount)
	}
}

func TestDoubleArticle(t *testing.T) {
	reg, err := lang.NewRegistry(lang.File{Code: "en", Articles: "^(a|the)$"})
	if err != nil {
		t.Fatal(err)
	}
	f := New(reg.Get(lang.EN), false)

	if got := f.Check("a the", 2); got != DoubleArticle {
		t.Errorf("got %s, want %s", got, DoubleArticle)
	}
	if got := f.Check("big a the", 3); got != DoubleArticle {
		t.Errorf("got %s, want %s", got, DoubleArticle)
	}
	if got := f.Check("a cat", 2); got != Valid {
		t.Errorf("got %s, want valid", got)
	}
}

func TestCaseSensitivity(t *testing.T) {
	en := lang.Default().Get(lang.EN)

	insensitive := New(en, false)
	if got := insensitive.Check("About The", 2); got != AllStopWords {
		t.Errorf("case-insensitive 'About The': got %s", got)
	}
	if got := insensitive.Check("As Well As", 3); got != MultiWordStop {
		t.Errorf("case-insensitive 'As Well As': got %s", got)
	}

	sensitive := New(en, true)
	if got := sensitive.Check("About The", 2); got != Valid {
		t.Errorf("case-sensitive 'About The': got %s, want valid", got)
	}
	// patterns stay case-insensitive
	if got := sensitive.Check("And cats", 2); got != InvalidStarter {
		t.Errorf("case-sensitive 'And cats': got %s", got)
	}
	if got := sensitive.Check("The", 1); got != Valid {
		t.Errorf("case-sensitive 'The': got %s, want valid", got)
	}
}

func TestApplyKeepsOrderAndCounts(t *testing.T) {
	f := New(lang.Default().Get(lang.EN), false)
	table := ngram.Extract(strings.Fields("the cat and the dog and the cat"), 2)

	filtered := f.Apply(table, 2)
	entries := filtered.Entries()
	want := []ngram.Entry{
		{Phrase: "the cat", Count: 2},
		{Phrase: "cat and", Count: 1},
		{Phrase: "the dog", Count: 1},
		{Phrase: "dog and", Count: 1},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %v, got %v", want, entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
	if table.Len() != 5 {
		t.Errorf("Apply must not modify its input, got %d phrases", table.Len())
	}
}

func TestReasonString(t *testing.T) {
	if Valid.String() != "valid" || MultiWordStop.String() != "multi-word stop" {
		t.Error("unexpected reason names")
	}
	if Reason(99).String() != "unknown" {
		t.Error("unknown reason should print as unknown")
	}
}
