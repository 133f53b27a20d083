package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
	"github.com/cognicore/wordlens/pkg/wordlens/lang"
)

func TestLoaderAllEmpty(t *testing.T) {
	comp, err := (&Loader{}).Load()
	if err != nil {
		t.Fatalf("empty loader should succeed: %v", err)
	}

	if comp.Profile == nil || comp.Profile.GroupSize != 1 {
		t.Errorf("expected default profile, got %+v", comp.Profile)
	}
	if comp.Registry != lang.Default() {
		t.Error("without overrides the default registry should be used")
	}
	if comp.Engine == nil {
		t.Fatal("engine should be initialized")
	}
}

func TestLoaderProfileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rules/en-extra.yaml", "code: en\nstop_words:\n  - cat\n")
	writeFile(t, dir, "stop/de.yaml", "language: de\nterms:\n  - hund\n")
	profile := writeFile(t, dir, "profile.yaml", `group_size: 1
min_count: 1
rules:
  - rules/en-extra.yaml
stoplists:
  - stop/de.yaml
`)

	comp, err := (&Loader{ProfilePath: profile}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !comp.Registry.Get(lang.EN).StopWords().IsStop("cat") {
		t.Error("override stop word missing from English rules")
	}
	if !comp.Registry.Get(lang.EN).StopWords().IsStop("the") {
		t.Error("embedded stop words should be kept")
	}
	if !comp.Registry.Get(lang.DE).StopWords().IsStop("hund") {
		t.Error("stoplist term missing from German rules")
	}

	res, err := comp.Engine.Analyze("cat cat dog dog", comp.Profile.Options(), 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range res.Words {
		if w.Text == "cat" {
			t.Errorf("cat should be filtered, got %+v", res.Words)
		}
	}
}

func TestLoaderExplicitRulePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "xx.yaml", "code: xx\nname: Test\nstop_words:\n  - zz\n")

	comp, err := (&Loader{RulePaths: []string{path}}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	codes := comp.Registry.Codes()
	if codes[len(codes)-1] != lang.Code("xx") {
		t.Errorf("extra language should come last, got %v", codes)
	}
	if _, ok := comp.Registry.Lookup(lang.Code("xx")); !ok {
		t.Error("extra language not registered")
	}
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]Loader{
		"missing profile":  {ProfilePath: filepath.Join(dir, "none.yaml")},
		"missing rules":    {RulePaths: []string{filepath.Join(dir, "none.yaml")}},
		"missing stoplist": {StoplistPaths: []string{filepath.Join(dir, "none.yaml")}},
		"invalid profile":  {ProfilePath: writeFile(t, dir, "bad.yaml", "group_size: 9\n")},
	}
	for name, l := range cases {
		if _, err := l.Load(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoaderStoplistLanguage(t *testing.T) {
	dir := t.TempDir()
	orphan := writeFile(t, dir, "sv.yaml", "language: sv\nterms:\n  - och\n")

	_, err := (&Loader{StoplistPaths: []string{orphan}}).Load()
	if !errors.Is(err, internalerr.ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}

	// rules for the language make the stoplist valid
	rules := writeFile(t, dir, "sv-rules.yaml", "code: sv\nstop_words:\n  - att\n")
	comp, err := (&Loader{RulePaths: []string{rules}, StoplistPaths: []string{orphan}}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sv, ok := comp.Registry.Lookup(lang.Code("sv"))
	if !ok || !sv.StopWords().IsStop("och") || !sv.StopWords().IsStop("att") {
		t.Error("Swedish rules should carry both stop word sources")
	}
}
