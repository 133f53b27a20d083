package lang

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
)

// File is the on-disk (YAML) form of a language rule table.
type File struct {
	Code                string             `yaml:"code"`
	Name                string             `yaml:"name"`
	StopWords           []string           `yaml:"stop_words"`
	Articles            string             `yaml:"articles"`
	ValidSingleLetters  string             `yaml:"valid_single_letters"`
	CommonPhraseEndings string             `yaml:"common_phrase_endings"`
	InvalidStarters     string             `yaml:"invalid_starters"`
	Contractions        []ContractionEntry `yaml:"contractions"`
	CompoundJoiner      string             `yaml:"compound_joiner"`
	WordFrequencies     map[string]float64 `yaml:"word_frequencies"`
	MultiWordStops      []string           `yaml:"multi_word_stops"`
	Signature           Signature          `yaml:"signature"`
	Diacritics          string             `yaml:"diacritics"`
}

// ContractionEntry maps a contraction to its expansion.
type ContractionEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Signature is the script/character-class pattern used by the detector.
type Signature struct {
	Pattern string  `yaml:"pattern"`
	Weight  float64 `yaml:"weight"`
}

// ParseFile decodes one rule table.
func ParseFile(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode rules: %w", err)
	}
	if f.Code == "" {
		return File{}, fmt.Errorf("decode rules: missing code: %w", internalerr.ErrInvalidInput)
	}
	return f, nil
}

// Merge overlays o onto f. List entries are appended, word frequencies
// replaced per word, and non-empty scalar patterns replace the current ones.
func (f *File) Merge(o File) {
	if o.Name != "" {
		f.Name = o.Name
	}
	f.StopWords = append(f.StopWords, o.StopWords...)
	f.MultiWordStops = append(f.MultiWordStops, o.MultiWordStops...)
	f.Contractions = append(f.Contractions, o.Contractions...)

	replace := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	replace(&f.Articles, o.Articles)
	replace(&f.ValidSingleLetters, o.ValidSingleLetters)
	replace(&f.CommonPhraseEndings, o.CommonPhraseEndings)
	replace(&f.InvalidStarters, o.InvalidStarters)
	replace(&f.CompoundJoiner, o.CompoundJoiner)
	replace(&f.Diacritics, o.Diacritics)
	replace(&f.Signature.Pattern, o.Signature.Pattern)
	if o.Signature.Weight != 0 {
		f.Signature.Weight = o.Signature.Weight
	}

	if len(o.WordFrequencies) > 0 && f.WordFrequencies == nil {
		f.WordFrequencies = make(map[string]float64, len(o.WordFrequencies))
	}
	for w, v := range o.WordFrequencies {
		f.WordFrequencies[w] = v
	}
}
