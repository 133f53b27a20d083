package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordlens/pkg/wordlens"
	"github.com/cognicore/wordlens/pkg/wordlens/density"
	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
	"github.com/cognicore/wordlens/pkg/wordlens/lang"
)

// Profile holds the persisted analysis settings
type Profile struct {
	GroupSize     int            `yaml:"group_size"`
	MinCount      int            `yaml:"min_count"`
	CaseSensitive bool           `yaml:"case_sensitive"`
	DensityRanges density.Ranges `yaml:"density_ranges"`
	Rules         []string       `yaml:"rules"`
	Stoplists     []string       `yaml:"stoplists"`
}

// DefaultProfile returns the stock settings.
func DefaultProfile() Profile {
	opts := wordlens.DefaultOptions()
	return Profile{
		GroupSize:     opts.GroupSize,
		MinCount:      opts.MinCount,
		CaseSensitive: opts.CaseSensitive,
		DensityRanges: density.DefaultRanges(),
	}
}

// Options returns the per-call analysis options of the profile.
func (p Profile) Options() wordlens.AnalyzeOptions {
	return wordlens.AnalyzeOptions{
		GroupSize:     p.GroupSize,
		MinCount:      p.MinCount,
		CaseSensitive: p.CaseSensitive,
	}
}

// Validate checks the analysis options and density ranges.
func (p Profile) Validate() error {
	if err := p.Options().Validate(); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	if err := p.DensityRanges.Validate(); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	return nil
}

// ParseProfile decodes a YAML profile over the defaults. Unknown keys are rejected.
func ParseProfile(data []byte) (*Profile, error) {
	p := DefaultProfile()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode profile: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProfile loads a profile from a YAML file
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfile(data)
}

// LoadRules loads one rule override file
func LoadRules(path string) (lang.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lang.File{}, err
	}
	f, err := lang.ParseFile(data)
	if err != nil {
		return lang.File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Stoplist is a list of extra stop words for one language
type Stoplist struct {
	Language string   `yaml:"language"`
	Terms    []string `yaml:"terms"`
}

// LoadStoplist loads stop words from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}
	if sl.Language == "" {
		return nil, fmt.Errorf("%s: stoplist without language: %w", path, internalerr.ErrInvalidInput)
	}

	return &sl, nil
}

// File converts the stoplist into a rule override.
func (s *Stoplist) File() lang.File {
	return lang.File{Code: s.Language, StopWords: s.Terms}
}
