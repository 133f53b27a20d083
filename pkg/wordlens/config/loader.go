package config

import (
	"fmt"
	"path/filepath"

	"github.com/cognicore/wordlens/pkg/wordlens"
	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
	"github.com/cognicore/wordlens/pkg/wordlens/lang"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	ProfilePath   string
	RulePaths     []string
	StoplistPaths []string
	Observer      wordlens.Observer
}

// Components holds all loaded configuration components
type Components struct {
	Profile  *Profile
	Registry *lang.Registry
	Engine   *wordlens.Engine
}

// Load reads all configuration files and returns initialized components.
// Paths listed inside the profile are relative to the profile's directory.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load profile
	rulePaths := l.RulePaths
	stoplistPaths := l.StoplistPaths
	if l.ProfilePath != "" {
		profile, err := LoadProfile(l.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		dir := filepath.Dir(l.ProfilePath)
		rulePaths = append(resolve(dir, profile.Rules), rulePaths...)
		stoplistPaths = append(resolve(dir, profile.Stoplists), stoplistPaths...)
		comp.Profile = profile
	} else {
		p := DefaultProfile()
		comp.Profile = &p
	}

	// Load rule overrides and stoplists
	var overrides []lang.File
	for _, path := range rulePaths {
		f, err := LoadRules(path)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		overrides = append(overrides, f)
	}
	var stoplists []lang.File
	for _, path := range stoplistPaths {
		sl, err := LoadStoplist(path)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stoplists = append(stoplists, sl.File())
	}

	if len(overrides) == 0 && len(stoplists) == 0 {
		comp.Registry = lang.Default()
	} else {
		files, err := lang.Embedded()
		if err != nil {
			return nil, fmt.Errorf("load embedded rules: %w", err)
		}
		files = append(files, overrides...)

		// a stoplist only extends a language that has rules
		known := make(map[string]bool, len(files))
		for _, f := range files {
			known[f.Code] = true
		}
		for i, f := range stoplists {
			if !known[f.Code] {
				return nil, fmt.Errorf("load stoplist %s: language %q has no rules: %w",
					stoplistPaths[i], f.Code, internalerr.ErrUnknownLanguage)
			}
		}

		reg, err := lang.NewRegistry(append(files, stoplists...)...)
		if err != nil {
			return nil, fmt.Errorf("build registry: %w", err)
		}
		comp.Registry = reg
	}

	comp.Engine = wordlens.New(wordlens.Options{Rules: comp.Registry, Observer: l.Observer})
	return comp, nil
}

func resolve(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(dir, p)
		}
	}
	return out
}
