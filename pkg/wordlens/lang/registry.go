package lang

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"sync"

	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
)

//go:embed rules/*.yaml
var embedded embed.FS

// Registry is a read-only set of compiled rule tables keyed by language code.
// It is safe for concurrent use.
type Registry struct {
	rules map[Code]*Rules
	order []Code
}

// NewRegistry compiles the given rule files. Files sharing a code are merged
// in argument order. Built-in languages keep their fixed order, other codes
// follow in the order they first appear.
func NewRegistry(files ...File) (*Registry, error) {
	merged := make(map[Code]*File, len(files))
	var extra []Code
	for _, f := range files {
		code := Code(f.Code)
		if code == "" {
			return nil, fmt.Errorf("new registry: rule file without code: %w", internalerr.ErrInvalidInput)
		}
		if cur, ok := merged[code]; ok {
			cur.Merge(f)
			continue
		}
		merged[code] = &f
		if !slices.Contains(builtinOrder, code) {
			extra = append(extra, code)
		}
	}

	reg := &Registry{rules: make(map[Code]*Rules, len(merged))}
	for _, code := range append(slices.Clone(builtinOrder), extra...) {
		f, ok := merged[code]
		if !ok {
			continue
		}
		rules, err := Compile(*f)
		if err != nil {
			return nil, fmt.Errorf("new registry: %w", err)
		}
		reg.rules[code] = rules
		reg.order = append(reg.order, code)
	}

	if len(reg.order) == 0 {
		return nil, fmt.Errorf("new registry: no rule tables: %w", internalerr.ErrInvalidInput)
	}
	return reg, nil
}

// Embedded returns the built-in rule files.
func Embedded() ([]File, error) {
	return LoadFS(embedded, "rules")
}

// LoadFS parses every *.yaml file in dir of fsys, sorted by file name.
func LoadFS(fsys fs.FS, dir string) ([]File, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read rules dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]File, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read rules %s: %w", name, err)
		}
		f, err := ParseFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse rules %s: %w", name, err)
		}
		files = append(files, f)
	}
	return files, nil
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	files, err := Embedded()
	if err != nil {
		return nil, err
	}
	return NewRegistry(files...)
})

// Default returns the registry of built-in languages, compiled on first use.
// It panics if the embedded tables are broken.
func Default() *Registry {
	reg, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("lang: embedded rules: %v", err))
	}
	return reg
}

// Lookup returns the rules of code.
func (r *Registry) Lookup(code Code) (*Rules, bool) {
	rules, ok := r.rules[code]
	return rules, ok
}

// Get returns the rules of code, falling back to English (or the first
// registered language) for unknown codes.
func (r *Registry) Get(code Code) *Rules {
	if rules, ok := r.rules[code]; ok {
		return rules
	}
	if rules, ok := r.rules[EN]; ok {
		return rules
	}
	return r.rules[r.order[0]]
}

// Codes returns registered codes in iteration order.
func (r *Registry) Codes() []Code {
	return slices.Clone(r.order)
}

// Diacritics returns the union of every language's diacritic characters.
func (r *Registry) Diacritics() string {
	seen := make(map[rune]struct{})
	var out []rune
	for _, code := range r.order {
		for _, ch := range r.rules[code].Diacritics {
			if _, ok := seen[ch]; ok {
				continue
			}
			seen[ch] = struct{}{}
			out = append(out, ch)
		}
	}
	return string(out)
}
