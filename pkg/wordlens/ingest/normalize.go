package ingest

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wordlens/pkg/wordlens/lang"
)

// Normalize prepares text for tokenization under the given language rules:
// lowercase (unless caseSensitive) and NFD, then contraction expansion in
// table order, then compound-joiner removal.
func Normalize(text string, rules *lang.Rules, caseSensitive bool) string {
	if !caseSensitive {
		text = cases.Lower(rules.Code.Tag()).String(text)
	}
	text = norm.NFD.String(text)

	for _, c := range rules.Contractions() {
		text = c.Apply(text, caseSensitive)
	}

	if rules.CompoundJoiner != nil {
		text = rules.CompoundJoiner.ReplaceAllLiteralString(text, "")
	}

	return text
}
