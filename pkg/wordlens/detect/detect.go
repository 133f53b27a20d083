package detect

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wordlens/pkg/wordlens/lang"
)

const (
	// frequencyFactor scales a rule table's word weight per occurrence.
	frequencyFactor = 1.5
	// plainTextBonus is added to English per word when the text carries no diacritics.
	plainTextBonus = 0.5
	// defaultConfidence is reported when no language scored at all.
	defaultConfidence = 0.25
)

// Detection is the outcome of language detection.
type Detection struct {
	Language   lang.Code `json:"language"`
	Confidence float64   `json:"confidence"`
}

// Detector scores text against every language of a registry.
// It is a linear-time heuristic, not a classifier.
type Detector struct {
	registry   *lang.Registry
	codes      []lang.Code
	diacritics map[rune]struct{}
}

// New creates a detector over reg.
func New(reg *lang.Registry) *Detector {
	d := &Detector{
		registry:   reg,
		codes:      reg.Codes(),
		diacritics: make(map[rune]struct{}),
	}
	for _, r := range reg.Diacritics() {
		d.diacritics[r] = struct{}{}
	}
	return d
}

// Detect returns the best scoring language and its share of the total score.
// Ties go to the language registered first.
func (d *Detector) Detect(text string) Detection {
	scores := d.Scores(text)

	best, bestScore, total := 0, scores[0], 0.0
	for i, s := range scores {
		total += s
		if s > bestScore {
			best, bestScore = i, s
		}
	}

	confidence := defaultConfidence
	if total > 0 {
		confidence = bestScore / total
	}
	return Detection{Language: d.codes[best], Confidence: confidence}
}

// Scores returns the raw score of every language in registry order.
func (d *Detector) Scores(text string) []float64 {
	text = norm.NFC.String(text)
	scores := make([]float64, len(d.codes))

	// character class / suffix signatures
	for i, code := range d.codes {
		rules, _ := d.registry.Lookup(code)
		if rules.Signature == nil {
			continue
		}
		matches := rules.Signature.FindAllStringIndex(text, -1)
		scores[i] += float64(len(matches)) * rules.SignatureWeight
	}

	lower := cases.Lower(language.Und).String(text)
	words := strings.Fields(lower)
	for _, w := range words {
		for i, code := range d.codes {
			rules, _ := d.registry.Lookup(code)
			if weight, ok := rules.WordFrequency(w); ok {
				scores[i] += weight * frequencyFactor
			}
		}
	}

	// plain ASCII-like text leans English
	if !strings.ContainsFunc(lower, d.isDiacritic) {
		for i, code := range d.codes {
			if code == lang.EN {
				scores[i] += float64(len(words)) * plainTextBonus
			}
		}
	}

	return scores
}

func (d *Detector) isDiacritic(r rune) bool {
	_, ok := d.diacritics[r]
	return ok
}
