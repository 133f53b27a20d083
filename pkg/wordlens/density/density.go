package density

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/wordlens/pkg/wordlens/ngram"
)

// WordsPerMinute drives the reading time estimate.
const WordsPerMinute = 200

// Row is one output phrase with its count and density percentage.
type Row struct {
	Text    string  `json:"text"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// PossibleNGrams returns the number of windows of groupSize in totalTokens tokens, at least 1.
func PossibleNGrams(totalTokens, groupSize int) int {
	return max(1, totalTokens-groupSize+1)
}

// Rows converts table entries with count >= minCount into rows sorted by
// count descending. Equal counts keep the table's first-occurrence order.
func Rows(t *ngram.Table, minCount, totalTokens, groupSize int) []Row {
	possible := float64(PossibleNGrams(totalTokens, groupSize))

	rows := make([]Row, 0, t.Len())
	for _, e := range t.Entries() {
		if e.Count < minCount {
			continue
		}
		rows = append(rows, Row{
			Text:    e.Phrase,
			Count:   e.Count,
			Density: Round2(float64(e.Count) / possible * 100),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// Round2 rounds x to two decimals, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Stats are corpus statistics over the full token sequence.
type Stats struct {
	TotalWords       int
	AvgWordLength    float64
	WordLengthStdDev float64
	ReadingTime      int
}

// Compute derives Stats from tokens. Lengths are counted in code points.
func Compute(tokens []string) Stats {
	if len(tokens) == 0 {
		return Stats{}
	}

	lengths := make([]float64, len(tokens))
	for i, tok := range tokens {
		lengths[i] = float64(utf8.RuneCountInString(tok))
	}

	s := Stats{
		TotalWords:  len(tokens),
		ReadingTime: int(math.Ceil(float64(len(tokens)) / WordsPerMinute)),
	}
	if len(lengths) < 2 {
		s.AvgWordLength = Round2(lengths[0])
		return s
	}
	mean, std := stat.MeanStdDev(lengths, nil)
	s.AvgWordLength = Round2(mean)
	s.WordLengthStdDev = Round2(std)
	return s
}

// UniqueCount returns the number of distinct tokens.
func UniqueCount(tokens []string) int {
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		seen[tok] = struct{}{}
	}
	return len(seen)
}

// FormatCopy renders rows one per line as "text (Nx, D.DD%)".
func FormatCopy(rows []Row) string {
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%dx, %.2f%%)", r.Text, r.Count, r.Density)
	}
	return b.String()
}
