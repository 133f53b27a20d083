package ngram

import "strings"

// ChunkSize is the number of window start positions processed per chunk.
// Windows near the end of a chunk still read the following tokens, so no
// n-gram spanning a chunk boundary is lost.
const ChunkSize = 100000

// Table counts phrases and remembers the order they were first seen in.
type Table struct {
	counts map[string]int
	order  []string
}

// Entry is one phrase with its count.
type Entry struct {
	Phrase string
	Count  int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{counts: make(map[string]int)}
}

// Add increments phrase by n.
func (t *Table) Add(phrase string, n int) {
	if _, ok := t.counts[phrase]; !ok {
		t.order = append(t.order, phrase)
	}
	t.counts[phrase] += n
}

// Count returns the count of phrase (0 when absent).
func (t *Table) Count(phrase string) int {
	return t.counts[phrase]
}

// Len returns the number of distinct phrases.
func (t *Table) Len() int {
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Entries returns all phrases in first-seen order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, Entry{Phrase: p, Count: t.counts[p]})
	}
	return out
}

// Extract slides a window of groupSize tokens over tokens and counts every
// space-joined window. An empty table is returned for groupSize < 1 or no tokens.
func Extract(tokens []string, groupSize int) *Table {
	return extractChunked(tokens, groupSize, ChunkSize)
}

func extractChunked(tokens []string, groupSize, chunkSize int) *Table {
	table := NewTable()
	if groupSize < 1 || len(tokens) == 0 {
		return table
	}

	windows := len(tokens) - groupSize + 1
	var b strings.Builder
	for start := 0; start < windows; start += chunkSize {
		end := min(start+chunkSize, windows)
		for j := start; j < end; j++ {
			b.Reset()
			for k, tok := range tokens[j : j+groupSize] {
				if k > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(tok)
			}
			table.Add(b.String(), 1)
		}
	}
	return table
}
