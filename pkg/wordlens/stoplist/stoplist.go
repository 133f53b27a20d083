package stoplist

import "sort"

// Manager holds the stop words of one language. It cannot be changed after
// NewManager, so one Manager is safe to share between goroutines.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager from an initial word list.
// Duplicates are collapsed.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		if s == "" {
			continue
		}
		stops[s] = struct{}{}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a token is a stop word
func (m *Manager) IsStop(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.stops[token]
	return ok
}

// AllStop reports whether every token is a stop word.
// An empty slice is not considered all-stop.
func (m *Manager) AllStop(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !m.IsStop(tok) {
			return false
		}
	}
	return true
}

// Len returns the number of stop words.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.stops)
}

// All returns all stop words in lexical order
func (m *Manager) All() []string {
	if m == nil {
		return nil
	}
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
