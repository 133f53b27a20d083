package wordlens

import (
	"fmt"

	"github.com/cognicore/wordlens/pkg/wordlens/internalerr"
)

// Limits accepted by Analyze.
const (
	MaxTextLength = 1_000_000
	MinGroupSize  = 1
	MaxGroupSize  = 5
)

// AnalyzeOptions configures one analysis.
type AnalyzeOptions struct {
	GroupSize     int  `json:"groupSize" yaml:"group_size"`
	MinCount      int  `json:"minCount" yaml:"min_count"`
	CaseSensitive bool `json:"caseSensitive" yaml:"case_sensitive"`
}

// DefaultOptions returns single words seen at least twice, case-insensitive.
func DefaultOptions() AnalyzeOptions {
	return AnalyzeOptions{GroupSize: 1, MinCount: 2}
}

// Validate checks the group size and minimum count.
func (o AnalyzeOptions) Validate() error {
	if o.GroupSize < MinGroupSize || o.GroupSize > MaxGroupSize {
		return &Error{
			Kind: internalerr.ErrInvalidConfig,
			Msg:  fmt.Sprintf("group size must be between %d and %d, got %d", MinGroupSize, MaxGroupSize, o.GroupSize),
		}
	}
	if o.MinCount <= 0 {
		return &Error{
			Kind: internalerr.ErrInvalidConfig,
			Msg:  fmt.Sprintf("minimum count must be greater than 0, got %d", o.MinCount),
		}
	}
	return nil
}
