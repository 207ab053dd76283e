// Package models contains core data structures for Persona
package models

import "fmt"

// Survey instrument constants. The default instrument asks 108 Likert
// questions answered on a 1-10 scale, three questions per trait.
const (
	QuestionCount = 108
	ScaleMin      = 1
	ScaleMax      = 10
)

// ResponseVector is the ordered sequence of raw survey answers.
// Index i holds the answer to question i+1 (questions are 1-based
// everywhere an operator sees them).
type ResponseVector []int

// Validate checks length and value range. A violation is a hard input
// error: scoring must not start on an invalid vector.
func (r ResponseVector) Validate() error {
	if len(r) != QuestionCount {
		return &InputError{Reason: fmt.Sprintf("expected %d responses, got %d", QuestionCount, len(r))}
	}
	for i, v := range r {
		if v < ScaleMin || v > ScaleMax {
			return &InputError{Reason: fmt.Sprintf("response %d is %d, must be in [%d,%d]", i+1, v, ScaleMin, ScaleMax)}
		}
	}
	return nil
}
