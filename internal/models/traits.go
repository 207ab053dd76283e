package models

import "fmt"

// Triad is a group of three mutually exclusive traits within one domain
// sub-dimension. Trait order is pole / balanced / pole: the middle trait is
// the ambivalent choice, and the dominance tie-break rule depends on it.
type Triad struct {
	Domain       string
	Subdimension string
	Traits       [3]string
}

// Key returns the "<domain>-<subdimension>" identifier used in
// DominantTraits maps.
func (t Triad) Key() string {
	return fmt.Sprintf("%s-%s", t.Domain, t.Subdimension)
}

// Domain names, in canonical order.
var Domains = []string{"cognition", "energy", "identity", "tactics"}

// Triads is the fixed structural table: 4 domains x 3 triads x 3 traits.
// All 36 trait names are unique.
var Triads = []Triad{
	{"cognition", "perception", [3]string{"Concrete", "Integrative", "Abstract"}},
	{"cognition", "judgment", [3]string{"Logical", "Discerning", "Empathic"}},
	{"cognition", "learning", [3]string{"Methodical", "Adaptive", "Exploratory"}},

	{"energy", "social", [3]string{"Outgoing", "Ambiverted", "Reserved"}},
	{"energy", "drive", [3]string{"Assertive", "Measured", "Accommodating"}},
	{"energy", "focus", [3]string{"Outward", "Situational", "Inward"}},

	{"identity", "stability", [3]string{"Steady", "Responsive", "Sensitive"}},
	{"identity", "expression", [3]string{"Expressive", "Selective", "Contained"}},
	{"identity", "outlook", [3]string{"Optimistic", "Grounded", "Cautious"}},

	{"tactics", "structure", [3]string{"Structured", "Flexible", "Spontaneous"}},
	{"tactics", "pacing", [3]string{"Driven", "Paced", "Reflective"}},
	{"tactics", "risk", [3]string{"Bold", "Calculated", "Careful"}},
}

// TriadsForDomain returns the three triads belonging to a domain.
func TriadsForDomain(domain string) []Triad {
	var out []Triad
	for _, t := range Triads {
		if t.Domain == domain {
			out = append(out, t)
		}
	}
	return out
}

// AllTraits returns the 36 trait names in catalog order.
func AllTraits() []string {
	out := make([]string, 0, len(Triads)*3)
	for _, t := range Triads {
		out = append(out, t.Traits[0], t.Traits[1], t.Traits[2])
	}
	return out
}

// IsTrait reports whether name is part of the trait catalog.
func IsTrait(name string) bool {
	for _, t := range Triads {
		for _, tr := range t.Traits {
			if tr == name {
				return true
			}
		}
	}
	return false
}

// DefaultTraitMappings returns the built-in trait -> question-index table.
// Each trait is scored from three consecutive 1-based question indices, in
// catalog order, covering all 108 questions exactly once.
func DefaultTraitMappings() map[string][]int {
	mappings := make(map[string][]int, len(Triads)*3)
	for i, trait := range AllTraits() {
		base := i * 3
		mappings[trait] = []int{base + 1, base + 2, base + 3}
	}
	return mappings
}
