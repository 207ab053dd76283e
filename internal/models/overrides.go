package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Framework identifiers used in override tables, user overrides, and audit
// entries.
const (
	FrameworkMBTI       = "mbti"
	FrameworkEnneagram  = "enneagram"
	FrameworkBigFive    = "bigfive"
	FrameworkSocionics  = "socionics"
	FrameworkHolland    = "holland"
	FrameworkAlignment  = "alignment"
	FrameworkIntegral   = "integral"
	FrameworkAttachment = "attachment"
)

// Frameworks lists all override-addressable frameworks in canonical order.
var Frameworks = []string{
	FrameworkMBTI,
	FrameworkEnneagram,
	FrameworkBigFive,
	FrameworkSocionics,
	FrameworkHolland,
	FrameworkAlignment,
	FrameworkIntegral,
	FrameworkAttachment,
}

// IsFramework reports whether name is a known framework identifier.
func IsFramework(name string) bool {
	for _, f := range Frameworks {
		if f == name {
			return true
		}
	}
	return false
}

// DimensionWeights is one classification dimension's tuning: trait weights
// and an optional decision threshold on the 1-10 scale.
type DimensionWeights struct {
	Traits    map[string]float64 `json:"traits"`
	Threshold *float64           `json:"threshold,omitempty"`
}

// Clone returns a deep copy.
func (d DimensionWeights) Clone() DimensionWeights {
	out := DimensionWeights{Traits: make(map[string]float64, len(d.Traits))}
	for k, v := range d.Traits {
		out.Traits[k] = v
	}
	if d.Threshold != nil {
		t := *d.Threshold
		out.Threshold = &t
	}
	return out
}

// FrameworkWeights maps a framework's dimension names (for MBTI: "EI",
// "SN", ...; for Enneagram: "1".."9") to their weight tables.
type FrameworkWeights map[string]DimensionWeights

// Clone returns a deep copy.
func (f FrameworkWeights) Clone() FrameworkWeights {
	if f == nil {
		return nil
	}
	out := make(FrameworkWeights, len(f))
	for k, v := range f {
		out[k] = v.Clone()
	}
	return out
}

// ScoringOverrides is the full override payload: question mappings plus one
// typed weight table per framework. All fields are optional; an absent
// field means "use the layer below".
type ScoringOverrides struct {
	TraitMappings map[string][]int `json:"traitMappings,omitempty"`
	MBTI          FrameworkWeights `json:"mbti,omitempty"`
	Enneagram     FrameworkWeights `json:"enneagram,omitempty"`
	BigFive       FrameworkWeights `json:"bigfive,omitempty"`
	Socionics     FrameworkWeights `json:"socionics,omitempty"`
	Holland       FrameworkWeights `json:"holland,omitempty"`
	Alignment     FrameworkWeights `json:"alignment,omitempty"`
	Integral      FrameworkWeights `json:"integral,omitempty"`
	Attachment    FrameworkWeights `json:"attachment,omitempty"`
}

// Framework returns the weight table for a framework name, or nil.
func (o *ScoringOverrides) Framework(name string) FrameworkWeights {
	if o == nil {
		return nil
	}
	switch name {
	case FrameworkMBTI:
		return o.MBTI
	case FrameworkEnneagram:
		return o.Enneagram
	case FrameworkBigFive:
		return o.BigFive
	case FrameworkSocionics:
		return o.Socionics
	case FrameworkHolland:
		return o.Holland
	case FrameworkAlignment:
		return o.Alignment
	case FrameworkIntegral:
		return o.Integral
	case FrameworkAttachment:
		return o.Attachment
	}
	return nil
}

// SetFramework replaces the weight table for a framework name.
func (o *ScoringOverrides) SetFramework(name string, w FrameworkWeights) {
	switch name {
	case FrameworkMBTI:
		o.MBTI = w
	case FrameworkEnneagram:
		o.Enneagram = w
	case FrameworkBigFive:
		o.BigFive = w
	case FrameworkSocionics:
		o.Socionics = w
	case FrameworkHolland:
		o.Holland = w
	case FrameworkAlignment:
		o.Alignment = w
	case FrameworkIntegral:
		o.Integral = w
	case FrameworkAttachment:
		o.Attachment = w
	}
}

// Clone returns a deep copy.
func (o *ScoringOverrides) Clone() *ScoringOverrides {
	if o == nil {
		return nil
	}
	out := &ScoringOverrides{}
	if o.TraitMappings != nil {
		out.TraitMappings = make(map[string][]int, len(o.TraitMappings))
		for k, v := range o.TraitMappings {
			idx := make([]int, len(v))
			copy(idx, v)
			out.TraitMappings[k] = idx
		}
	}
	for _, f := range Frameworks {
		out.SetFramework(f, o.Framework(f).Clone())
	}
	return out
}

// Merge overlays partial onto o per-trait and per-dimension, returning a new
// value. A dimension present in partial replaces the same dimension in o
// wholesale; dimensions absent from partial are kept.
func (o *ScoringOverrides) Merge(partial *ScoringOverrides) *ScoringOverrides {
	out := o.Clone()
	if out == nil {
		out = &ScoringOverrides{}
	}
	if partial == nil {
		return out
	}
	if len(partial.TraitMappings) > 0 {
		if out.TraitMappings == nil {
			out.TraitMappings = make(map[string][]int, len(partial.TraitMappings))
		}
		for trait, idx := range partial.TraitMappings {
			cp := make([]int, len(idx))
			copy(cp, idx)
			out.TraitMappings[trait] = cp
		}
	}
	for _, f := range Frameworks {
		pw := partial.Framework(f)
		if len(pw) == 0 {
			continue
		}
		merged := out.Framework(f)
		if merged == nil {
			merged = make(FrameworkWeights, len(pw))
		}
		for dim, w := range pw {
			merged[dim] = w.Clone()
		}
		out.SetFramework(f, merged)
	}
	return out
}

// Validate checks structural sanity at the store boundary: known trait
// names, in-range question indices, non-negative weights, thresholds on the
// response scale. An empty mapping for a known trait is rejected here too;
// it would otherwise surface as a scoring-time ConfigError.
func (o *ScoringOverrides) Validate() error {
	if o == nil {
		return nil
	}
	for trait, idx := range o.TraitMappings {
		if !IsTrait(trait) {
			return &ConfigError{Subject: trait, Reason: "unknown trait in mapping override"}
		}
		if len(idx) == 0 {
			return &ConfigError{Subject: trait, Reason: "trait mapped to zero question indices"}
		}
		for _, i := range idx {
			if i < 1 || i > QuestionCount {
				return &ConfigError{Subject: trait, Reason: fmt.Sprintf("question index %d out of range [1,%d]", i, QuestionCount)}
			}
		}
	}
	for _, f := range Frameworks {
		for dim, w := range o.Framework(f) {
			if len(w.Traits) == 0 {
				return &ConfigError{Subject: f + "." + dim, Reason: "dimension has no trait weights"}
			}
			for trait, weight := range w.Traits {
				if !IsTrait(trait) {
					return &ConfigError{Subject: f + "." + dim, Reason: fmt.Sprintf("unknown trait %q", trait)}
				}
				if weight < 0 {
					return &ConfigError{Subject: f + "." + dim, Reason: fmt.Sprintf("negative weight for %q", trait)}
				}
			}
			if w.Threshold != nil && (*w.Threshold < ScaleMin || *w.Threshold > ScaleMax) {
				return &ConfigError{Subject: f + "." + dim, Reason: "threshold outside response scale"}
			}
		}
	}
	return nil
}

// ToJSON serializes the overrides.
func (o *ScoringOverrides) ToJSON() (string, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// OverridesFromJSON deserializes a ScoringOverrides payload.
func OverridesFromJSON(data string) (*ScoringOverrides, error) {
	o := &ScoringOverrides{}
	if err := json.Unmarshal([]byte(data), o); err != nil {
		return nil, err
	}
	return o, nil
}

// UserOverride pins one user's displayed value for one framework. It
// replaces the computed label entirely but never changes the computation:
// weight-driven internals (confidence, comparisons) still run on the
// effective weight tables.
type UserOverride struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Framework string    `db:"framework" json:"framework"`
	Value     string    `db:"value" json:"value"`
	Reason    string    `db:"reason" json:"reason,omitempty"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
