package models

// TraitScores maps trait name to its mean response score in [1,10].
type TraitScores map[string]float64

// DomainScores maps domain name to the mean of its nine trait scores.
type DomainScores map[string]float64

// DominantTraits maps "<domain>-<subdimension>" to the winning trait of
// that triad.
type DominantTraits map[string]string

// EnneagramDetails carries the full Enneagram breakdown behind the primary
// type label.
type EnneagramDetails struct {
	Type    int             `json:"type"`
	Wing    int             `json:"wing"`
	Tritype string          `json:"tritype"`
	Scores  map[int]float64 `json:"scores"`
}

// BigFiveProfile holds per-dimension scores on the 1-10 scale plus a
// High/Balanced/Low band per dimension.
type BigFiveProfile struct {
	Scores map[string]float64 `json:"scores"`
	Levels map[string]string  `json:"levels"`
}

// FrameworkMappings is the set of per-framework classifications derived
// from one response vector.
type FrameworkMappings struct {
	MBTI             string            `json:"mbti,omitempty"`
	Enneagram        string            `json:"enneagram,omitempty"`
	EnneagramDetails *EnneagramDetails `json:"enneagramDetails,omitempty"`
	BigFive          *BigFiveProfile   `json:"bigFive,omitempty"`
	DNDAlignment     string            `json:"dndAlignment,omitempty"`
	Socionics        string            `json:"socionics,omitempty"`
	HollandCode      string            `json:"hollandCode,omitempty"`
	Attachment       string            `json:"attachment,omitempty"`
}

// PersonalityProfile is the full scoring result for one response vector.
// Trait, domain, and dominant maps are ephemeral: they are recomputed per
// request from the vector and the effective configuration, never persisted
// on their own.
type PersonalityProfile struct {
	TraitScores    TraitScores       `json:"traitScores"`
	DominantTraits DominantTraits    `json:"dominantTraits"`
	DomainScores   DomainScores      `json:"domainScores"`
	Mappings       FrameworkMappings `json:"mappings"`

	// FrameworkErrors records frameworks whose configuration was unusable.
	// Those outputs are absent from Mappings; everything else still computed.
	FrameworkErrors map[string]string `json:"frameworkErrors,omitempty"`

	// OverriddenFrameworks lists frameworks whose displayed value came from
	// a user override rather than the classifier.
	OverriddenFrameworks []string `json:"overriddenFrameworks,omitempty"`
}
