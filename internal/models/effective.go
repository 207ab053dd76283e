package models

// EffectiveConfig is the fully resolved configuration for one scoring
// call: defaults overlaid with the global override, plus any per-user
// pinned display values. UserValues replace only the final labels; the
// weight tables still drive every internal computation.
type EffectiveConfig struct {
	TraitMappings map[string][]int            `json:"traitMappings"`
	Frameworks    map[string]FrameworkWeights `json:"frameworks"`
	UserValues    map[string]string           `json:"userValues,omitempty"`
}

// Weights returns the resolved weight table for a framework, or nil.
func (c *EffectiveConfig) Weights(framework string) FrameworkWeights {
	if c == nil {
		return nil
	}
	return c.Frameworks[framework]
}
