package audit

import (
	"fmt"
	"sort"

	"github.com/AbdouB/persona/internal/models"
)

// GenerateChangesSummary structurally diffs two override states into the
// human-readable lines stored with snapshots: one line per changed weight,
// threshold, or trait mapping.
func GenerateChangesSummary(before, after *models.ScoringOverrides) []string {
	var lines []string
	lines = append(lines, diffMappings(before, after)...)
	for _, framework := range models.Frameworks {
		var ow, nw models.FrameworkWeights
		if before != nil {
			ow = before.Framework(framework)
		}
		if after != nil {
			nw = after.Framework(framework)
		}
		lines = append(lines, diffWeights(framework, ow, nw)...)
	}
	if len(lines) == 0 {
		lines = []string{"no changes"}
	}
	return lines
}

func diffMappings(before, after *models.ScoringOverrides) []string {
	var om, nm map[string][]int
	if before != nil {
		om = before.TraitMappings
	}
	if after != nil {
		nm = after.TraitMappings
	}

	var lines []string
	for _, trait := range sortedKeys(om, nm) {
		ov, inOld := om[trait]
		nv, inNew := nm[trait]
		switch {
		case !inOld:
			lines = append(lines, fmt.Sprintf("trait mapping added: %s -> %v", trait, nv))
		case !inNew:
			lines = append(lines, fmt.Sprintf("trait mapping removed: %s (was %v)", trait, ov))
		case !equalInts(ov, nv):
			lines = append(lines, fmt.Sprintf("trait mapping changed: %s %v -> %v", trait, ov, nv))
		}
	}
	return lines
}

func diffWeights(framework string, before, after models.FrameworkWeights) []string {
	var lines []string
	for _, dim := range sortedWeightKeys(before, after) {
		ow, inOld := before[dim]
		nw, inNew := after[dim]
		label := framework + "." + dim
		switch {
		case !inOld:
			lines = append(lines, fmt.Sprintf("weights added: %s", label))
			continue
		case !inNew:
			lines = append(lines, fmt.Sprintf("weights removed: %s", label))
			continue
		}

		for _, trait := range sortedFloatKeys(ow.Traits, nw.Traits) {
			o, hadOld := ow.Traits[trait]
			n, hadNew := nw.Traits[trait]
			switch {
			case !hadOld:
				lines = append(lines, fmt.Sprintf("%s: weight added %s=%.2f", label, trait, n))
			case !hadNew:
				lines = append(lines, fmt.Sprintf("%s: weight removed %s (was %.2f)", label, trait, o))
			case o != n:
				lines = append(lines, fmt.Sprintf("%s: weight %s %.2f -> %.2f", label, trait, o, n))
			}
		}

		ot, nt := ow.Threshold, nw.Threshold
		switch {
		case ot == nil && nt != nil:
			lines = append(lines, fmt.Sprintf("%s: threshold set to %.2f", label, *nt))
		case ot != nil && nt == nil:
			lines = append(lines, fmt.Sprintf("%s: threshold cleared (was %.2f)", label, *ot))
		case ot != nil && nt != nil && *ot != *nt:
			lines = append(lines, fmt.Sprintf("%s: threshold %.2f -> %.2f", label, *ot, *nt))
		}
	}
	return lines
}

func sortedKeys(a, b map[string][]int) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func sortedWeightKeys(a, b models.FrameworkWeights) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func sortedFloatKeys(a, b map[string]float64) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
