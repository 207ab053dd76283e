// Package search provides fuzzy name lookup over the trait catalog and
// framework identifiers, so operator typos in override commands resolve to
// suggestions instead of silent misses.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/AbdouB/persona/internal/models"
)

// Match is a catalog entry that matched a query
type Match struct {
	Name    string  // trait or framework name
	Kind    string  // "trait" or "framework"
	Context string  // for traits: "<domain>-<subdimension>"
	Score   float64 // 0..1, higher is better
}

// CatalogItems returns every searchable name: 36 traits plus the framework
// identifiers.
func CatalogItems() []Match {
	var items []Match
	for _, triad := range models.Triads {
		for _, trait := range triad.Traits {
			items = append(items, Match{Name: trait, Kind: "trait", Context: triad.Key()})
		}
	}
	for _, f := range models.Frameworks {
		items = append(items, Match{Name: f, Kind: "framework"})
	}
	return items
}

// Lookup fuzzy-matches a query against the catalog, returning matches at
// or above threshold sorted by score (highest first).
func Lookup(query string, threshold float64) []Match {
	if query == "" {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))

	var results []Match
	for _, item := range CatalogItems() {
		score := scoreName(query, strings.ToLower(item.Name), strings.ToLower(item.Context))
		if score >= threshold {
			item.Score = score
			results = append(results, item)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Resolve returns the single best match for a query, or nil when nothing
// clears the threshold.
func Resolve(query string, threshold float64) *Match {
	matches := Lookup(query, threshold)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

// scoreName calculates how well a query matches one catalog name, with the
// context string as a weak secondary signal.
func scoreName(query, name, context string) float64 {
	var score float64

	switch {
	case name == query:
		score = 1.0
	case strings.HasPrefix(name, query):
		score = 0.8
	case strings.Contains(name, query):
		score = 0.6
	case fuzzyContains(name, query):
		score = 0.4
	}

	if context != "" {
		if containsWord(context, query) {
			score = max(score, 0.5)
		} else if strings.Contains(context, query) {
			score = max(score, 0.3)
		}
	}

	return score
}

// containsWord checks if text contains token as a whole word
func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	if idx == -1 {
		return false
	}

	// Check word boundary before
	if idx > 0 {
		r := rune(text[idx-1])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}

	// Check word boundary after
	endIdx := idx + len(word)
	if endIdx < len(text) {
		r := rune(text[endIdx])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// fuzzyContains checks if text contains characters of pattern in order
// with limited gaps (allows for typos and abbreviations)
func fuzzyContains(text, pattern string) bool {
	if len(pattern) == 0 {
		return true
	}
	if len(text) == 0 {
		return false
	}

	patternIdx := 0
	gaps := 0
	maxGaps := len(pattern) // Allow gaps proportional to pattern length

	for i := 0; i < len(text) && patternIdx < len(pattern); i++ {
		if text[i] == pattern[patternIdx] {
			patternIdx++
			gaps = 0 // Reset gap counter on match
		} else if patternIdx > 0 {
			gaps++
			if gaps > maxGaps {
				return false
			}
		}
	}

	return patternIdx == len(pattern)
}

// max returns the larger of two float64 values
func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
