// Package fuzzy provides efficient fuzzy matching for CLI suggestions.
// Used by argspec error construction to attach "did you mean" hints to
// unknown-option and unknown-subcommand failures.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher provides fuzzy matching functionality for CLI suggestions.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a new fuzzy matcher with the given max edit distance.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // don't suggest for very short inputs
	}
}

// Match represents a fuzzy match result.
type Match struct {
	Value    string
	Distance int
}

// FindBest finds the best matching string from candidates.
// Returns an empty string if no good match was found.
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches finds all candidates within the maximum edit distance,
// sorted by distance then lexically so results are deterministic.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}

	var matches []Match
	input = strings.ToLower(input)

	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if input == lower {
			// Exact matches are not fuzzy matches.
			continue
		}
		distance := m.levenshtein(input, lower)
		if distance <= m.maxDistance {
			matches = append(matches, Match{Value: candidate, Distance: distance})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance == matches[j].Distance {
			return matches[i].Value < matches[j].Value
		}
		return matches[i].Distance < matches[j].Distance
	})

	return matches
}

// levenshtein calculates the edit distance between two strings using two
// rows instead of a full matrix, with early termination once the distance
// is guaranteed to exceed the maximum.
func (m *Matcher) levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for i := 1; i <= len(b); i++ {
		current[0] = i
		minInRow := i

		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}
			current[j] = minThree(
				current[j-1]+1,     // insertion
				previous[j]+1,      // deletion
				previous[j-1]+cost, // substitution
			)
			if current[j] < minInRow {
				minInRow = current[j]
			}
		}

		if minInRow > m.maxDistance {
			return m.maxDistance + 1
		}
		previous, current = current, previous
	}

	return previous[len(a)]
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func minThree(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Convenience functions for CLI usage

// FindBest finds the best matching candidate within maxDistance edits.
func FindBest(input string, candidates []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, candidates)
}

// FindSuggestions finds up to maxSuggestions candidates for error messages.
func FindSuggestions(input string, candidates []string, maxDistance, maxSuggestions int) []string {
	matches := NewMatcher(maxDistance).FindMatches(input, candidates)

	limit := len(matches)
	if maxSuggestions < limit {
		limit = maxSuggestions
	}
	suggestions := make([]string, 0, limit)
	for i, match := range matches {
		if i >= maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Value)
	}
	return suggestions
}
