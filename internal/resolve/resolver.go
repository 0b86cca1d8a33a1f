package resolve

import (
	"sort"
	"strings"
)

// Status is the outcome class of a resolution attempt.
type Status string

// Resolution outcomes. Unresolved and Ambiguous are first-class results that
// require operator triage, not errors.
const (
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
	StatusAmbiguous  Status = "ambiguous"
)

// Rule identifies which matching rule produced a result.
const (
	RuleAliasExact     = "alias_exact"
	RuleCanonicalExact = "canonical_exact"
	RuleNormalized     = "normalized"
	RuleContainment    = "containment"
)

// Result is the outcome of resolving one raw name. For ambiguous results the
// distinct candidate canonical names are listed, sorted, so the conflict can
// be reported rather than silently picked from.
type Result struct {
	Input         string   `json:"input"`
	Status        Status   `json:"status"`
	CanonicalName string   `json:"canonical_name,omitempty"`
	Rule          string   `json:"rule,omitempty"`
	Candidates    []string `json:"candidates,omitempty"`
}

// Resolved reports whether the name mapped to exactly one canonical identity.
func (r Result) Resolved() bool {
	return r.Status == StatusResolved
}

// Resolve maps a raw name to a canonical identity using ordered rules, first
// match wins:
//
//  1. Exact case-insensitive match against an active alias display name.
//  2. Exact case-insensitive match against the canonical set itself.
//  3. Normalized match (punctuation, whitespace and diacritics stripped)
//     against alias display names and canonical names.
//  4. Substring containment in either direction against canonical names,
//     with both normalized forms at least MinContainmentLength runes long.
//
// A rule that matches more than one distinct canonical name yields an
// ambiguous result. No rule ever fabricates a guess.
func (s *Snapshot) Resolve(raw string) Result {
	result := Result{Input: raw, Status: StatusUnresolved}

	folded := Fold(raw)
	if folded == "" {
		return result
	}

	// Rule 1: exact alias match.
	if canonical, ok := s.aliasExact[folded]; ok {
		result.Status = StatusResolved
		result.CanonicalName = canonical
		result.Rule = RuleAliasExact
		return result
	}

	// Rule 2: the name is already canonical.
	if canonical, ok := s.canonExact[folded]; ok {
		result.Status = StatusResolved
		result.CanonicalName = canonical
		result.Rule = RuleCanonicalExact
		return result
	}

	normalizedRaw := Normalize(raw)
	if normalizedRaw == "" {
		return result
	}

	// Rule 3: normalized match.
	if candidates := s.normalized[normalizedRaw]; len(candidates) > 0 {
		return conclude(result, RuleNormalized, candidates)
	}

	// Rule 4: containment against canonical names.
	if candidates := s.containmentCandidates(normalizedRaw); len(candidates) > 0 {
		return conclude(result, RuleContainment, candidates)
	}

	return result
}

// ResolveAll resolves a batch of raw names against the same snapshot.
func (s *Snapshot) ResolveAll(raws []string) []Result {
	results := make([]Result, 0, len(raws))
	for _, raw := range raws {
		results = append(results, s.Resolve(raw))
	}
	return results
}

// containmentCandidates returns the distinct canonical names whose normalized
// form contains, or is contained by, the normalized raw name. Both sides must
// meet the length threshold.
func (s *Snapshot) containmentCandidates(normalizedRaw string) []string {
	if runeLen(normalizedRaw) < s.MinContainmentLength {
		return nil
	}

	var candidates []string
	seen := make(map[string]bool)
	for _, e := range s.canonNorms {
		if runeLen(e.norm) < s.MinContainmentLength {
			continue
		}
		if !strings.Contains(normalizedRaw, e.norm) && !strings.Contains(e.norm, normalizedRaw) {
			continue
		}
		if !seen[e.canonical] {
			seen[e.canonical] = true
			candidates = append(candidates, e.canonical)
		}
	}
	return candidates
}

// conclude turns a candidate set into a resolved or ambiguous result.
func conclude(result Result, rule string, candidates []string) Result {
	result.Rule = rule
	if len(candidates) == 1 {
		result.Status = StatusResolved
		result.CanonicalName = candidates[0]
		return result
	}

	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	result.Status = StatusAmbiguous
	result.Candidates = sorted
	return result
}

func runeLen(s string) int {
	return len([]rune(s))
}
