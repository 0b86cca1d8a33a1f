// Package resolve maps raw client-name strings, as they appear in source
// feeds, to canonical client identities. Resolution is a pure function over a
// point-in-time Snapshot of the alias table and the known canonical set;
// callers load one snapshot per batch and thread it through every call.
package resolve

// Alias is a recorded raw-name-to-canonical-name mapping.
// DisplayName is the natural key; many display names may map to the same
// canonical name. Inactive aliases stay in the table for history but never
// participate in resolution.
type Alias struct {
	DisplayName   string `json:"display_name"`
	CanonicalName string `json:"canonical_name"`
	Description   string `json:"description,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// DefaultMinContainmentLength is the minimum normalized-form length (in runes)
// for either side of a containment match. Short tokens like "SA" must not
// blindly match "SA Health".
const DefaultMinContainmentLength = 6

// normEntry pairs a normalized form with the canonical name it stands for.
type normEntry struct {
	norm      string
	canonical string
}

// Snapshot is a read-only view of the alias table and canonical identity set,
// with lookup maps precomputed at build time. A Snapshot must not be mutated
// after NewSnapshot returns; build a fresh one per batch run.
type Snapshot struct {
	// MinContainmentLength may be raised by callers before resolution begins
	// to make containment matching stricter.
	MinContainmentLength int

	aliasExact map[string]string   // folded display name -> canonical
	canonExact map[string]string   // folded canonical -> canonical
	normalized map[string][]string // normalized form -> distinct canonicals
	canonNorms []normEntry         // canonical names in normalized form
}

// NewSnapshot builds the lookup maps for a resolution batch. Inactive aliases
// are excluded. Canonical names are self-registered so that a name which is
// already canonical resolves to itself.
func NewSnapshot(aliases []Alias, canonicals []string) *Snapshot {
	s := &Snapshot{
		MinContainmentLength: DefaultMinContainmentLength,
		aliasExact:           make(map[string]string, len(aliases)),
		canonExact:           make(map[string]string, len(canonicals)),
		normalized:           make(map[string][]string, len(aliases)+len(canonicals)),
		canonNorms:           make([]normEntry, 0, len(canonicals)),
	}

	for _, c := range canonicals {
		folded := Fold(c)
		if folded == "" {
			continue
		}
		s.canonExact[folded] = c
		if n := Normalize(c); n != "" {
			s.addNormalized(n, c)
			s.canonNorms = append(s.canonNorms, normEntry{norm: n, canonical: c})
		}
	}

	for _, a := range aliases {
		if !a.IsActive {
			continue
		}
		folded := Fold(a.DisplayName)
		if folded == "" {
			continue
		}
		s.aliasExact[folded] = a.CanonicalName
		if n := Normalize(a.DisplayName); n != "" {
			s.addNormalized(n, a.CanonicalName)
		}
	}

	return s
}

// addNormalized records a normalized form, keeping canonicals distinct so
// collisions surface as ambiguity instead of being overwritten.
func (s *Snapshot) addNormalized(norm, canonical string) {
	for _, existing := range s.normalized[norm] {
		if existing == canonical {
			return
		}
	}
	s.normalized[norm] = append(s.normalized[norm], canonical)
}

// AliasCount returns the number of active aliases in the snapshot.
func (s *Snapshot) AliasCount() int {
	return len(s.aliasExact)
}

// CanonicalCount returns the number of canonical identities in the snapshot.
func (s *Snapshot) CanonicalCount() int {
	return len(s.canonExact)
}
