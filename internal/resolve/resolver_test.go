package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	aliases := []Alias{
		{DisplayName: "Guam Regional Medical Centre", CanonicalName: "Guam Regional Medical City (GRMC)", IsActive: true},
		{DisplayName: "GRMC", CanonicalName: "Guam Regional Medical City (GRMC)", IsActive: true},
		{DisplayName: "Ballarat", CanonicalName: "Grampians Health", IsActive: true},
		{DisplayName: "Old West Clinic", CanonicalName: "West Clinic Group", IsActive: false},
	}
	canonicals := []string{
		"Guam Regional Medical City (GRMC)",
		"Grampians Health",
		"Gippsland Health Alliance (GHA)",
		"West Clinic Group",
	}
	return NewSnapshot(aliases, canonicals)
}

func TestResolve_AliasExactMatch(t *testing.T) {
	s := testSnapshot()

	result := s.Resolve("Guam Regional Medical Centre")

	require.Equal(t, StatusResolved, result.Status)
	assert.Equal(t, "Guam Regional Medical City (GRMC)", result.CanonicalName)
	assert.Equal(t, RuleAliasExact, result.Rule)
}

func TestResolve_AliasMatchIsCaseInsensitive(t *testing.T) {
	s := testSnapshot()

	// The worked example from the alias fix-up history: same alias, different case.
	result := s.Resolve("guam regional medical centre")

	require.Equal(t, StatusResolved, result.Status)
	assert.Equal(t, "Guam Regional Medical City (GRMC)", result.CanonicalName)
	assert.Equal(t, RuleAliasExact, result.Rule)
}

func TestResolve_CanonicalSelfReference(t *testing.T) {
	s := testSnapshot()

	for _, name := range []string{"Grampians Health", "GRAMPIANS HEALTH", "grampians health"} {
		result := s.Resolve(name)
		require.Equal(t, StatusResolved, result.Status, "input %q", name)
		assert.Equal(t, "Grampians Health", result.CanonicalName)
	}

	result := s.Resolve("Gippsland Health Alliance (GHA)")
	require.Equal(t, StatusResolved, result.Status)
	assert.Equal(t, RuleCanonicalExact, result.Rule)
}

func TestResolve_NormalizedMatch(t *testing.T) {
	s := testSnapshot()

	// Punctuation and diacritic variants of a known alias.
	result := s.Resolve("Guam Regional Medical Centré.")

	require.Equal(t, StatusResolved, result.Status)
	assert.Equal(t, "Guam Regional Medical City (GRMC)", result.CanonicalName)
	assert.Equal(t, RuleNormalized, result.Rule)
}

func TestResolve_ContainmentMatch(t *testing.T) {
	s := testSnapshot()

	result := s.Resolve("Grampians Health - Ballarat Campus")

	require.Equal(t, StatusResolved, result.Status)
	assert.Equal(t, "Grampians Health", result.CanonicalName)
	assert.Equal(t, RuleContainment, result.Rule)
}

func TestResolve_AmbiguousContainmentIsReported(t *testing.T) {
	aliases := []Alias{}
	canonicals := []string{"Grampians Health", "Gippsland Health Alliance (GHA)"}
	s := NewSnapshot(aliases, canonicals)
	s.MinContainmentLength = 4

	// "Health" is contained in both canonical names. This must surface as a
	// conflict, never resolve to whichever name happens to come first.
	result := s.Resolve("Health")

	require.Equal(t, StatusAmbiguous, result.Status)
	assert.Empty(t, result.CanonicalName)
	assert.Equal(t, RuleContainment, result.Rule)
	assert.Equal(t, []string{"Gippsland Health Alliance (GHA)", "Grampians Health"}, result.Candidates)
}

func TestResolve_ShortTokensNeverContainmentMatch(t *testing.T) {
	s := NewSnapshot(nil, []string{"SA Health"})

	// "SA" normalizes to two runes, well under the threshold.
	result := s.Resolve("SA")

	assert.Equal(t, StatusUnresolved, result.Status)
}

func TestResolve_UnresolvedName(t *testing.T) {
	s := testSnapshot()

	result := s.Resolve("Unknown Regional Clinic")

	assert.Equal(t, StatusUnresolved, result.Status)
	assert.Empty(t, result.CanonicalName)
	assert.Empty(t, result.Candidates)
	assert.False(t, result.Resolved())
}

func TestResolve_EmptyInput(t *testing.T) {
	s := testSnapshot()

	assert.Equal(t, StatusUnresolved, s.Resolve("").Status)
	assert.Equal(t, StatusUnresolved, s.Resolve("   ").Status)
	assert.Equal(t, StatusUnresolved, s.Resolve("---").Status)
}

func TestResolve_InactiveAliasIsIgnored(t *testing.T) {
	s := testSnapshot()

	result := s.Resolve("Old West Clinic")

	// The alias exists but is soft-disabled; only containment can still see
	// the canonical name, and "oldwestclinic" does not contain it.
	assert.NotEqual(t, RuleAliasExact, result.Rule)
	assert.Equal(t, StatusUnresolved, result.Status)
}

func TestResolve_AllAliasesRoundTrip(t *testing.T) {
	aliases := []Alias{
		{DisplayName: "Guam Regional Medical Centre", CanonicalName: "Guam Regional Medical City (GRMC)", IsActive: true},
		{DisplayName: "Sunshine Coast HHS", CanonicalName: "Sunshine Coast Hospital and Health Service", IsActive: true},
		{DisplayName: "Hôpital Sainte-Justine", CanonicalName: "CHU Sainte-Justine", IsActive: true},
	}
	canonicals := []string{
		"Guam Regional Medical City (GRMC)",
		"Sunshine Coast Hospital and Health Service",
		"CHU Sainte-Justine",
	}
	s := NewSnapshot(aliases, canonicals)

	// Every alias display name, and its case variants, must resolve to its
	// recorded canonical name.
	for _, a := range aliases {
		for _, variant := range []string{a.DisplayName, Fold(a.DisplayName)} {
			result := s.Resolve(variant)
			require.Equal(t, StatusResolved, result.Status, "input %q", variant)
			assert.Equal(t, a.CanonicalName, result.CanonicalName, "input %q", variant)
		}
	}

	// And every canonical name resolves to itself.
	for _, c := range canonicals {
		result := s.Resolve(c)
		require.Equal(t, StatusResolved, result.Status, "input %q", c)
		assert.Equal(t, c, result.CanonicalName)
	}
}

func TestResolve_NormalizedCollisionAcrossAliasesIsNotAConflict(t *testing.T) {
	// Two alias rows normalizing to the same form but agreeing on the
	// canonical name are a single match, not an ambiguity.
	aliases := []Alias{
		{DisplayName: "Mercy Health", CanonicalName: "Mercy Health Services", IsActive: true},
		{DisplayName: "Mercy-Health", CanonicalName: "Mercy Health Services", IsActive: true},
	}
	s := NewSnapshot(aliases, []string{"Mercy Health Services"})

	result := s.Resolve("mercy health!")

	require.Equal(t, StatusResolved, result.Status)
	assert.Equal(t, "Mercy Health Services", result.CanonicalName)
}

func TestResolve_NormalizedConflictAcrossCanonicalsIsAmbiguous(t *testing.T) {
	aliases := []Alias{
		{DisplayName: "St. Lukes", CanonicalName: "St Lukes Hospital Sydney", IsActive: true},
		{DisplayName: "St Luke's", CanonicalName: "St Lukes Care", IsActive: true},
	}
	s := NewSnapshot(aliases, []string{"St Lukes Hospital Sydney", "St Lukes Care"})

	result := s.Resolve("st lukes")

	require.Equal(t, StatusAmbiguous, result.Status)
	assert.Equal(t, RuleNormalized, result.Rule)
	assert.Len(t, result.Candidates, 2)
}

func TestResolveAll(t *testing.T) {
	s := testSnapshot()

	results := s.ResolveAll([]string{"GRMC", "Unknown Regional Clinic"})

	require.Len(t, results, 2)
	assert.Equal(t, StatusResolved, results[0].Status)
	assert.Equal(t, StatusUnresolved, results[1].Status)
}

func TestSnapshotCounts(t *testing.T) {
	s := testSnapshot()

	assert.Equal(t, 3, s.AliasCount()) // inactive alias excluded
	assert.Equal(t, 4, s.CanonicalCount())
}
