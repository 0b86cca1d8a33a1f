package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	// defaultBatchSize is the number of unresolved names sent per request
	defaultBatchSize = 10
	// defaultConcurrency bounds parallel LLM requests
	defaultConcurrency = 3
)

// Suggestion is a proposed alias mapping for one unresolved name.
type Suggestion struct {
	DisplayName   string  `json:"display_name"`
	CanonicalName string  `json:"canonical_name"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason,omitempty"`
}

// Options configures a suggestion run.
type Options struct {
	BatchSize   int
	Concurrency int
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	return o
}

// Suggester batches unresolved names, asks the generator for candidate
// mappings, and filters the answers against the known canonical set.
type Suggester struct {
	gen  Generator
	opts Options
}

// NewSuggester creates a Suggester using the given generator.
func NewSuggester(gen Generator, opts Options) *Suggester {
	return &Suggester{gen: gen, opts: opts.withDefaults()}
}

// Suggest proposes an alias mapping for each unresolved name. Batches run
// concurrently; a suggestion naming a canonical not in the given set is
// dropped rather than surfaced, since it cannot be applied. Results are
// sorted by descending confidence.
func (s *Suggester) Suggest(ctx context.Context, unresolved, canonicals []string) ([]Suggestion, error) {
	if len(unresolved) == 0 {
		return nil, nil
	}
	if len(canonicals) == 0 {
		return nil, fmt.Errorf("no canonical clients to suggest against")
	}

	allowed := make(map[string]string, len(canonicals))
	for _, c := range canonicals {
		allowed[strings.ToLower(strings.TrimSpace(c))] = c
	}

	batches := batchNames(unresolved, s.opts.BatchSize)

	var mu sync.Mutex
	var all []Suggestion

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			prompt := buildPrompt(batch, canonicals)
			raw, err := s.gen.GenerateJSON(ctx, prompt)
			if err != nil {
				return fmt.Errorf("suggestion batch failed: %w", err)
			}

			suggestions, err := parseSuggestions(raw)
			if err != nil {
				return err
			}

			kept := filterSuggestions(suggestions, batch, allowed)

			mu.Lock()
			all = append(all, kept...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Confidence > all[j].Confidence
	})
	return all, nil
}

// buildPrompt renders the suggestion prompt for one batch of names.
func buildPrompt(unresolved, canonicals []string) string {
	var sb strings.Builder
	sb.WriteString("You map messy client names from exported spreadsheets to a fixed list of canonical client names.\n\n")
	sb.WriteString("Canonical client names (the only valid values for canonical_name):\n")
	for _, c := range canonicals {
		sb.WriteString("- ")
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	sb.WriteString("\nUnresolved names to map:\n")
	for _, u := range unresolved {
		sb.WriteString("- ")
		sb.WriteString(u)
		sb.WriteString("\n")
	}
	sb.WriteString(`
For each unresolved name, propose at most one canonical name. Skip names you
cannot map with reasonable confidence. Abbreviations, acronyms, misspellings
and truncations are common.

Return ONLY a JSON array, no markdown:
[{"display_name": "...", "canonical_name": "...", "confidence": 0.0 to 1.0, "reason": "one short sentence"}]
`)
	return sb.String()
}

// parseSuggestions decodes the generator's JSON response.
func parseSuggestions(raw string) ([]Suggestion, error) {
	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return suggestions, nil
}

// filterSuggestions keeps suggestions whose display name was actually asked
// about and whose canonical name is in the allowed set. The canonical name is
// rewritten to its exact registered spelling.
func filterSuggestions(suggestions []Suggestion, batch []string, allowed map[string]string) []Suggestion {
	asked := make(map[string]bool, len(batch))
	for _, b := range batch {
		asked[strings.ToLower(strings.TrimSpace(b))] = true
	}

	var kept []Suggestion
	for _, s := range suggestions {
		if !asked[strings.ToLower(strings.TrimSpace(s.DisplayName))] {
			continue
		}
		canonical, ok := allowed[strings.ToLower(strings.TrimSpace(s.CanonicalName))]
		if !ok {
			continue
		}
		s.CanonicalName = canonical
		kept = append(kept, s)
	}
	return kept
}

// batchNames splits names into batches of at most size.
func batchNames(names []string, size int) [][]string {
	var batches [][]string
	for i := 0; i < len(names); i += size {
		end := i + size
		if end > len(names) {
			end = len(names)
		}
		batches = append(batches, names[i:end])
	}
	return batches
}
