// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jimmy/client-registry/internal/backfill"
	"github.com/jimmy/client-registry/internal/db"
	"github.com/jimmy/client-registry/internal/resolve"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResolutions outputs one line per resolution result, with the rule that
// produced each match and the candidate list for conflicts.
func (p *Printer) PrintResolutions(results []resolve.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range results {
		switch r.Status {
		case resolve.StatusResolved:
			sb.WriteString(fmt.Sprintf("✓ %s\n", r.Input))
			sb.WriteString(fmt.Sprintf("  → %s (%s)\n", r.CanonicalName, r.Rule))
		case resolve.StatusAmbiguous:
			sb.WriteString(fmt.Sprintf("⚠ %s: ambiguous\n", r.Input))
			for _, c := range r.Candidates {
				sb.WriteString(fmt.Sprintf("  ? %s\n", c))
			}
		default:
			sb.WriteString(fmt.Sprintf("✗ %s: unresolved\n", r.Input))
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("NAME RESOLUTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBackfillReport outputs a per-table backfill summary with the names
// left for operator triage.
func (p *Printer) PrintBackfillReport(report *backfill.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	title := fmt.Sprintf("BACKFILL: %s", report.Table)
	if report.DryRun {
		title += " (dry run)"
	}

	sb.WriteString(fmt.Sprintf("Distinct names:  %d\n", report.DistinctNames))
	sb.WriteString(fmt.Sprintf("Rows scanned:    %d\n", report.RowsScanned))
	sb.WriteString(fmt.Sprintf("Names resolved:  %d\n", report.Resolved))
	sb.WriteString(fmt.Sprintf("Rows linked:     %d\n", report.RowsLinked))

	if len(report.Unresolved) > 0 {
		sb.WriteString("\nUnresolved (needs alias or new client):\n")
		writeNameCounts(&sb, report.Unresolved)
	}

	if len(report.Ambiguous) > 0 {
		sb.WriteString("\nAmbiguous (conflicting candidates):\n")
		count := min(len(report.Ambiguous), maxItemsToShow)
		for i := 0; i < count; i++ {
			a := report.Ambiguous[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d rows)\n", a.ClientName, a.RowCount))
			sb.WriteString(fmt.Sprintf("    candidates: %s\n", strings.Join(a.Candidates, " | ")))
		}
		if len(report.Ambiguous) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Ambiguous)-maxItemsToShow))
		}
	}

	if len(report.MissingClients) > 0 {
		sb.WriteString("\nAliased to unregistered clients:\n")
		writeNameCounts(&sb, report.MissingClients)
	}

	if report.Clean() {
		sb.WriteString("\n✅ Nothing left to triage")
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintUnmatched outputs the operator-facing unmatched-names report for one
// fact table.
func (p *Printer) PrintUnmatched(table string, names []db.NameCount) {
	var sb strings.Builder
	if len(names) == 0 {
		sb.WriteString("✅ All rows linked")
	} else {
		sb.WriteString(fmt.Sprintf("%d names awaiting triage:\n\n", len(names)))
		count := min(len(names), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %4d  %s\n", names[i].RowCount, names[i].ClientName))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
	}

	p.printBox(fmt.Sprintf("UNMATCHED: %s", table), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNPSSummaries outputs per-client NPS scores for a period.
func (p *Printer) PrintNPSSummaries(summaries []db.NPSClientSummary) {
	if len(summaries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Period: %s\n\n", summaries[0].Period))
	for _, s := range summaries {
		name := s.ClientName
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-32s %+6.1f  (%d responses)\n", name, s.NPSScore, s.ResponseCount))
	}

	p.printBox("NPS BY CLIENT", strings.TrimSuffix(sb.String(), "\n"))
}

func writeNameCounts(sb *strings.Builder, names []backfill.UnresolvedName) {
	count := min(len(names), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s (%d rows)\n", names[i].ClientName, names[i].RowCount))
	}
	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
	}
}
