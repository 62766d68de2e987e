package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/planroom-inc/planroom-engine/pkg/models"
)

// maxListedPerSeverity caps how many conflicts each severity section of
// the rendered report lists before trailing off with a count.
const maxListedPerSeverity = 10

// Report is the structured summary of a run's stored conflicts. Conflicts
// carries the full stored set in insertion order; the counts are derived
// from it. BySeverity always contains all four severity bands, ByType
// only the types actually seen.
type Report struct {
	TotalConflicts int                `json:"totalConflicts"`
	BySeverity     map[string]int     `json:"bySeverity"`
	ByType         map[string]int     `json:"byType"`
	Conflicts      []*models.Conflict `json:"conflicts"`
}

// Summarize aggregates stored conflicts into a Report.
func Summarize(conflicts []*models.Conflict) *Report {
	report := &Report{
		TotalConflicts: len(conflicts),
		BySeverity:     make(map[string]int),
		ByType:         make(map[string]int),
		Conflicts:      conflicts,
	}

	for _, severity := range models.SeverityOrder {
		report.BySeverity[string(severity)] = 0
	}
	for _, conflict := range conflicts {
		report.BySeverity[string(conflict.Severity)]++
		report.ByType[string(conflict.ConflictType)]++
	}

	return report
}

// RenderText writes the human-readable run report: a banner with the
// project identity, the dataset statistics, then one section per severity
// band in priority order, each listing conflicts in stored order and
// capped at maxListedPerSeverity entries.
func RenderText(w io.Writer, result *RunResult) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "CROSS-CHECK REPORT: PROJECT %s - %s\n", result.Project.ProjectNumber, result.Project.Name)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	renderStatsLines(w, result.Stats)
	fmt.Fprintln(w)

	report := result.Report
	fmt.Fprintf(w, "Total conflicts: %d\n", report.TotalConflicts)
	if report.TotalConflicts == 0 {
		fmt.Fprintln(w, "No conflicts detected.")
		return
	}

	for _, severity := range models.SeverityOrder {
		var band []*models.Conflict
		for _, conflict := range report.Conflicts {
			if conflict.Severity == severity {
				band = append(band, conflict)
			}
		}
		if len(band) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s (%d)\n", strings.ToUpper(string(severity)), len(band))
		for i, conflict := range band {
			if i == maxListedPerSeverity {
				fmt.Fprintf(w, "  ...and %d more\n", len(band)-maxListedPerSeverity)
				break
			}
			fmt.Fprintf(w, "  [%s] %s\n", conflict.ConflictType, conflict.Item)
			fmt.Fprintf(w, "      %s\n", conflict.Details)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("-", 80))
	fmt.Fprintf(w, "By severity: %s\n", severityCounts(report.BySeverity))
	fmt.Fprintf(w, "By type: %s\n", typeCounts(report.ByType))
}

// RenderStats writes the dataset statistics view used by the stats
// command, including stored conflict counts from the last run.
func RenderStats(w io.Writer, result *StatsResult) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "PROJECT %s - %s\n", result.Project.ProjectNumber, result.Project.Name)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	renderStatsLines(w, result.Stats)
	fmt.Fprintln(w)

	total := 0
	for _, count := range result.StoredConflicts {
		total += count
	}
	if total == 0 {
		fmt.Fprintln(w, "Stored conflicts: none")
		return
	}
	fmt.Fprintf(w, "Stored conflicts: %d (%s)\n", total, severityCounts(result.StoredConflicts))
}

func renderStatsLines(w io.Writer, stats DatasetStats) {
	if len(stats.Disciplines) > 0 {
		fmt.Fprintf(w, "Sheets checked: %s (%s)\n",
			countNoun(stats.SheetCount, "current sheet"), strings.Join(stats.Disciplines, ", "))
	} else {
		fmt.Fprintf(w, "Sheets checked: %s\n", countNoun(stats.SheetCount, "current sheet"))
	}
	fmt.Fprintf(w, "Facts examined: %s, %s, %s\n",
		countNoun(stats.LineCount, "line"),
		countNoun(stats.EquipmentCount, "equipment"),
		countNoun(stats.InstrumentCount, "instrument"))
}

// severityCounts formats per-severity counts in priority order.
func severityCounts(bySeverity map[string]int) string {
	parts := make([]string, 0, len(models.SeverityOrder))
	for _, severity := range models.SeverityOrder {
		parts = append(parts, fmt.Sprintf("%s: %d", severity, bySeverity[string(severity)]))
	}
	return strings.Join(parts, ", ")
}

// typeCounts formats per-type counts alphabetically.
func typeCounts(byType map[string]int) string {
	types := make([]string, 0, len(byType))
	for conflictType := range byType {
		types = append(types, conflictType)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, conflictType := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", conflictType, byType[conflictType]))
	}
	return strings.Join(parts, ", ")
}

// countNoun formats a count with its pluralized noun.
func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %s", n, inflection.Plural(noun))
}
