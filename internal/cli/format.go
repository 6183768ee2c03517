package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"facegen-baseline/internal/types"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

func printSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
}

func printSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

func printWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

func printError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func printLabelValue(label string, value string) {
	_, _ = labelColor.Printf("  %s: ", label)
	fmt.Println(value)
}

func printRunSummary(summary types.RunSummary) {
	printSection("Run summary")
	if summary.RunID != "" {
		printLabelValue("run", summary.RunID)
	}
	printLabelValue("npc records", fmt.Sprintf("%d", summary.NpcRecords))
	printLabelValue("baseline already the winner", fmt.Sprintf("%d", summary.AlreadyWins))
	printLabelValue("used as new winner", fmt.Sprintf("%d", summary.UseBaseline))
	printLabelValue("lost to better facegen", fmt.Sprintf("%d", summary.HasBetterFacegen))
	printLabelValue("excluded", fmt.Sprintf("%d", summary.Excluded))
	if len(summary.ProcessedSources) > 0 {
		printLabelValue("processed", strings.Join(summary.ProcessedSources, ", "))
	}
	if len(summary.SkippedSources) > 0 {
		printWarning("skipped: " + strings.Join(summary.SkippedSources, ", "))
	}
}

func printOutcomes(outcomes []types.RecordOutcome) {
	printSection("Records")
	for _, outcome := range outcomes {
		fmt.Printf("  %-20s %-10s %s", outcome.Classification, outcome.FormKey, outcome.EditorID)
		if outcome.Winner != "" && outcome.Classification == types.ClassificationHasBetterFacegen {
			_, _ = dimColor.Printf(" (%s)", outcome.Winner)
		}
		fmt.Println()
	}
}

func defaultReportDir(output string) string {
	if strings.TrimSpace(output) == "" {
		return ""
	}
	return filepath.Dir(output)
}
