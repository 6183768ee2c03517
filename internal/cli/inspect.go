package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"facegen-baseline/internal/app"
	"facegen-baseline/internal/types"
)

type inspectOptions struct {
	ReportDir string
	Output    string
	Format    string
	Verbose   bool
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the report and patch of a previous run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ReportDir, "report-dir", "", "Run report directory (defaults to the output directory)")
	cmd.Flags().StringVar(&opts.Output, "output", "out/FacegenBaseline.esp.yaml", "Patch output path")
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Patch format (yaml|sqlite)")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "List every record outcome")
	_ = viper.BindPFlag("report_dir", cmd.Flags().Lookup("report-dir"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	output := resolveString(cmd, opts.Output, "output", "output")
	reportDir := resolveString(cmd, opts.ReportDir, "report_dir", "report-dir")
	if reportDir == "" {
		reportDir = defaultReportDir(output)
	}
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		ReportDir: reportDir,
		PatchPath: output,
		Format:    resolveString(cmd, opts.Format, "format", "format"),
	})
	if err != nil {
		return err
	}
	printRunSummary(result.Summary)
	printLabelValue("overrides in patch", fmt.Sprintf("%d", result.Overrides))
	printLabelValue("patch masters", joinModKeys(result.Masters))
	if opts.Verbose {
		printOutcomes(result.Outcomes)
	}
	return nil
}

func joinModKeys(keys []types.ModKey) string {
	out := ""
	for i, key := range keys {
		if i > 0 {
			out += ", "
		}
		out += string(key)
	}
	return out
}
