package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figforge/pkg/pipeline"
	"github.com/matzehuels/figforge/pkg/sink"
)

// renderFlags holds the render command's flag values.
type renderFlags struct {
	output   string
	scale    float64
	jobs     int
	sheet    bool
	manifest bool
	force    bool
	figures  []string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [figure|tag:<tag>...]",
		Short: "Render figures to PNG files",
		Long: `Render figures to PNG files, one <name>.png per figure.

With no arguments every registered figure is rendered. Arguments select
figures by name, or by tag with "tag:chart". Unchanged figures are
restored from the cache instead of drawn.`,
		Example: `  figforge render
  figforge render architecture attention-heatmap --scale 2
  figforge render tag:chart -o paper/figures --sheet --manifest`,
		ValidArgsFunction: c.completeFigureNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.figures = args
			return c.runRender(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", pipeline.DefaultOutputDir, "output directory")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "pixel scale factor (2 for high-DPI)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "figures rendered at once (default: number of CPUs)")
	cmd.Flags().BoolVar(&flags.sheet, "sheet", false, "also write "+sink.SheetFile)
	cmd.Flags().BoolVar(&flags.manifest, "manifest", false, "also write "+sink.ManifestFile)
	cmd.Flags().BoolVar(&flags.force, "force", false, "ignore cached renders")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, flags renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	opts := cfg.pipelineOptions(cmd, flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(c.cacheDisabled(cmd, cfg))
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering into %s...", opts.OutputDir))
	spinner.Start()
	result, err := runner.Run(ctx, c.Registry, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %d figures", result.Stats.Figures)
	for _, e := range result.Entries {
		printFile(e.Path, e.Width, e.Height, e.Cached)
	}
	if result.SheetPath != "" {
		printDetail("Contact sheet: %s", result.SheetPath)
	}
	if result.ManifestPath != "" {
		printDetail("Manifest: %s (run %s)", result.ManifestPath, result.RunID)
	}
	printStats(result.Stats)

	printNewline()
	printNextStep("Preview in a browser", "figforge serve")
	return nil
}
