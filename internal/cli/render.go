package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/echart/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output    string
	formats   string
	kind      string
	area      bool
	stacked   bool
	shared    bool
	scale     float64
	embedFont bool
	noCache   bool
	refresh   bool
}

func (o renderOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Kind:        o.kind,
		Area:        o.area,
		Stacked:     o.stacked,
		SharedScale: o.shared,
		Formats:     parseFormats(o.formats),
		Scale:       o.scale,
		EmbedFont:   o.embedFont,
		Refresh:     o.refresh,
	}
}

// addLayoutFlags registers the flags that override the chart file's layout
// settings.
func addLayoutFlags(cmd *cobra.Command, o *renderOpts) {
	cmd.Flags().StringVarP(&o.kind, "kind", "k", "", "chart kind: line, column (default: from file)")
	cmd.Flags().BoolVar(&o.area, "area", false, "fill the area below each line")
	cmd.Flags().BoolVar(&o.stacked, "stacked", false, "stack series cumulatively")
	cmd.Flags().BoolVar(&o.shared, "shared-scale", false, "normalise all line series to one value range")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart file to SVG, PNG, PDF or JSON",
		Long: `Render a chart file.

Without --output, files are written next to the input with the format as
extension. With several formats, --output is used as the base path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	addLayoutFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the font in SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout and artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.pipelineOptions()
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	result, err := runner.ExecuteFile(ctx, input, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(input, opts.output, popts.Formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	for _, f := range formats {
		if dir := filepath.Dir(paths[f]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(paths[f], result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(formats)))
	printSuccess("Rendered %s", StyleHighlight.Render(input))
	printStats(result.Stats.SeriesCount, result.Stats.LayerCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	for _, f := range formats {
		printFile(paths[f])
	}
	return nil
}

// outputPaths maps each format to its output file.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = filepath.Clean(output)
		return paths
	}

	base := input
	if output != "" {
		base = output
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, f := range formats {
		p := filepath.Clean(base + "." + f)
		if p == filepath.Clean(input) {
			p = filepath.Clean(base + ".layout." + f)
		}
		paths[f] = p
	}
	return paths
}
