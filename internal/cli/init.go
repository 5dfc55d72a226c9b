package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	chartio "github.com/matzehuels/echart/pkg/io"
)

// initCommand creates the init command, which writes an example chart file.
func (c *CLI) initCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example chart file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "chart.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := chartio.ExportFile(chartio.Example(), path); err != nil {
				return err
			}
			printSuccess("Wrote example chart")
			printFile(path)
			printNextStep("Render it", "echart render "+path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
