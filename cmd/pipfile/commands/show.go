package commands

import (
	"github.com/spf13/cobra"

	"go.velin.dev/pipfile/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the packages the manifest declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev, _ := cmd.Flags().GetBool("dev")
			all, _ := cmd.Flags().GetBool("all")
			format, _ := cmd.Flags().GetString("format")
			return c.app.Show(cmd.Context(), manifestPath(cmd), cmd.OutOrStdout(), app.ShowOptions{
				Dev:    dev,
				All:    all,
				Format: format,
			})
		},
	}
	cmd.Flags().BoolP("dev", "d", false, "Include dev-packages")
	cmd.Flags().BoolP("all", "a", false, "Include entries gated to other platforms")
	cmd.Flags().StringP("format", "o", app.FormatText, "Output format: text, json or yaml")
	return cmd
}
