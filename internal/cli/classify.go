package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"charapedia/app/internal/color"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <hex>...",
		Short: "Show the colour family each hex value files under",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			styles := newStyles(out)

			for _, raw := range args {
				family, ok := color.Classify(raw)
				if !ok {
					fmt.Fprintf(out, "%s\t%s\n", raw, styles.warning.Render("invalid"))
					continue
				}

				normalized, _ := color.Normalize(raw)
				swatch := styles.renderer.NewStyle().Background(lipgloss.Color(normalized)).Render("    ")
				fmt.Fprintf(out, "%s %s\t%s\t%s\n", swatch, normalized, family, family.Label())
			}
			return nil
		},
	}
}
