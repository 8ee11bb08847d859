package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"charapedia/app/internal/showcase"
)

type listFlags struct {
	text   string
	series []string
	arcs   []string
	colors []string
	sort   string
	json   bool
}

func newListCommand(root *rootOptions) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Filter and sort characters like the index page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := root.open(cmd)
			if err != nil {
				return err
			}

			result, err := sess.service.Characters(cmd.Context(), showcase.CharacterQuery{
				Text:   flags.text,
				Series: flags.series,
				Arcs:   flags.arcs,
				Colors: flags.colors,
				Sort:   flags.sort,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, result)
			}

			styles := newStyles(out)
			for _, card := range result.Items {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
					styles.code.Render(card.Code),
					card.Title,
					card.SeriesName,
					strings.Join(card.Families, ","),
				)
			}
			fmt.Fprintln(out, styles.muted.Render(fmt.Sprintf("%d / %d characters, sort=%s", len(result.Items), result.Total, result.Sort)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.text, "query", "q", "", "text search")
	cmd.Flags().StringSliceVar(&flags.series, "series", nil, "series keys")
	cmd.Flags().StringSliceVar(&flags.arcs, "arc", nil, "arc codes")
	cmd.Flags().StringSliceVar(&flags.colors, "color", nil, "colour families")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "code, original or title")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the listing as JSON")
	return cmd
}

type exhibitionFlags struct {
	text   string
	series []string
	colors []string
	from   string
	to     string
	sort   string
	json   bool
}

func newExhibitionCommand(root *rootOptions) *cobra.Command {
	flags := &exhibitionFlags{}

	cmd := &cobra.Command{
		Use:   "exhibition",
		Short: "Filter and sort works like the exhibition page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := root.open(cmd)
			if err != nil {
				return err
			}

			result, err := sess.service.Exhibition(cmd.Context(), showcase.ExhibitionQuery{
				Text:   flags.text,
				Series: flags.series,
				Colors: flags.colors,
				From:   flags.from,
				To:     flags.to,
				Sort:   flags.sort,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, result)
			}

			styles := newStyles(out)
			for _, work := range result.Items {
				date := work.PublishedAt
				if date == "" {
					date = "----------"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", styles.code.Render(date), work.DisplayTitle, styles.muted.Render(work.File))
			}
			fmt.Fprintln(out, styles.muted.Render(fmt.Sprintf("%d / %d works, sort=%s", len(result.Items), result.Total, result.Sort)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.text, "query", "q", "", "text search")
	cmd.Flags().StringSliceVar(&flags.series, "series", nil, "series keys")
	cmd.Flags().StringSliceVar(&flags.colors, "color", nil, "colour families")
	cmd.Flags().StringVar(&flags.from, "from", "", "earliest publication date, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.to, "to", "", "latest publication date, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "publishedAt-asc, publishedAt-desc, title or code")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the listing as JSON")
	return cmd
}

func newOptionsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the series, arc and colour filter choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := root.open(cmd)
			if err != nil {
				return err
			}

			options, err := sess.service.Options(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			styles := newStyles(out)
			groups := []struct {
				heading string
				items   []showcase.Option
			}{
				{heading: "series", items: options.Series},
				{heading: "arcs", items: options.Arcs},
				{heading: "colors", items: options.Colors},
			}
			for _, group := range groups {
				fmt.Fprintln(out, styles.heading.Render(group.heading))
				for _, option := range group.items {
					fmt.Fprintf(out, "  %s\t%s\n", styles.code.Render(option.Value), option.Label)
				}
			}
			return nil
		},
	}
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}

type styles struct {
	renderer *lipgloss.Renderer
	code     lipgloss.Style
	heading  lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	success  lipgloss.Style
}

// newStyles binds the palette to out so colour is dropped when out is not a terminal.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		renderer: r,
		code:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"}),
		heading:  r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		warning:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}),
		success:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}),
	}
}
