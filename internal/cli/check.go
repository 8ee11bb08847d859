package cli

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"charapedia/app/internal/catalog"
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load every table and report data problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := root.open(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			styles := newStyles(out)
			snapshot := sess.snapshot

			fmt.Fprintf(out, "characters %d, series %d, arcs %d, works %d, updates %d\n",
				len(snapshot.Index.Characters()),
				len(snapshot.Index.Series()),
				snapshot.Index.Arcs().Len(),
				len(snapshot.Works),
				len(snapshot.Updates),
			)
			if snapshot.ExhibitionErr != nil {
				fmt.Fprintln(out, styles.warning.Render("exhibition: "+snapshot.ExhibitionErr.Error()))
			}

			findings := catalog.Audit(snapshot)
			for _, finding := range findings {
				// Styles expand tabs, so only the kind is rendered.
				line := styles.warning.Render(string(finding.Kind)) + "\t" + finding.Subject
				if finding.Detail != "" {
					line += "\t" + finding.Detail
				}
				fmt.Fprintln(out, line)
			}

			if len(findings) == 0 && snapshot.ExhibitionErr == nil {
				fmt.Fprintln(out, styles.success.Render("no problems found"))
				return nil
			}
			if strict {
				return eris.Errorf("%d problems found", len(findings)+boolCount(snapshot.ExhibitionErr != nil))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any problem is found")
	return cmd
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
