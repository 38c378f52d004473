package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all stories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			storyList, err := loadStories(cfg.Catalog, quietLogger())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tVARIANT\tSIZE\tLABEL")
			for _, s := range storyList {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Args.Variant, s.Args.EffectiveSize(), s.Args.Label)
			}
			return tw.Flush()
		},
	}
}
