package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrmchughes/home-energy-analysis-tool/stories"
	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <story-id>",
		Short: "Print the HTML of a story's button",
		Example: `  heat-stories render button--destructive
  heat-stories render button--icon --source`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			storyList, err := loadStories(cfg.Catalog, quietLogger())
			if err != nil {
				return err
			}

			story, err := stories.NewSet(storyList...).Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if showSource, _ := cmd.Flags().GetBool("source"); showSource {
				_, err := fmt.Fprintln(out, story.Source())
				return err
			}

			if err := ui.Button(story.Args).Render(cmd.Context(), out); err != nil {
				return fmt.Errorf("rendering %s: %w", story.ID, err)
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}

	cmd.Flags().Bool("source", false, "print the Go source of the story instead of HTML")

	return cmd
}
