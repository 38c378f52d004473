package views

import (
	"time"

	"github.com/mrmchughes/home-energy-analysis-tool/actions"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
)

type CatalogProps struct {
	Groups []stories.Group
	// Selected is nil when the catalog has no stories
	Selected *stories.Story
	Actions  []actions.Action
	Now      time.Time
}

func catalogTitle(selected *stories.Story) string {
	if selected == nil {
		return "Stories"
	}
	return selected.Title + " / " + selected.Name + " - Stories"
}

func isSelected(story stories.Story, selected *stories.Story) bool {
	return selected != nil && selected.ID == story.ID
}
