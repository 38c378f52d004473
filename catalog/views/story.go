package views

import (
	"strconv"
	"time"

	"github.com/mrmchughes/home-energy-analysis-tool/actions"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

type StoryProps struct {
	Story   stories.Story
	Actions []actions.Action
	Now     time.Time
}

type storyArg struct {
	Name  string
	Value string
}

// storyArgs lists the props of a story in the order of the args table, empty values are unset
func storyArgs(props ui.ButtonProps) []storyArg {
	onClick := ""
	if props.OnClick != nil {
		onClick = "action"
	}
	return []storyArg{
		{Name: "label", Value: props.Label},
		{Name: "variant", Value: string(props.Variant)},
		{Name: "size", Value: string(props.EffectiveSize())},
		{Name: "backgroundColor", Value: props.BackgroundColor},
		{Name: "primary", Value: strconv.FormatBool(props.Primary)},
		{Name: "onClick", Value: onClick},
	}
}

func storyTitle(story stories.Story) string {
	return story.Title + " / " + story.Name
}
