package stories

import (
	"log/slog"

	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

// ButtonTitle is the catalog title of the built-in Button stories
const ButtonTitle = "Button"

// ButtonStories returns the built-in Button stories: one per variant, one per non-default size,
// a custom background and a primary button. Every story logs clicks to the logger.
func ButtonStories(logger *slog.Logger) []Story {
	variantStories := []struct {
		name        string
		variant     ui.ButtonVariant
		description string
	}{
		{"Default", ui.ButtonVariantDefault, "The standard button."},
		{"Destructive", ui.ButtonVariantDestructive, "For actions that delete or cannot be undone."},
		{"Outline", ui.ButtonVariantOutline, "A bordered button on a transparent background."},
		{"Secondary", ui.ButtonVariantSecondary, "A less prominent alternative to the default button."},
		{"Ghost", ui.ButtonVariantGhost, "No background until hovered."},
		{"Link", ui.ButtonVariantLink, "Looks like a hyperlink."},
	}

	sizeStories := []struct {
		name string
		size ui.ButtonSize
	}{
		{"Wide", ui.ButtonSizeWide},
		{"Small", ui.ButtonSizeSm},
		{"Large", ui.ButtonSizeLg},
		{"Pill", ui.ButtonSizePill},
		{"Icon", ui.ButtonSizeIcon},
	}

	var result []Story

	for _, vs := range variantStories {
		s := withClickLogger(logger, NewStory(ButtonTitle, vs.name, ui.ButtonProps{
			Label:   "Button",
			Variant: vs.variant,
		}))
		s.Description = vs.description
		result = append(result, s)
	}

	for _, ss := range sizeStories {
		label := "Button"
		if ss.size == ui.ButtonSizeIcon {
			label = "+"
		}
		s := withClickLogger(logger, NewStory(ButtonTitle, ss.name, ui.ButtonProps{
			Label:   label,
			Variant: ui.ButtonVariantDefault,
			Size:    ss.size,
		}))
		result = append(result, s)
	}

	custom := withClickLogger(logger, NewStory(ButtonTitle, "Custom Background", ui.ButtonProps{
		Label:           "Button",
		Variant:         ui.ButtonVariantDefault,
		BackgroundColor: "#1ea7fd",
	}))
	custom.Description = "The background color overrides the variant background."
	result = append(result, custom)

	primary := withClickLogger(logger, NewStory(ButtonTitle, "Primary", ui.ButtonProps{
		Label:   "Button",
		Variant: ui.ButtonVariantDefault,
		Primary: true,
	}))
	primary.Description = "Marks the principal call to action, renders like the default button."
	result = append(result, primary)

	return result
}

func withClickLogger(logger *slog.Logger, s Story) Story {
	s.Args.OnClick = LogClick(logger, s.ID)
	return s
}
