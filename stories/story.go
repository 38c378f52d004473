// Package stories defines the catalog entries for the Button component.
package stories

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

// ErrNotFound is returned when a story ID is not part of a set
var ErrNotFound = errors.New("story not found")

// Story is a named set of Button props shown in the catalog
type Story struct {
	// ID is derived from title and name, e.g. "button--destructive"
	ID          string
	Title       string
	Name        string
	Description string
	Args        ui.ButtonProps
}

// NewStory creates a story and derives its ID from title and name
func NewStory(title, name string, args ui.ButtonProps) Story {
	return Story{
		ID:    StoryID(title, name),
		Title: title,
		Name:  name,
		Args:  args,
	}
}

// StoryID builds the ID for a story, e.g. ("Example/Button", "Custom Background") is "example-button--custom-background"
func StoryID(title, name string) string {
	return slug(title) + "--" + slug(name)
}

// slug keeps letters and digits of any script, lowercased, and turns every other run into one dash.
// Letters are not transliterated, "Über" stays "über" like in a Storybook ID.
func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// LogClick returns a click handler that logs the activation, like an action arg in a story
func LogClick(logger *slog.Logger, storyID string) func() {
	if logger == nil {
		logger = slog.Default()
	}
	return func() {
		logger.Info("Button clicked", slog.String("story", storyID))
	}
}

var variantConsts = map[ui.ButtonVariant]string{
	ui.ButtonVariantDefault:     "ui.ButtonVariantDefault",
	ui.ButtonVariantDestructive: "ui.ButtonVariantDestructive",
	ui.ButtonVariantOutline:     "ui.ButtonVariantOutline",
	ui.ButtonVariantSecondary:   "ui.ButtonVariantSecondary",
	ui.ButtonVariantGhost:       "ui.ButtonVariantGhost",
	ui.ButtonVariantLink:        "ui.ButtonVariantLink",
}

var sizeConsts = map[ui.ButtonSize]string{
	ui.ButtonSizeDefault: "ui.ButtonSizeDefault",
	ui.ButtonSizeWide:    "ui.ButtonSizeWide",
	ui.ButtonSizeSm:      "ui.ButtonSizeSm",
	ui.ButtonSizeLg:      "ui.ButtonSizeLg",
	ui.ButtonSizePill:    "ui.ButtonSizePill",
	ui.ButtonSizeIcon:    "ui.ButtonSizeIcon",
}

// Source returns the Go code rendering the story
func (s Story) Source() string {
	type field struct{ name, value string }

	fields := []field{{"Label", strconv.Quote(s.Args.Label)}}

	variant, ok := variantConsts[s.Args.Variant]
	if !ok {
		variant = fmt.Sprintf("ui.ButtonVariant(%q)", s.Args.Variant)
	}
	fields = append(fields, field{"Variant", variant})

	if s.Args.Size != "" {
		size, ok := sizeConsts[s.Args.Size]
		if !ok {
			size = fmt.Sprintf("ui.ButtonSize(%q)", s.Args.Size)
		}
		fields = append(fields, field{"Size", size})
	}
	if s.Args.BackgroundColor != "" {
		fields = append(fields, field{"BackgroundColor", strconv.Quote(s.Args.BackgroundColor)})
	}
	if s.Args.Primary {
		fields = append(fields, field{"Primary", "true"})
	}
	if s.Args.OnClick != nil {
		fields = append(fields, field{"OnClick", "onClick"})
	}

	width := 0
	for _, f := range fields {
		width = max(width, len(f.name))
	}

	var sb strings.Builder
	sb.WriteString("ui.Button(ui.ButtonProps{\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "\t%s:%s%s,\n", f.name, strings.Repeat(" ", width-len(f.name)+1), f.value)
	}
	sb.WriteString("})")

	return sb.String()
}
