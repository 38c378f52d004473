package views

import (
	"slices"
	"strings"

	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

type BadgeVariant string

const (
	BadgeVariantSecondary BadgeVariant = "secondary"
	BadgeVariantSuccess   BadgeVariant = "success"
	BadgeVariantWarning   BadgeVariant = "warning"
	BadgeVariantOutline   BadgeVariant = "outline"
)

type BadgeProps struct {
	Variant BadgeVariant
	Class   string
}

func badgeClasses(props BadgeProps) string {
	classes := []string{"catalog-badge"}

	switch props.Variant {
	case BadgeVariantSecondary, BadgeVariantSuccess, BadgeVariantWarning, BadgeVariantOutline:
		classes = append(classes, "catalog-badge--"+string(props.Variant))
	default:
		classes = append(classes, "catalog-badge--default")
	}

	if props.Class != "" {
		classes = append(classes, props.Class)
	}

	return strings.Join(classes, " ")
}

// variantBadge flags variants the stylesheet has no rules for
func variantBadge(variant ui.ButtonVariant) BadgeProps {
	if !slices.Contains(ui.Variants(), variant) {
		return BadgeProps{Variant: BadgeVariantWarning, Class: "story-badge-variant"}
	}
	return BadgeProps{Variant: BadgeVariantSecondary, Class: "story-badge-variant"}
}
