//go:build property
// +build property

package ui_test

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

func genVariant() gopter.Gen {
	values := make([]interface{}, 0, len(ui.Variants()))
	for _, v := range ui.Variants() {
		values = append(values, v)
	}
	return gen.OneConstOf(values...)
}

func genSize() gopter.Gen {
	values := []interface{}{ui.ButtonSize("")}
	for _, s := range ui.Sizes() {
		values = append(values, s)
	}
	return gen.OneConstOf(values...)
}

func genColor() gopter.Gen {
	channel := gen.IntRange(0, 255)
	percent := gen.IntRange(0, 100)

	return gen.OneGenOf(
		gopter.CombineGens(channel, channel, channel).Map(func(v []interface{}) string {
			return fmt.Sprintf("rgb(%d, %d, %d)", v[0], v[1], v[2])
		}),
		gopter.CombineGens(channel, channel, channel).Map(func(v []interface{}) string {
			return fmt.Sprintf("#%02x%02x%02x", v[0], v[1], v[2])
		}),
		gopter.CombineGens(gen.IntRange(0, 360), percent, percent).Map(func(v []interface{}) string {
			return fmt.Sprintf("hsl(%d, %d%%, %d%%)", v[0], v[1], v[2])
		}),
		gen.Identifier().Map(func(name string) string {
			return "var(--" + name + ")"
		}),
		gen.OneConstOf("red", "transparent", "rebeccapurple"),
	)
}

func TestButtonProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("class is base plus variant class", prop.ForAll(
		func(variant ui.ButtonVariant, size ui.ButtonSize, label string) bool {
			props := ui.ButtonProps{Label: label, Variant: variant, Size: size}
			return ui.ButtonClass(props) == "storybook-button storybook-button--"+string(variant)
		},
		genVariant(),
		genSize(),
		gen.AlphaString(),
	))

	properties.Property("label is rendered verbatim", prop.ForAll(
		func(variant ui.ButtonVariant, label string) bool {
			var buf bytes.Buffer
			if err := ui.Button(ui.ButtonProps{Label: label, Variant: variant}).Render(context.Background(), &buf); err != nil {
				return false
			}
			return strings.HasSuffix(buf.String(), ">"+html.EscapeString(label)+"</button>")
		},
		genVariant(),
		gen.AnyString(),
	))

	properties.Property("no style without background color", prop.ForAll(
		func(variant ui.ButtonVariant, size ui.ButtonSize) bool {
			var buf bytes.Buffer
			if err := ui.Button(ui.ButtonProps{Label: "Button", Variant: variant, Size: size}).Render(context.Background(), &buf); err != nil {
				return false
			}
			return !strings.Contains(buf.String(), "style=")
		},
		genVariant(),
		genSize(),
	))

	properties.Property("click invokes handler exactly once per activation", prop.ForAll(
		func(activations int) bool {
			var calls int
			props := ui.ButtonProps{Label: "Button", Variant: ui.ButtonVariantDefault, OnClick: func() { calls++ }}
			for i := 0; i < activations; i++ {
				ui.Click(props)
			}
			return calls == activations
		},
		gen.IntRange(0, 50),
	))

	properties.Property("empty size renders as default", prop.ForAll(
		func(variant ui.ButtonVariant) bool {
			return ui.ButtonProps{Label: "Button", Variant: variant}.EffectiveSize() == ui.ButtonSizeDefault
		},
		genVariant(),
	))

	properties.Property("accepted background colors are rendered unchanged", prop.ForAll(
		func(color string) bool {
			props := ui.ButtonProps{Label: "Button", Variant: ui.ButtonVariantDefault, BackgroundColor: color}
			if props.Validate() != nil {
				return false
			}
			var buf bytes.Buffer
			if err := ui.Button(props).Render(context.Background(), &buf); err != nil {
				return false
			}
			return strings.Contains(buf.String(), `style="background-color:`+color+`;"`)
		},
		genColor(),
	))

	properties.TestingRun(t)
}
