package ui

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
)

type ButtonVariant string
type ButtonSize string

const (
	ButtonVariantDefault     ButtonVariant = "default"
	ButtonVariantDestructive ButtonVariant = "destructive"
	ButtonVariantOutline     ButtonVariant = "outline"
	ButtonVariantSecondary   ButtonVariant = "secondary"
	ButtonVariantGhost       ButtonVariant = "ghost"
	ButtonVariantLink        ButtonVariant = "link"

	ButtonSizeDefault ButtonSize = "default"
	ButtonSizeWide    ButtonSize = "wide"
	ButtonSizeSm      ButtonSize = "sm"
	ButtonSizeLg      ButtonSize = "lg"
	ButtonSizePill    ButtonSize = "pill"
	ButtonSizeIcon    ButtonSize = "icon"
)

// BaseClass is the class every button carries, the variant class is derived from it.
const BaseClass = "storybook-button"

// ButtonProps configures a Button.
type ButtonProps struct {
	// Label is the button content.
	Label string `validate:"required"`
	// Variant selects the visual style.
	Variant ButtonVariant `validate:"required,oneof=default destructive outline secondary ghost link"`
	// Size selects the sizing category, empty means ButtonSizeDefault.
	Size ButtonSize `validate:"omitempty,oneof=default wide sm lg pill icon"`
	// BackgroundColor overrides the background when set.
	BackgroundColor string `validate:"omitempty,css_color"`
	// Primary marks the principal call to action of a page. It is not used for rendering.
	Primary bool
	// OnClick is called once per activation of the button.
	OnClick func()
}

// Variants returns all button variants in declaration order.
func Variants() []ButtonVariant {
	return []ButtonVariant{
		ButtonVariantDefault,
		ButtonVariantDestructive,
		ButtonVariantOutline,
		ButtonVariantSecondary,
		ButtonVariantGhost,
		ButtonVariantLink,
	}
}

// Sizes returns all button sizes in declaration order.
func Sizes() []ButtonSize {
	return []ButtonSize{
		ButtonSizeDefault,
		ButtonSizeWide,
		ButtonSizeSm,
		ButtonSizeLg,
		ButtonSizePill,
		ButtonSizeIcon,
	}
}

// EffectiveSize returns the size used for rendering.
func (p ButtonProps) EffectiveSize() ButtonSize {
	if p.Size == "" {
		return ButtonSizeDefault
	}
	return p.Size
}

// Validate checks the props against the allowed values.
// Rendering does not call Validate, it is meant for props coming from outside the code (e.g. story files).
func (p ButtonProps) Validate() error {
	err := validatorInstance().Struct(p)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validating button props: %w", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not a valid %s: %q", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid button props: %s", strings.Join(msgs, "; "))
}

// ButtonClass returns the class attribute for a button.
// The size does not take part in the class name.
func ButtonClass(props ButtonProps) string {
	return strings.Join([]string{BaseClass, BaseClass + "--" + string(props.Variant)}, " ")
}

// ButtonStyle returns the inline style for a button, or an empty value if no background override is set.
// Colors accepted by Validate are used as given, anything else goes through templ's CSS sanitizer.
func ButtonStyle(props ButtonProps) templ.SafeCSS {
	color := strings.TrimSpace(props.BackgroundColor)
	if color == "" {
		return ""
	}
	if IsCSSColor(color) {
		return templ.SafeCSS("background-color:" + color + ";")
	}
	return templ.SanitizeCSS("background-color", color)
}

// IsCSSColor reports whether value is a hex, rgb(a) or hsl(a) color, a named color or a CSS variable.
func IsCSSColor(value string) bool {
	return validatorInstance().Var(value, "css_color") == nil
}

// Click activates the button by calling OnClick, if set.
func Click(props ButtonProps) {
	if props.OnClick != nil {
		props.OnClick()
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	namedColorPattern = regexp.MustCompile(`^[a-zA-Z]+$`)
	cssVarPattern     = regexp.MustCompile(`^var\(--[a-zA-Z0-9_-]+\)$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Accepts what validator's iscolor accepts (hex, rgb(a), hsl(a)) plus named colors and CSS variables
		_ = v.RegisterValidation("css_color", func(fl validator.FieldLevel) bool {
			value := strings.TrimSpace(fl.Field().String())
			if namedColorPattern.MatchString(value) || cssVarPattern.MatchString(value) {
				return true
			}
			return v.Var(value, "iscolor") == nil
		})

		validateInst = v
	})

	return validateInst
}
