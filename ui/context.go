package ui

import "context"

// ActionBinder makes OnClick callbacks reachable from a browser.
// Bind registers the handler for a button label and returns the URL a click should be POSTed to.
type ActionBinder interface {
	Bind(label string, handler func()) string
}

type ctxKey int

const actionBinderKey ctxKey = iota

// WithActionBinder returns a context that renders buttons with an OnClick as activatable through the binder.
func WithActionBinder(ctx context.Context, binder ActionBinder) context.Context {
	return context.WithValue(ctx, actionBinderKey, binder)
}

func actionBinderFromContext(ctx context.Context) (ActionBinder, bool) {
	binder, ok := ctx.Value(actionBinderKey).(ActionBinder)
	return binder, ok && binder != nil
}

// bindAction returns the URL activating props.OnClick, or "" if the button has no OnClick or ctx no binder.
func bindAction(ctx context.Context, props ButtonProps) string {
	if props.OnClick == nil {
		return ""
	}
	binder, ok := actionBinderFromContext(ctx)
	if !ok {
		return ""
	}
	return binder.Bind(props.Label, props.OnClick)
}
