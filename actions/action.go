// Package actions binds button click handlers to addressable IDs and records every activation,
// so a catalog can trigger handlers from a browser and show what was clicked.
package actions

import (
	"time"

	"github.com/gofrs/uuid"
)

// Action is a recorded activation of a bound handler
type Action struct {
	ID        uuid.UUID
	BindingID uuid.UUID
	StoryID   string
	Label     string
	Time      time.Time
}

// bindingNamespace scopes binding IDs, which are derived from story ID and label
var bindingNamespace = uuid.Must(uuid.FromString("5b0e3a8c-6f0d-4f43-9d43-7c1c2a6f5e21"))

// BindingID returns the stable ID for the button with the label in a story
func BindingID(storyID, label string) uuid.UUID {
	return uuid.NewV5(bindingNamespace, storyID+"/"+label)
}
