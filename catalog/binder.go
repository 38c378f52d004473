package catalog

import (
	"github.com/mrmchughes/home-energy-analysis-tool/actions"
)

// storyBinder binds the buttons of one story to the recorder
type storyBinder struct {
	recorder   *actions.Recorder
	storyID    string
	pathPrefix string
}

func (b storyBinder) Bind(label string, handler func()) string {
	id := b.recorder.Bind(b.storyID, label, handler)
	return b.pathPrefix + "/action/" + id.String()
}
