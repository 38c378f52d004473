package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func logAction(storyID, label string) Action {
	return Action{BindingID: BindingID(storyID, label), StoryID: storyID, Label: label}
}

func labels(actions []Action) []string {
	result := make([]string, len(actions))
	for i, action := range actions {
		result[i] = action.Label
	}
	return result
}

func TestActionLog_NewestFirst(t *testing.T) {
	l := newActionLog(3)
	assert.Empty(t, l.recent("", 10))
	assert.NotNil(t, l.recent("", 10))

	l.add(logAction("button--default", "A"))
	l.add(logAction("button--default", "B"))

	assert.Equal(t, []string{"B", "A"}, labels(l.recent("", 10)))
	assert.Equal(t, []string{"B"}, labels(l.recent("", 1)))
	assert.Empty(t, l.recent("", 0))
}

func TestActionLog_DropsOldest(t *testing.T) {
	l := newActionLog(3)
	for _, label := range []string{"A", "B", "C", "D", "E"} {
		l.add(logAction("button--default", label))
	}

	assert.Equal(t, []string{"E", "D", "C"}, labels(l.recent("", 10)))
	assert.Equal(t, uint64(3), l.capacity())
}

func TestActionLog_ByStory(t *testing.T) {
	l := newActionLog(4)
	l.add(logAction("button--default", "A"))
	l.add(logAction("button--ghost", "B"))
	l.add(logAction("button--default", "C"))
	l.add(logAction("button--ghost", "D"))
	l.add(logAction("button--default", "E"))

	assert.Equal(t, []string{"E", "C"}, labels(l.recent("button--default", 10)))
	assert.Equal(t, []string{"E"}, labels(l.recent("button--default", 1)))
	assert.Equal(t, []string{"D", "B"}, labels(l.recent("button--ghost", 10)))
	assert.Empty(t, l.recent("button--link", 10))
}

func TestActionLog_ZeroCapacity(t *testing.T) {
	assert.Panics(t, func() {
		newActionLog(0)
	})
}
