package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindingTable_PutGet(t *testing.T) {
	bt := newBindingTable(2)

	b1 := Binding{ID: BindingID("story-1", "Save"), StoryID: "story-1", Label: "Save"}
	bt.put(b1)

	found, ok := bt.get(b1.ID)
	assert.True(t, ok)
	assert.Equal(t, "Save", found.Label)

	_, ok = bt.get(BindingID("story-1", "Cancel"))
	assert.False(t, ok)
}

func TestBindingTable_EvictsOldest(t *testing.T) {
	bt := newBindingTable(2)

	b1 := Binding{ID: BindingID("s", "1")}
	b2 := Binding{ID: BindingID("s", "2")}
	b3 := Binding{ID: BindingID("s", "3")}
	bt.put(b1)
	bt.put(b2)
	bt.put(b3)

	assert.Equal(t, 2, bt.size())
	_, ok := bt.get(b1.ID)
	assert.False(t, ok, "oldest binding should be evicted")
	_, ok = bt.get(b2.ID)
	assert.True(t, ok)
	_, ok = bt.get(b3.ID)
	assert.True(t, ok)
}

func TestBindingTable_ReplaceKeepsSlot(t *testing.T) {
	bt := newBindingTable(2)

	var calledFirst, calledSecond bool
	id := BindingID("s", "1")
	bt.put(Binding{ID: id, Handler: func() { calledFirst = true }})
	bt.put(Binding{ID: id, Handler: func() { calledSecond = true }})

	assert.Equal(t, 1, bt.size())

	found, ok := bt.get(id)
	assert.True(t, ok)
	found.Handler()
	assert.False(t, calledFirst)
	assert.True(t, calledSecond)

	// Replacing must not consume a slot, so one more binding fits without eviction
	other := BindingID("s", "2")
	bt.put(Binding{ID: other})
	_, ok = bt.get(id)
	assert.True(t, ok)
	_, ok = bt.get(other)
	assert.True(t, ok)
}
