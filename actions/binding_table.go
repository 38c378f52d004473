package actions

import (
	"sync"

	"github.com/gofrs/uuid"
)

// Binding connects a story button to its click handler
type Binding struct {
	ID      uuid.UUID
	StoryID string
	Label   string
	Handler func()
}

// bindingTable is a bounded table of bindings with lookup by ID.
// Inserting into a full table evicts the least recently inserted binding.
// Re-inserting an existing ID replaces the binding in place and keeps its slot.
type bindingTable struct {
	slots []uuid.UUID
	byID  map[uuid.UUID]Binding
	next  uint64
	mu    sync.RWMutex
}

func newBindingTable(capacity uint64) *bindingTable {
	if capacity == 0 {
		panic("capacity must be greater than 0")
	}

	return &bindingTable{
		slots: make([]uuid.UUID, capacity),
		byID:  make(map[uuid.UUID]Binding, capacity),
	}
}

func (bt *bindingTable) put(binding Binding) {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	if _, exists := bt.byID[binding.ID]; exists {
		bt.byID[binding.ID] = binding
		return
	}

	idx := bt.next % uint64(len(bt.slots))
	if evicted := bt.slots[idx]; evicted != uuid.Nil {
		delete(bt.byID, evicted)
	}
	bt.slots[idx] = binding.ID
	bt.byID[binding.ID] = binding
	bt.next++
}

func (bt *bindingTable) get(id uuid.UUID) (Binding, bool) {
	bt.mu.RLock()
	defer bt.mu.RUnlock()

	binding, found := bt.byID[id]
	return binding, found
}

func (bt *bindingTable) size() int {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	return len(bt.byID)
}
