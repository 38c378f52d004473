package actions

import "sync"

// actionLog keeps the most recent actions of all stories, dropping the oldest one when full
type actionLog struct {
	mu      sync.RWMutex
	actions []Action
	// next is the slot the next action is written to
	next  int
	count int
}

func newActionLog(capacity uint64) *actionLog {
	if capacity == 0 {
		panic("action log capacity must be greater than 0")
	}
	return &actionLog{actions: make([]Action, capacity)}
}

func (l *actionLog) add(action Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.actions[l.next] = action
	l.next = (l.next + 1) % len(l.actions)
	l.count = min(l.count+1, len(l.actions))
}

// recent returns up to limit actions, newest first. Only actions of storyID are returned unless it is empty.
func (l *actionLog) recent(storyID string, limit uint64) []Action {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Action, 0, min(limit, uint64(l.count)))
	for i := 1; i <= l.count && uint64(len(result)) < limit; i++ {
		action := l.actions[(l.next-i+len(l.actions))%len(l.actions)]
		if storyID != "" && action.StoryID != storyID {
			continue
		}
		result = append(result, action)
	}
	return result
}

func (l *actionLog) capacity() uint64 {
	return uint64(len(l.actions))
}
