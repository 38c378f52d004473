package actions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ActionStream receives the actions a Recorder publishes, for use in tests
type ActionStream struct {
	t       testing.TB
	mu      sync.Mutex
	actions []Action
}

// Listen subscribes to the actions of recorder until the test ends
func Listen(t testing.TB, recorder *Recorder) *ActionStream {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := &ActionStream{t: t}
	ch := recorder.Subscribe(ctx)
	go func() {
		for action := range ch {
			s.mu.Lock()
			s.actions = append(s.actions, action)
			s.mu.Unlock()
		}
	}()

	return s
}

// WaitFor blocks until n actions of the story arrived and returns them in arrival order.
// An empty storyID matches actions of every story.
func (s *ActionStream) WaitFor(storyID string, n int) []Action {
	s.t.Helper()

	require.Eventually(s.t, func() bool {
		return len(s.of(storyID)) >= n
	}, time.Second, time.Millisecond, "waiting for %d actions of story %q", n, storyID)

	return s.of(storyID)
}

func (s *ActionStream) of(storyID string) []Action {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Action
	for _, action := range s.actions {
		if storyID == "" || action.StoryID == storyID {
			result = append(result, action)
		}
	}
	return result
}
