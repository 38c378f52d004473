package stories_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrmchughes/home-energy-analysis-tool/stories"
)

func TestWatch_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.yml")
	require.NoError(t, os.WriteFile(path, []byte(validStoryFile), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []stories.Story, 10)
	done := make(chan error, 1)
	go func() {
		done <- stories.Watch(ctx, path, nil, func(s []stories.Story) {
			changes <- s
		})
	}()

	// Give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	updated := "title: Button\nstories:\n  - name: Only\n    args: {label: Only, variant: link}\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case s := <-changes:
		require.Len(t, s, 1)
		assert.Equal(t, "button--only", s[0].ID)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_SkipsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.yml")
	require.NoError(t, os.WriteFile(path, []byte(validStoryFile), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []stories.Story, 10)
	go func() {
		_ = stories.Watch(ctx, path, nil, func(s []stories.Story) {
			changes <- s
		})
	}()

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("title: Button\nstories: []\n"), 0o644))

	select {
	case <-changes:
		t.Fatal("invalid file must not be passed on")
	case <-time.After(500 * time.Millisecond):
	}
}
