package catalog_test

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrmchughes/home-energy-analysis-tool/actions"
	"github.com/mrmchughes/home-energy-analysis-tool/catalog"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

type fixture struct {
	recorder *actions.Recorder
	set      *stories.Set
	server   *httptest.Server
	clicks   *atomic.Int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clicks := &atomic.Int32{}
	clickable := stories.NewStory("Button", "Clickable", ui.ButtonProps{
		Label:   "Click me",
		Variant: ui.ButtonVariantDestructive,
		OnClick: func() { clicks.Add(1) },
	})
	plain := stories.NewStory("Button", "Plain", ui.ButtonProps{
		Label:           "Plain",
		Variant:         ui.ButtonVariantGhost,
		Size:            ui.ButtonSizeLg,
		BackgroundColor: "#00ff00",
	})

	recorder := actions.NewRecorder()
	set := stories.NewSet(clickable, plain)
	handler := catalog.NewHandler(recorder, set, catalog.WithPathPrefix("/stories"))

	mux := http.NewServeMux()
	mux.Handle("/stories/", http.StripPrefix("/stories", handler))
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		recorder.Close()
	})

	return &fixture{recorder: recorder, set: set, server: server, clicks: clicks}
}

func (f *fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()

	resp, err := f.server.Client().Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func (f *fixture) post(t *testing.T, path string) int {
	t.Helper()

	resp, err := f.server.Client().Post(f.server.URL+path, "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode
}

func TestHandler_Root(t *testing.T) {
	f := newFixture(t)

	status, body := f.get(t, "/stories/")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, `href="/stories/story/button--clickable"`)
	assert.Contains(t, body, `href="/stories/story/button--plain"`)
	assert.Contains(t, body, `href="/stories/static/button.css"`)
	// First story is selected
	assert.Contains(t, body, `class="storybook-button storybook-button--destructive"`)
	assert.Contains(t, body, "catalog-story-link--selected")
}

func TestHandler_Root_Empty(t *testing.T) {
	recorder := actions.NewRecorder()
	defer recorder.Close()

	handler := catalog.NewHandler(recorder, stories.NewSet())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No stories registered.")
}

func TestHandler_Story(t *testing.T) {
	f := newFixture(t)

	status, body := f.get(t, "/stories/story/button--plain")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, `class="storybook-button storybook-button--ghost"`)
	assert.Contains(t, body, `style="background-color:#00ff00;"`)
	assert.Contains(t, body, `data-size="lg"`)
	assert.Contains(t, body, ">Plain</button>")
	assert.NotContains(t, body, "hx-post=")
	// Highlighted source
	assert.Contains(t, body, `class="chroma"`)
	assert.Contains(t, body, `sse-connect="/stories/actions-sse?story=button--plain"`)
}

func TestHandler_Story_BindsOnClick(t *testing.T) {
	f := newFixture(t)

	status, body := f.get(t, "/stories/story/button--clickable")
	require.Equal(t, http.StatusOK, status)

	id := actions.BindingID("button--clickable", "Click me")
	assert.Contains(t, body, `hx-post="/stories/action/`+id.String()+`"`)

	_, found := f.recorder.Lookup(id)
	assert.True(t, found)
	assert.Equal(t, int32(0), f.clicks.Load(), "rendering must not click")
}

func TestHandler_Story_NotFound(t *testing.T) {
	f := newFixture(t)

	status, _ := f.get(t, "/stories/story/button--missing")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.get(t, "/stories/iframe/button--missing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandler_Iframe(t *testing.T) {
	f := newFixture(t)

	status, body := f.get(t, "/stories/iframe/button--clickable")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, `id="canvas"`)
	assert.Contains(t, body, "hx-post=")
	assert.NotContains(t, body, "catalog-sidebar")
}

func TestHandler_PostAction(t *testing.T) {
	f := newFixture(t)

	_, _ = f.get(t, "/stories/story/button--clickable")
	id := actions.BindingID("button--clickable", "Click me")

	status := f.post(t, "/stories/action/"+id.String())
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, int32(1), f.clicks.Load())

	status = f.post(t, "/stories/action/"+id.String())
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, int32(2), f.clicks.Load())

	recorded := f.recorder.RecentActions("", 10)
	require.Len(t, recorded, 2)
	assert.Equal(t, "button--clickable", recorded[0].StoryID)
	assert.Equal(t, "Click me", recorded[0].Label)
}

func TestHandler_PostAction_Errors(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.post(t, "/stories/action/not-a-uuid"))
	assert.Equal(t, http.StatusNotFound, f.post(t, "/stories/action/"+uuid.Must(uuid.NewV4()).String()))
	assert.Equal(t, int32(0), f.clicks.Load())
}

func TestHandler_ActionList(t *testing.T) {
	f := newFixture(t)

	id := f.recorder.Bind("button--clickable", "Click me", func() {})
	other := f.recorder.Bind("button--plain", "Plain", func() {})
	_, err := f.recorder.Invoke(context.Background(), id)
	require.NoError(t, err)
	_, err = f.recorder.Invoke(context.Background(), other)
	require.NoError(t, err)

	status, body := f.get(t, "/stories/actions?story=button--clickable")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `data-story-id="button--clickable"`)
	assert.NotContains(t, body, `data-story-id="button--plain"`)

	_, body = f.get(t, "/stories/actions")
	assert.Equal(t, 2, strings.Count(body, `<li class="action"`))
	// Newest first
	assert.Less(t, strings.Index(body, "button--plain"), strings.Index(body, "button--clickable"))
}

func TestHandler_ActionList_UsesClock(t *testing.T) {
	clicked := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	recorder := actions.NewRecorderWithOptions(10, actions.RecorderOptions{
		Now: func() time.Time { return clicked },
	})
	t.Cleanup(recorder.Close)

	handler := catalog.NewHandler(recorder, stories.NewSet(), catalog.WithClock(func() time.Time {
		return clicked.Add(5 * time.Second)
	}))

	id := recorder.Bind("button--clickable", "Click me", func() {})
	_, err := recorder.Invoke(context.Background(), id)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<time datetime="2025-03-01T12:00:00Z">5 seconds ago</time>`)
}

func TestHandler_Story_Badges(t *testing.T) {
	recorder := actions.NewRecorder()
	t.Cleanup(recorder.Close)

	set := stories.NewSet(
		stories.NewStory("Button", "Known", ui.ButtonProps{Label: "Known", Variant: ui.ButtonVariantOutline, Size: ui.ButtonSizeSm, Primary: true}),
		stories.NewStory("Button", "Unknown", ui.ButtonProps{Label: "Unknown", Variant: "primary"}),
	)
	handler := catalog.NewHandler(recorder, set)

	get := func(path string) string {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	body := get("/story/button--known")
	assert.Contains(t, body, `<span class="catalog-badge catalog-badge--secondary story-badge-variant">outline</span>`)
	assert.Contains(t, body, `<span class="catalog-badge catalog-badge--outline story-badge-size">sm</span>`)
	assert.Contains(t, body, `<span class="catalog-badge catalog-badge--success">primary</span>`)

	body = get("/story/button--unknown")
	assert.Contains(t, body, `<span class="catalog-badge catalog-badge--warning story-badge-variant">primary</span>`)
	assert.Contains(t, body, `<span class="catalog-badge catalog-badge--outline story-badge-size">default</span>`)
	assert.Contains(t, body, `class="storybook-button storybook-button--primary"`)
}

func TestHandler_Static(t *testing.T) {
	f := newFixture(t)

	status, body := f.get(t, "/stories/static/button.css")
	require.Equal(t, http.StatusOK, status)
	for _, v := range ui.Variants() {
		assert.Contains(t, body, ".storybook-button--"+string(v))
	}
}

func TestHandler_ActionsSSE(t *testing.T) {
	f := newFixture(t)

	id := f.recorder.Bind("button--clickable", "Click me", func() {})
	other := f.recorder.Bind("button--plain", "Plain", func() {})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.server.URL+"/stories/actions-sse?story=button--clickable", nil)
	require.NoError(t, err)

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() []string {
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			if line == "" {
				return lines
			}
			lines = append(lines, line)
		}
	}

	assert.Equal(t, []string{"event: keepalive", "data: connected"}, readEvent())

	// Filtered out by story
	_, err = f.recorder.Invoke(context.Background(), other)
	require.NoError(t, err)
	_, err = f.recorder.Invoke(context.Background(), id)
	require.NoError(t, err)

	event := readEvent()
	require.Len(t, event, 2)
	assert.Equal(t, "event: new-action", event[0])
	assert.True(t, strings.HasPrefix(event[1], `data: <li class="action"`))
	assert.Contains(t, event[1], `data-story-id="button--clickable"`)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	status := f.post(t, "/stories/story/button--plain")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}
