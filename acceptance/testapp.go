//go:build acceptance
// +build acceptance

package acceptance

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	heatstack "github.com/mrmchughes/home-energy-analysis-tool"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

// TestApp serves a catalog with the built-in stories and one story counting its clicks.
type TestApp struct {
	Server     *httptest.Server
	CatalogURL string
	Catalog    *heatstack.Instance
	Clicks     *atomic.Int32
}

const CountingStoryID = "acceptance--counter"

func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	clicks := &atomic.Int32{}
	storyList := append(stories.ButtonStories(nil), stories.NewStory("Acceptance", "Counter", ui.ButtonProps{
		Label:   "Count",
		Variant: ui.ButtonVariantOutline,
		OnClick: func() { clicks.Add(1) },
	}))

	instance := heatstack.NewWithOptions(heatstack.Options{Stories: storyList})

	mux := http.NewServeMux()
	mux.Handle("/_stories/", http.StripPrefix("/_stories", instance.Handler("/_stories")))
	server := httptest.NewServer(mux)

	return &TestApp{
		Server:     server,
		CatalogURL: server.URL + "/_stories/",
		Catalog:    instance,
		Clicks:     clicks,
	}
}

func (app *TestApp) StoryURL(id string) string {
	return app.CatalogURL + "story/" + id
}

func (app *TestApp) Close() {
	app.Server.Close()
	app.Catalog.Close()
}
