package heatstack_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	heatstack "github.com/mrmchughes/home-energy-analysis-tool"
	"github.com/mrmchughes/home-energy-analysis-tool/actions"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

func TestE2E_ClickThroughCatalog(t *testing.T) {
	var clicks atomic.Int32
	instance := heatstack.NewWithOptions(heatstack.Options{
		ActionCapacity: 10,
		Stories: []stories.Story{
			stories.NewStory("Button", "Save", ui.ButtonProps{
				Label:   "Save",
				Variant: ui.ButtonVariantSecondary,
				OnClick: func() { clicks.Add(1) },
			}),
		},
	})
	defer instance.Close()

	mux := http.NewServeMux()
	mux.Handle("/_stories/", http.StripPrefix("/_stories", instance.Handler("/_stories")))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := server.Client()

	resp, err := client.Get(server.URL + "/_stories/story/button--save")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	actionURL := "/_stories/action/" + actions.BindingID("button--save", "Save").String()
	assert.Contains(t, string(body), `hx-post="`+actionURL+`"`)

	resp, err = client.Post(server.URL+actionURL, "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int32(1), clicks.Load())

	recorded := instance.Recorder().RecentActions("", 10)
	require.Len(t, recorded, 1)
	assert.Equal(t, "Save", recorded[0].Label)
}

func TestNew_BuiltInStories(t *testing.T) {
	instance := heatstack.New()
	defer instance.Close()

	assert.Equal(t, len(stories.ButtonStories(nil)), instance.Stories().Len())

	_, err := instance.Stories().Get("button--destructive")
	assert.NoError(t, err)
}
