package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gofrs/uuid"

	"github.com/mrmchughes/home-energy-analysis-tool/actions"
	"github.com/mrmchughes/home-energy-analysis-tool/catalog/static"
	"github.com/mrmchughes/home-energy-analysis-tool/catalog/views"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
	"github.com/mrmchughes/home-energy-analysis-tool/ui"
)

// Handler serves the story catalog
type Handler struct {
	recorder *actions.Recorder
	stories  *stories.Set

	pathPrefix    string
	truncateAfter uint64
	logger        *slog.Logger
	now           func() time.Time

	mux http.Handler
}

// NewHandler creates a catalog handler showing the stories of set and recording clicks with recorder
func NewHandler(recorder *actions.Recorder, set *stories.Set, opts ...HandlerOption) *Handler {
	options := handlerOptions{
		TruncateAfter: DefaultTruncateAfter,
		Logger:        slog.Default(),
		Now:           time.Now,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.TruncateAfter == 0 {
		options.TruncateAfter = DefaultTruncateAfter
	}

	mux := http.NewServeMux()
	handler := &Handler{
		recorder: recorder,
		stories:  set,

		pathPrefix:    strings.TrimSuffix(options.PathPrefix, "/"),
		truncateAfter: options.TruncateAfter,
		logger:        options.Logger,
		now:           options.Now,

		mux: setHandlerOptions(options, mux),
	}

	mux.HandleFunc("GET /{$}", handler.root)
	mux.HandleFunc("GET /story/{storyId}", handler.getStory)
	mux.HandleFunc("GET /iframe/{storyId}", handler.getIframe)
	mux.HandleFunc("POST /action/{actionId}", handler.postAction)
	mux.HandleFunc("GET /actions", handler.getActionList)
	mux.HandleFunc("GET /actions-sse", handler.getActionsSSE)

	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServerFS(static.Assets)))

	return handler
}

func setHandlerOptions(options handlerOptions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = views.WithHandlerOptions(ctx, views.HandlerOptions{
			PathPrefix: options.PathPrefix,
		})
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	var selected *stories.Story
	if first, ok := h.stories.First(); ok {
		selected = &first
	}

	h.renderCatalog(w, r, selected)
}

func (h *Handler) getStory(w http.ResponseWriter, r *http.Request) {
	story, ok := h.lookupStory(w, r)
	if !ok {
		return
	}

	h.renderCatalog(w, r, &story)
}

func (h *Handler) getIframe(w http.ResponseWriter, r *http.Request) {
	story, ok := h.lookupStory(w, r)
	if !ok {
		return
	}

	ctx := h.withBinder(r.Context(), story.ID)
	templ.Handler(views.CanvasPage(story)).ServeHTTP(w, r.WithContext(ctx))
}

func (h *Handler) renderCatalog(w http.ResponseWriter, r *http.Request, selected *stories.Story) {
	ctx := r.Context()
	var recentActions []actions.Action
	if selected != nil {
		ctx = h.withBinder(ctx, selected.ID)
		recentActions = h.loadRecentActions(selected.ID)
	}

	templ.Handler(views.Catalog(views.CatalogProps{
		Groups:   h.stories.Groups(),
		Selected: selected,
		Actions:  recentActions,
		Now:      h.now(),
	})).ServeHTTP(w, r.WithContext(ctx))
}

func (h *Handler) lookupStory(w http.ResponseWriter, r *http.Request) (stories.Story, bool) {
	story, err := h.stories.Get(r.PathValue("storyId"))
	if errors.Is(err, stories.ErrNotFound) {
		http.Error(w, "Story not found", http.StatusNotFound)
		return stories.Story{}, false
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to get story", slog.Any("err", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return stories.Story{}, false
	}
	return story, true
}

func (h *Handler) withBinder(ctx context.Context, storyID string) context.Context {
	return ui.WithActionBinder(ctx, storyBinder{
		recorder:   h.recorder,
		storyID:    storyID,
		pathPrefix: h.pathPrefix,
	})
}

// postAction activates a bound button
func (h *Handler) postAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuid.FromString(r.PathValue("actionId"))
	if err != nil {
		http.Error(w, "Invalid action id", http.StatusBadRequest)
		return
	}

	if _, err := h.recorder.Invoke(r.Context(), actionID); err != nil {
		if errors.Is(err, actions.ErrUnknownBinding) {
			http.Error(w, "Action not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to invoke action", slog.Any("err", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getActionList(w http.ResponseWriter, r *http.Request) {
	recentActions := h.loadRecentActions(r.URL.Query().Get("story"))

	templ.Handler(views.ActionList(recentActions, h.now())).ServeHTTP(w, r)
}

// getActionsSSE streams new actions as server-sent events
func (h *Handler) getActionsSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	storyID := r.URL.Query().Get("story")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // For NGINX proxy

	ctx := r.Context()
	actionCh := h.recorder.Subscribe(ctx)

	// Send a keep-alive message initially to ensure the connection is established
	fmt.Fprintf(w, "event: keepalive\ndata: connected\n\n")
	flusher.Flush()

	var buf bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return
		case action, ok := <-actionCh:
			if !ok {
				return
			}
			if storyID != "" && action.StoryID != storyID {
				continue
			}

			buf.Reset()
			if err := views.ActionListItem(action, h.now()).Render(ctx, &buf); err != nil {
				h.logger.ErrorContext(ctx, "Failed to render action", slog.Any("err", err))
				continue
			}

			fmt.Fprintf(w, "event: new-action\n")
			for _, line := range strings.Split(buf.String(), "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprintf(w, "\n")

			flusher.Flush()
		}
	}
}

// loadRecentActions returns the newest actions first, limited to the story if storyID is set
func (h *Handler) loadRecentActions(storyID string) []actions.Action {
	return h.recorder.RecentActions(storyID, h.truncateAfter)
}
