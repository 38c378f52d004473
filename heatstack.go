// Package heatstack is the component catalog of the heat-stack UI: it renders the Button stories,
// makes their buttons clickable from a browser and records every click.
package heatstack

import (
	"log/slog"
	"net/http"

	"github.com/mrmchughes/home-energy-analysis-tool/actions"
	"github.com/mrmchughes/home-energy-analysis-tool/catalog"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
)

type Instance struct {
	recorder *actions.Recorder
	stories  *stories.Set
	logger   *slog.Logger
}

func (i *Instance) Close() {
	i.recorder.Close()
}

type Options struct {
	// ActionCapacity is the maximum number of recorded actions to keep.
	// Default: 0, will use actions.DefaultActionCapacity
	ActionCapacity uint64
	// RecorderOptions are the options for the action recorder.
	// Default: nil, will use zero RecorderOptions
	RecorderOptions *actions.RecorderOptions

	// Stories replaces the built-in Button stories when set.
	// Default: nil, will use stories.ButtonStories()
	Stories []stories.Story

	// Logger is used for clicks of built-in stories and for the catalog.
	// Default: nil, will use slog.Default()
	Logger *slog.Logger
}

// New creates a new catalog with the built-in Button stories.
func New() *Instance {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a new catalog with the specified options.
// Default options are the zero value of Options.
func NewWithOptions(options Options) *Instance {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recorderOptions := actions.RecorderOptions{}
	if options.RecorderOptions != nil {
		recorderOptions = *options.RecorderOptions
	}
	if recorderOptions.Logger == nil {
		recorderOptions.Logger = logger
	}

	storyList := options.Stories
	if storyList == nil {
		storyList = stories.ButtonStories(logger)
	}

	return &Instance{
		recorder: actions.NewRecorderWithOptions(options.ActionCapacity, recorderOptions),
		stories:  stories.NewSet(storyList...),
		logger:   logger,
	}
}

// Stories returns the story set, it can be changed while the catalog is served.
func (i *Instance) Stories() *stories.Set {
	return i.stories
}

// Recorder returns the recorder of button clicks.
func (i *Instance) Recorder() *actions.Recorder {
	return i.recorder
}

// Handler returns the catalog handler mounted at pathPrefix (e.g. "/stories", empty for the root).
func (i *Instance) Handler(pathPrefix string, opts ...catalog.HandlerOption) http.Handler {
	opts = append([]catalog.HandlerOption{
		catalog.WithPathPrefix(pathPrefix),
		catalog.WithLogger(i.logger),
	}, opts...)

	return catalog.NewHandler(i.recorder, i.stories, opts...)
}
