package adev

import (
	"context"
	"errors"
	"fmt"

	"github.com/penwyp/go-allan-plot/internal/core/model"
	"github.com/penwyp/go-allan-plot/internal/data/parser"
	"github.com/penwyp/go-allan-plot/internal/data/watcher"
	"github.com/penwyp/go-allan-plot/internal/presentation/chart"
	"github.com/penwyp/go-allan-plot/internal/presentation/display"
	"github.com/penwyp/go-allan-plot/internal/util"
)

// ErrBlockingRenderer is returned by Watch when the renderer only returns
// after the user closes it, so there is nothing to refresh.
var ErrBlockingRenderer = errors.New("watch mode needs a file or terminal renderer")

// Loader loads a data series from a path
type Loader interface {
	ParseFile(path string) (model.Series, error)
}

// EventSource delivers change notifications for the input file
type EventSource interface {
	Events() <-chan model.FileEvent
	Close() error
}

// Orchestrator runs the load, build and render steps
type Orchestrator struct {
	config   Config
	loader   Loader
	renderer display.Renderer

	// newWatcher is swapped in tests
	newWatcher func(path string) (EventSource, error)

	lastFingerprint string
}

// NewOrchestrator creates an Orchestrator for config that draws with renderer
func NewOrchestrator(config Config, renderer display.Renderer) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if renderer == nil {
		return nil, fmt.Errorf("invalid config: renderer is required")
	}

	return &Orchestrator{
		config:   config,
		loader:   parser.NewParser(config.Policy),
		renderer: renderer,
		newWatcher: func(path string) (EventSource, error) {
			return watcher.NewFileWatcher(path)
		},
	}, nil
}

// Config returns the validated configuration
func (o *Orchestrator) Config() Config {
	return o.config
}

// Run loads the input, builds the chart and renders it once.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	series, err := o.loader.ParseFile(o.config.Input)
	if err != nil {
		return err
	}
	util.LogInfo("Loaded data series", util.F("path", o.config.Input), util.F("points", series.Len()))

	c, err := chart.Build(series, o.config.Chart)
	if err != nil {
		return fmt.Errorf("failed to build chart: %w", err)
	}

	if err := o.renderer.Render(c); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// Watch renders once and then again each time the input file content
// changes, until ctx is cancelled. Load and render failures after the first
// render are logged and the previous output stays in place.
func (o *Orchestrator) Watch(ctx context.Context) error {
	if display.IsBlocking(o.renderer) {
		return ErrBlockingRenderer
	}

	if err := o.Run(ctx); err != nil {
		return err
	}
	o.lastFingerprint = o.fingerprint()

	source, err := o.newWatcher(o.config.Input)
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer source.Close()

	util.LogInfo("Watching input for changes", util.F("path", o.config.Input))

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Stopped watching input")
			return nil

		case event, ok := <-source.Events():
			if !ok {
				return nil
			}
			o.handleFileChange(ctx, event)
		}
	}
}

func (o *Orchestrator) handleFileChange(ctx context.Context, event model.FileEvent) {
	util.LogDebug(fmt.Sprintf("File changed: %s (%s)", event.Path, event.Operation))

	fp := o.fingerprint()
	if fp == "" || fp == o.lastFingerprint {
		util.LogDebug("Input content unchanged, skipping render")
		return
	}
	o.lastFingerprint = fp

	if err := o.Run(ctx); err != nil {
		util.LogError("Failed to refresh chart", util.F("error", err.Error()))
	}
}

// fingerprint returns "" when the file cannot be read, e.g. in the middle
// of an editor's replace-on-save.
func (o *Orchestrator) fingerprint() string {
	fp, err := util.CalculateFileFingerprint(o.config.Input)
	if err != nil {
		util.LogDebug("Cannot fingerprint input", util.F("error", err.Error()))
		return ""
	}
	return fp
}
