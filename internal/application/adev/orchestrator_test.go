package adev

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/penwyp/go-allan-plot/internal/core/model"
	"github.com/penwyp/go-allan-plot/internal/data/parser"
	"github.com/penwyp/go-allan-plot/internal/presentation/chart"
	"github.com/penwyp/go-allan-plot/internal/presentation/display"
	"github.com/penwyp/go-allan-plot/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

type captureRenderer struct {
	mu       sync.Mutex
	charts   []*chart.Chart
	rendered chan struct{}
	err      error
}

func newCaptureRenderer() *captureRenderer {
	return &captureRenderer{rendered: make(chan struct{}, 16)}
}

func (r *captureRenderer) Render(c *chart.Chart) error {
	r.mu.Lock()
	r.charts = append(r.charts, c)
	r.mu.Unlock()
	r.rendered <- struct{}{}
	return r.err
}

func (r *captureRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.charts)
}

func (r *captureRenderer) last() *chart.Chart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.charts[len(r.charts)-1]
}

type blockingRenderer struct{ *captureRenderer }

func (r *blockingRenderer) Blocks() bool { return true }

type fakeSource struct {
	events chan model.FileEvent
	closed bool
}

func (f *fakeSource) Events() <-chan model.FileEvent { return f.events }
func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func TestRunSample(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := gen.WriteSample("adev.txt")
	require.NoError(t, err)

	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: path}, r)
	require.NoError(t, err)
	require.NoError(t, o.Run(context.Background()))

	require.Equal(t, 1, r.count())
	c := r.last()
	assert.Equal(t, "Allan Deviation", c.Plot.Title.Text)
	assert.Equal(t, plotter.XYs{{X: 0.001, Y: 1e-10}, {X: 0.01, Y: 5e-11}}, c.Points)
	assert.Equal(t, 1e-3, c.Plot.X.Min)
	assert.Equal(t, 1e2, c.Plot.X.Max)
	assert.Equal(t, 1e-12, c.Plot.Y.Min)
	assert.Equal(t, 1e-10, c.Plot.Y.Max)
}

func TestRunMissingFileDoesNotRender(t *testing.T) {
	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: filepath.Join(t.TempDir(), "nope.txt")}, r)
	require.NoError(t, err)

	err = o.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, 0, r.count())
}

func TestRunParseErrorDoesNotRender(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := gen.WriteLines("bad.txt", "0.001 abc")
	require.NoError(t, err)

	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: path}, r)
	require.NoError(t, err)

	err = o.Run(context.Background())
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
	assert.Equal(t, 0, r.count())
}

func TestRunStrictPolicy(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := gen.WriteLines("adev.txt", "0.001 1e-10", "0.01 5e-11 extra")
	require.NoError(t, err)

	lenient := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: path}, lenient)
	require.NoError(t, err)
	require.NoError(t, o.Run(context.Background()))
	assert.Len(t, lenient.last().Points, 1)

	strict := newCaptureRenderer()
	o, err = NewOrchestrator(Config{Input: path, Policy: parser.PolicyStrict}, strict)
	require.NoError(t, err)
	var merr *parser.MalformedLineError
	assert.ErrorAs(t, o.Run(context.Background()), &merr)
	assert.Equal(t, 0, strict.count())
}

func TestRunRenderErrorIsWrapped(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := gen.WriteSample("adev.txt")
	require.NoError(t, err)

	boom := errors.New("boom")
	r := newCaptureRenderer()
	r.err = boom
	o, err := NewOrchestrator(Config{Input: path}, r)
	require.NoError(t, err)

	err = o.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to render chart")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: "whatever.txt"}, r)
	require.NoError(t, err)
	assert.ErrorIs(t, o.Run(ctx), context.Canceled)
	assert.Equal(t, 0, r.count())
}

func TestNewOrchestratorValidation(t *testing.T) {
	_, err := NewOrchestrator(Config{Input: "a.txt"}, nil)
	assert.Error(t, err)

	o, err := NewOrchestrator(Config{Input: "a.txt"}, newCaptureRenderer())
	require.NoError(t, err)
	assert.Equal(t, chart.DefaultConfig().Width, o.Config().Chart.Width)
	assert.Equal(t, chart.DefaultDPI, o.Config().Chart.DPI)
}

func TestRunEmptyInputIsLoadError(t *testing.T) {
	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{}, r)
	require.NoError(t, err)

	err = o.Run(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 0, r.count())
}

func TestWatchRejectsBlockingRenderer(t *testing.T) {
	r := &blockingRenderer{newCaptureRenderer()}
	assert.True(t, display.IsBlocking(r))

	o, err := NewOrchestrator(Config{Input: "a.txt"}, r)
	require.NoError(t, err)
	assert.ErrorIs(t, o.Watch(context.Background()), ErrBlockingRenderer)
}

func TestWatchRerendersOnChange(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := gen.WriteSample("adev.txt")
	require.NoError(t, err)

	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: path}, r)
	require.NoError(t, err)

	src := &fakeSource{events: make(chan model.FileEvent)}
	o.newWatcher = func(string) (EventSource, error) { return src, nil }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Watch(ctx) }()

	waitRender(t, r)

	_, err = gen.WriteLines("adev.txt", "0.001 1e-10", "0.01 5e-11", "0.1 2e-11")
	require.NoError(t, err)
	src.events <- model.FileEvent{Path: path, Operation: "WRITE"}

	waitRender(t, r)
	assert.Equal(t, 2, r.count())
	assert.Len(t, r.last().Points, 3)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.True(t, src.closed)
}

func TestWatchStopsWhenEventsClose(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := gen.WriteSample("adev.txt")
	require.NoError(t, err)

	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: path}, r)
	require.NoError(t, err)

	src := &fakeSource{events: make(chan model.FileEvent)}
	close(src.events)
	o.newWatcher = func(string) (EventSource, error) { return src, nil }

	assert.NoError(t, o.Watch(context.Background()))
	assert.Equal(t, 1, r.count())
}

func TestHandleFileChange(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := gen.WriteSample("adev.txt")
	require.NoError(t, err)

	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: path}, r)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, o.Run(ctx))
	o.lastFingerprint = o.fingerprint()
	event := model.FileEvent{Path: path, Operation: "WRITE"}

	// same content
	o.handleFileChange(ctx, event)
	assert.Equal(t, 1, r.count())

	// broken content is logged, previous render kept
	_, err = gen.WriteLines("adev.txt", "0.001 nope")
	require.NoError(t, err)
	o.handleFileChange(ctx, event)
	assert.Equal(t, 1, r.count())

	// repeated event for the same broken content
	o.handleFileChange(ctx, event)
	assert.Equal(t, 1, r.count())

	_, err = gen.WriteLines("adev.txt", "0.001 1e-10", "0.01 5e-11", "0.1 2e-11")
	require.NoError(t, err)
	o.handleFileChange(ctx, event)
	assert.Equal(t, 2, r.count())
	assert.Len(t, r.last().Points, 3)
}

func TestWatchInitialFailureIsReturned(t *testing.T) {
	r := newCaptureRenderer()
	o, err := NewOrchestrator(Config{Input: filepath.Join(t.TempDir(), "nope.txt")}, r)
	require.NoError(t, err)

	started := false
	o.newWatcher = func(string) (EventSource, error) {
		started = true
		return &fakeSource{events: make(chan model.FileEvent)}, nil
	}

	assert.ErrorIs(t, o.Watch(context.Background()), fs.ErrNotExist)
	assert.False(t, started)
}

func waitRender(t *testing.T, r *captureRenderer) {
	t.Helper()
	select {
	case <-r.rendered:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a render")
	}
}
