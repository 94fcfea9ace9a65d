package display

import (
	"fmt"
	"io"
	"os"

	"github.com/penwyp/go-allan-plot/internal/presentation/chart"
)

// Renderer shows or stores a built chart.
type Renderer interface {
	Render(c *chart.Chart) error
}

// Blocking is implemented by renderers that only return once the user has
// dismissed the output.
type Blocking interface {
	Blocks() bool
}

// Kind selects a Renderer implementation.
type Kind string

const (
	KindWindow   Kind = "window"
	KindFile     Kind = "file"
	KindTerminal Kind = "terminal"
)

// Options configures New.
type Options struct {
	Kind   Kind
	Output string    // file path for KindFile
	Writer io.Writer // destination for KindTerminal, os.Stdout when nil
}

// New returns the renderer for opts.Kind. An empty kind means KindFile when
// Output is set and KindWindow otherwise.
func New(opts Options) (Renderer, error) {
	kind := opts.Kind
	if kind == "" {
		kind = KindWindow
		if opts.Output != "" {
			kind = KindFile
		}
	}

	switch kind {
	case KindWindow:
		return NewWindowRenderer(), nil
	case KindFile:
		if opts.Output == "" {
			return nil, fmt.Errorf("file renderer needs an output path")
		}
		return NewFileRenderer(opts.Output), nil
	case KindTerminal:
		w := opts.Writer
		if w == nil {
			w = os.Stdout
		}
		return NewTerminalRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", kind)
	}
}

// IsBlocking reports whether r holds the caller until the user closes it.
func IsBlocking(r Renderer) bool {
	b, ok := r.(Blocking)
	return ok && b.Blocks()
}

// FileRenderer saves the chart to a file.
type FileRenderer struct {
	path string
}

// NewFileRenderer creates a renderer writing to path.
func NewFileRenderer(path string) *FileRenderer {
	return &FileRenderer{path: path}
}

// Path returns the output path.
func (r *FileRenderer) Path() string {
	return r.path
}

// Render implements Renderer.
func (r *FileRenderer) Render(c *chart.Chart) error {
	return c.Save(r.path)
}
