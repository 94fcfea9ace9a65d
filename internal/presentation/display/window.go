package display

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/penwyp/go-allan-plot/internal/presentation/chart"
	"github.com/penwyp/go-allan-plot/internal/util"
)

// WindowRenderer opens a desktop window with the rasterized chart and blocks
// until the window is closed. It must run on the main goroutine.
type WindowRenderer struct{}

// NewWindowRenderer creates a window renderer
func NewWindowRenderer() *WindowRenderer {
	return &WindowRenderer{}
}

// Blocks implements Blocking.
func (r *WindowRenderer) Blocks() bool {
	return true
}

// Render implements Renderer.
func (r *WindowRenderer) Render(c *chart.Chart) error {
	img := c.Image()
	bounds := img.Bounds()

	a := app.New()
	w := a.NewWindow(c.Plot.Title.Text)

	view := canvas.NewImageFromImage(img)
	view.FillMode = canvas.ImageFillContain
	view.ScaleMode = canvas.ImageScaleSmooth

	w.SetContent(view)
	w.Resize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))

	util.LogDebugf("Showing chart window %dx%d", bounds.Dx(), bounds.Dy())
	w.ShowAndRun()
	util.LogDebug("Chart window closed")
	return nil
}
