package analysis

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const pngDataURIPrefix = "data:image/png;base64,"

var (
	trajectoryColor = color.NRGBA{R: 31, G: 119, B: 180, A: 178} // 70% opaque
	gridColor       = color.NRGBA{R: 0, G: 0, B: 0, A: 77}       // 30% opaque
)

// PlotRenderer draws the trajectory as a PNG with gonum/plot.
// Every call builds its own plot, so it is safe for concurrent use.
type PlotRenderer struct {
	Width  vg.Length
	Height vg.Length
}

func NewPlotRenderer() *PlotRenderer {
	return &PlotRenderer{Width: 8 * vg.Inch, Height: 6 * vg.Inch}
}

func (r *PlotRenderer) Render(xs, ys []float64, label string) (string, error) {
	p := plot.New()
	p.Title.Text = trajectoryTitle(label)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(20)
	p.X.Label.Text = "X coordinate"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = "Y coordinate"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	if n := pointCount(xs, ys); n > 0 {
		pts := make(plotter.XYs, n)
		for i := 0; i < n; i++ {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", fmt.Errorf("failed to build trajectory line: %w", err)
		}
		line.LineStyle.Width = vg.Points(0.5)
		line.LineStyle.Color = trajectoryColor
		p.Add(line)
	}

	w, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return "", fmt.Errorf("failed to create png canvas: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("failed to encode trajectory png: %w", err)
	}

	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
