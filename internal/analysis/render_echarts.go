package analysis

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const htmlDataURIPrefix = "data:text/html;base64,"

// EChartsRenderer produces an interactive ECharts page embedded as a data URI.
type EChartsRenderer struct {
	Width  string
	Height string
}

func NewEChartsRenderer() *EChartsRenderer {
	return &EChartsRenderer{Width: "800px", Height: "600px"}
}

func (r *EChartsRenderer) Render(xs, ys []float64, label string) (string, error) {
	title := trajectoryTitle(label)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     r.Width,
			Height:    r.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "X coordinate",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Name:  "Y coordinate",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	n := pointCount(xs, ys)
	items := make([]opts.LineData, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, opts.LineData{Value: []interface{}{xs[i], ys[i]}})
	}

	line.AddSeries(label, items).SetSeriesOptions(
		charts.WithLineStyleOpts(opts.LineStyle{Width: 0.5, Color: "rgba(31, 119, 180, 0.7)"}),
	)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render trajectory chart: %w", err)
	}

	return htmlDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
