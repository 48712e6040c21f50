package analysis

import (
	"fmt"
	"strings"
	"sync"
)

// TrajectoryRenderer turns a gaze path into a self-contained data URI.
// Implementations must accept empty sequences.
type TrajectoryRenderer interface {
	Render(xs, ys []float64, label string) (string, error)
}

const (
	RendererPNG     = "png"
	RendererECharts = "echarts"
)

// NewRenderer builds the backend selected by name. When serialize is set the
// backend is wrapped so only one render runs at a time.
func NewRenderer(name string, serialize bool) (TrajectoryRenderer, error) {
	var r TrajectoryRenderer
	switch strings.ToLower(name) {
	case "", RendererPNG:
		r = NewPlotRenderer()
	case RendererECharts:
		r = NewEChartsRenderer()
	default:
		return nil, fmt.Errorf("unknown trajectory renderer %q", name)
	}

	if serialize {
		r = Serialized(r)
	}
	return r, nil
}

type serializedRenderer struct {
	mu   sync.Mutex
	next TrajectoryRenderer
}

// Serialized wraps r so concurrent callers take turns. Use it for backends
// that keep a single drawing context.
func Serialized(r TrajectoryRenderer) TrajectoryRenderer {
	return &serializedRenderer{next: r}
}

func (s *serializedRenderer) Render(xs, ys []float64, label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Render(xs, ys, label)
}

func trajectoryTitle(label string) string {
	return strings.ToUpper(label) + " - trajectory"
}

func pointCount(xs, ys []float64) int {
	return min(len(xs), len(ys))
}
