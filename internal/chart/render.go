package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/format"
)

// Renderer draws specs with go-chart.
type Renderer struct {
	width  int
	height int
	format string
}

// NewRenderer creates a renderer for png or svg output. Non-positive sizes
// fall back to the defaults.
func NewRenderer(width, height int, imageFormat string) (*Renderer, error) {
	if width <= 0 {
		width = constants.DefaultChartWidth
	}
	if height <= 0 {
		height = constants.DefaultChartHeight
	}
	switch imageFormat {
	case "":
		imageFormat = constants.ChartFormatPNG
	case constants.ChartFormatPNG, constants.ChartFormatSVG:
	default:
		return nil, fmt.Errorf("unsupported chart image format %q", imageFormat)
	}
	return &Renderer{width: width, height: height, format: imageFormat}, nil
}

// Format returns the image format the renderer produces.
func (r *Renderer) Format() string {
	return r.format
}

// ContentType returns the MIME type of rendered images.
func (r *Renderer) ContentType() string {
	if r.format == constants.ChartFormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// CacheKey identifies the image Render would produce for spec.
func (r *Renderer) CacheKey(spec Spec) (string, error) {
	encoded, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to encode chart spec: %w", err)
	}
	digest := xxhash.New()
	_, _ = digest.Write(encoded)
	_, _ = fmt.Fprintf(digest, "|%dx%d|%s", r.width, r.height, r.format)
	return fmt.Sprintf("chart:%s:%016x", spec.Type, digest.Sum64()), nil
}

// Render draws spec to w.
func (r *Renderer) Render(spec Spec, w io.Writer) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	provider := gochart.PNG
	if r.format == constants.ChartFormatSVG {
		provider = gochart.SVG
	}

	var err error
	switch spec.Type {
	case Doughnut:
		err = r.renderDoughnut(spec, provider, w)
	case Line:
		err = r.renderLine(spec, provider, w)
	case Bar:
		err = r.renderBar(spec, provider, w)
	}
	if err != nil {
		return fmt.Errorf("%s chart render failed: %w", spec.Type, err)
	}
	return nil
}

// RenderBytes draws spec into memory.
func (r *Renderer) RenderBytes(spec Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(spec, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderDoughnut(spec Spec, provider gochart.RendererProvider, w io.Writer) error {
	dataset := spec.Datasets[0]
	values := make([]gochart.Value, 0, len(dataset.Data))
	for i, v := range dataset.Data {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %s", spec.Labels[i], format.Currency(v)),
			Value: v,
			Style: gochart.Style{FillColor: colorAt(dataset.Colors, i)},
		})
	}
	if len(values) == 0 {
		return ErrEmptyChart
	}

	donut := gochart.DonutChart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
	return donut.Render(provider, w)
}

func (r *Renderer) renderLine(spec Spec, provider gochart.RendererProvider, w io.Writer) error {
	xValues := make([]float64, len(spec.Labels))
	for i := range spec.Labels {
		xValues[i] = float64(i + 1)
	}
	if len(xValues) == 0 {
		return ErrEmptyChart
	}

	series := make([]gochart.Series, 0, len(spec.Datasets))
	var low, high float64
	for _, dataset := range spec.Datasets {
		for _, v := range dataset.Data {
			low, high = math.Min(low, v), math.Max(high, v)
		}
		series = append(series, gochart.ContinuousSeries{
			Name: dataset.Label,
			Style: gochart.Style{
				StrokeColor: colorAt(dataset.Colors, 0),
				StrokeWidth: 2.5,
				DotColor:    colorAt(dataset.Colors, 0),
				DotWidth:    3,
			},
			XValues: xValues,
			YValues: dataset.Data,
		})
	}

	ticks := make([]gochart.Tick, 0, len(spec.Labels)+1)
	if len(spec.Labels) == 1 {
		// go-chart needs a non-zero x range.
		ticks = append(ticks, gochart.Tick{Value: 0})
	}
	for i, label := range spec.Labels {
		ticks = append(ticks, gochart.Tick{Value: xValues[i], Label: label})
	}

	graph := gochart.Chart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Range:          valueRange(low, high),
			ValueFormatter: axisFormatter(spec.CurrencyAxis),
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{
		gochart.Legend(&graph),
	}
	return graph.Render(provider, w)
}

func (r *Renderer) renderBar(spec Spec, provider gochart.RendererProvider, w io.Writer) error {
	dataset := spec.Datasets[0]
	bars := make([]gochart.Value, 0, len(dataset.Data))
	var low, high float64
	for i, v := range dataset.Data {
		low, high = math.Min(low, v), math.Max(high, v)
		bars = append(bars, gochart.Value{
			Label: spec.Labels[i],
			Value: v,
			Style: gochart.Style{
				FillColor:   colorAt(dataset.Colors, i),
				StrokeColor: colorAt(dataset.Colors, i),
			},
		})
	}
	if len(bars) == 0 {
		return ErrEmptyChart
	}

	graph := gochart.BarChart{
		Title:    spec.Title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: r.width / (3 * len(bars)),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{
			Range:          valueRange(low, high),
			ValueFormatter: axisFormatter(spec.CurrencyAxis),
		},
		Bars: bars,
	}
	return graph.Render(provider, w)
}

// valueRange starts the value axis at zero and leaves headroom above the
// tallest value. A flat range is widened so go-chart can compute ticks.
func valueRange(low, high float64) *gochart.ContinuousRange {
	low = math.Min(0, low)
	high = math.Max(0, high) * 1.1
	if high-low < 1 {
		high = low + 1
	}
	return &gochart.ContinuousRange{Min: low, Max: high}
}

func axisFormatter(currency bool) gochart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		if currency {
			return format.AxisCurrency(f)
		}
		return format.Number(f)
	}
}

func colorAt(colors []string, i int) drawing.Color {
	if i < len(colors) && colors[i] != "" {
		return drawing.ColorFromHex(colors[i])
	}
	return gochart.GetDefaultColor(i)
}
