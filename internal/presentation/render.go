package presentation

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"rentdash/internal/models"
)

var ErrEmptyChart = errors.New("chart has no data")

// boxHalfWidth is half the width of a box, in category slots.
const boxHalfWidth = 0.3

// Renderer rasterizes chart descriptors to PNG.
type Renderer struct {
	width  int
	height int
}

// NewRenderer returns a renderer producing images of roughly width x height.
func NewRenderer(width, height int) *Renderer {
	w, h := ChartDimensions(width, height)
	return &Renderer{width: w, height: h}
}

// ChartDimensions clamps requested sizes to something go-chart lays out legibly.
// A non-positive height derives from the width.
func ChartDimensions(width, height int) (int, int) {
	if width < 400 {
		width = 400
	}
	if height <= 0 {
		height = width / 2
	}
	if height < 280 {
		height = 280
	}
	if height > 720 {
		height = 720
	}
	return width, height
}

// RenderPNG writes c as a PNG image. Charts without data return ErrEmptyChart.
func (r *Renderer) RenderPNG(c Chart, w io.Writer) error {
	if c.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrEmptyChart, c.ID)
	}

	switch c.Mark {
	case MarkBar:
		return r.renderBars(c, w)
	case MarkBoxplot:
		return r.renderBoxes(c, w)
	case MarkCircle:
		return r.renderScatter(c, w)
	}
	return fmt.Errorf("unsupported mark %q", c.Mark)
}

func (r *Renderer) renderBars(c Chart, w io.Writer) error {
	top := 0.0
	bars := make([]chart.Value, len(c.Bars))
	for i, b := range c.Bars {
		col := hexColor(b.Color)
		bars[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		}
		top = math.Max(top, b.Value)
	}
	if top <= 0 {
		return fmt.Errorf("%w: %s", ErrEmptyChart, c.ID)
	}

	bc := chart.BarChart{
		Title:      c.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12}},
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(r.width, len(bars)),
		YAxis: chart.YAxis{
			Name:  c.Y.Title,
			Range: &chart.ContinuousRange{Min: 0, Max: niceCeil(top)},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

func (r *Renderer) renderBoxes(c Chart, w io.Writer) error {
	colors := palette(len(c.Boxes))
	ticks := boxTicks(c.Boxes)
	var series []chart.Series
	lo, hi := math.Inf(1), math.Inf(-1)

	for i, b := range c.Boxes {
		x := float64(i + 1)
		col := hexColor(colors[i])
		st := chart.Style{StrokeColor: col, StrokeWidth: 2}

		series = append(series,
			chart.ContinuousSeries{
				Name:    b.Key,
				XValues: []float64{x - boxHalfWidth, x + boxHalfWidth, x + boxHalfWidth, x - boxHalfWidth, x - boxHalfWidth},
				YValues: []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
				Style:   st,
			},
			chart.ContinuousSeries{XValues: []float64{x - boxHalfWidth, x + boxHalfWidth}, YValues: []float64{b.Median, b.Median}, Style: st},
			chart.ContinuousSeries{XValues: []float64{x, x}, YValues: []float64{b.LowerWhisker, b.Q1}, Style: st},
			chart.ContinuousSeries{XValues: []float64{x, x}, YValues: []float64{b.Q3, b.UpperWhisker}, Style: st},
		)
		if len(b.Outliers) > 0 {
			xs := make([]float64, len(b.Outliers))
			for j := range xs {
				xs[j] = x
			}
			series = append(series, chart.ContinuousSeries{XValues: xs, YValues: b.Outliers, Style: pointStyle(col, 3)})
		}
		lo = math.Min(lo, b.Min)
		hi = math.Max(hi, b.Max)
	}

	yMin, yMax := pad(lo, hi)
	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  c.X.Title,
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: c.Y.Title, Range: &chart.ContinuousRange{Min: yMin, Max: yMax}},
		Series: series,
	}
	return ch.Render(chart.PNG, w)
}

func (r *Renderer) renderScatter(c Chart, w io.Writer) error {
	byGroup := make(map[string][]Point)
	for _, p := range c.Points {
		byGroup[p.Group] = append(byGroup[p.Group], p)
	}
	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	sizeLo, sizeHi := math.Inf(1), math.Inf(-1)
	for _, p := range c.Points {
		sizeLo = math.Min(sizeLo, p.Size)
		sizeHi = math.Max(sizeHi, p.Size)
	}
	sizeRange := c.SizeRange
	if len(sizeRange) != 2 {
		sizeRange = []float64{50, 200}
	}

	series := make([]chart.Series, 0, len(groups))
	for _, g := range groups {
		points := byGroup[g]
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		radii := make([]float64, len(points))
		for i, p := range points {
			xs[i] = p.X
			ys[i] = p.Y
			radii[i] = dotRadius(p.Size, sizeLo, sizeHi, sizeRange)
		}

		st := pointStyle(hexColor(points[0].Color), 4)
		st.DotWidthProvider = func(_, _ chart.Range, index int, _, _ float64) float64 {
			return radii[index]
		}
		series = append(series, chart.ContinuousSeries{Name: g, XValues: xs, YValues: ys, Style: st})
	}

	xMin, xMax := pad(c.XDomain.Min, c.XDomain.Max)
	yMin, yMax := pad(c.YDomain.Min, c.YDomain.Max)
	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: c.X.Title, Range: &chart.ContinuousRange{Min: xMin, Max: xMax}},
		YAxis:      chart.YAxis{Name: c.Y.Title, Range: &chart.ContinuousRange{Min: yMin, Max: yMax}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// boxTicks labels box i at x = i+1. go-chart takes the x range from the outermost
// ticks, so unlabeled ticks at 0.5 and n+0.5 keep the first and last boxes whole.
func boxTicks(boxes []models.BoxStats) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(boxes)+2)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	for i, b := range boxes {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: b.Key})
	}
	return append(ticks, chart.Tick{Value: float64(len(boxes)) + 0.5})
}

// pointStyle draws dots only, no connecting line.
func pointStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    col.WithAlpha(180),
	}
}

// dotRadius maps a size value linearly into the mark area range and returns the
// radius of a circle of that area.
func dotRadius(v, lo, hi float64, areaRange []float64) float64 {
	area := (areaRange[0] + areaRange[1]) / 2
	if hi > lo {
		area = areaRange[0] + (v-lo)/(hi-lo)*(areaRange[1]-areaRange[0])
	}
	return math.Sqrt(area / math.Pi)
}

// pad widens [lo, hi] by 5% on each side so marks do not sit on the frame.
func pad(lo, hi float64) (float64, float64) {
	if hi <= lo {
		return lo - 1, hi + 1
	}
	d := (hi - lo) * 0.05
	return lo - d, hi + d
}

// niceCeil rounds v up to 1, 2, 2.5 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(v)))
	norm := v / mag
	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 2.5:
		return 2.5 * mag
	case norm <= 5:
		return 5 * mag
	}
	return 10 * mag
}

func barWidth(width, bars int) int {
	if bars == 0 {
		return 40
	}
	w := (width - 100) / (bars * 2)
	if w < 10 {
		w = 10
	}
	if w > 80 {
		w = 80
	}
	return w
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
