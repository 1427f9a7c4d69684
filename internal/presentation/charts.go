package presentation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"rentdash/internal/models"
	"rentdash/internal/pipeline"
)

var ErrUnknownChart = errors.New("unknown chart")

// Chart identifiers, in page order.
const (
	ChartRentByCity   = "rent-by-city"
	ChartRoomsCount   = "rooms-count"
	ChartTotalByCity  = "total-by-city"
	ChartAreaVsRent   = "area-vs-rent"
	ChartAnimalPolicy = "animal-policy"
	ChartTaxByCity    = "tax-by-city"
	ChartFurniture    = "furniture"
)

// Marks
const (
	MarkBar     = "bar"
	MarkBoxplot = "boxplot"
	MarkCircle  = "circle"
)

// Encoding types
const (
	Nominal      = "nominal"
	Ordinal      = "ordinal"
	Quantitative = "quantitative"
)

// Encoding binds a data field to a visual channel.
type Encoding struct {
	Field  string `json:"field"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Format string `json:"format,omitempty"`
}

// ColorScale pins category colors.
type ColorScale struct {
	Domain []string `json:"domain"`
	Range  []string `json:"range"`
}

// Extent is a closed numeric interval.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Group string  `json:"group"`
	Color string  `json:"color"`
}

// Chart is a render-ready description of one dashboard chart. Exactly one of Bars,
// Boxes or Points carries data, matching Mark.
type Chart struct {
	ID           string            `json:"id"`
	Subheader    string            `json:"subheader"`
	Title        string            `json:"title"`
	Mark         string            `json:"mark"`
	X            Encoding          `json:"x"`
	Y            Encoding          `json:"y"`
	Color        *Encoding         `json:"color,omitempty"`
	ColorScale   *ColorScale       `json:"color_scale,omitempty"`
	Size         *Encoding         `json:"size,omitempty"`
	SizeRange    []float64         `json:"size_range,omitempty"`
	Tooltip      []Encoding        `json:"tooltip"`
	XDomain      *Extent           `json:"x_domain,omitempty"`
	YDomain      *Extent           `json:"y_domain,omitempty"`
	Interactive  bool              `json:"interactive"`
	EmptyMessage string            `json:"empty_message,omitempty"`
	Bars         []Bar             `json:"bars,omitempty"`
	Boxes        []models.BoxStats `json:"boxes,omitempty"`
	Points       []Point           `json:"points,omitempty"`
}

// IsEmpty reports whether the chart has nothing to draw.
func (c Chart) IsEmpty() bool {
	return c.EmptyMessage != "" || (len(c.Bars) == 0 && len(c.Boxes) == 0 && len(c.Points) == 0)
}

type builder func(pipeline.View) (Chart, error)

var builders = map[string]builder{
	ChartRentByCity:   RentByCity,
	ChartRoomsCount:   RoomsCount,
	ChartTotalByCity:  TotalByCity,
	ChartAreaVsRent:   AreaVsRent,
	ChartAnimalPolicy: AnimalPolicy,
	ChartTaxByCity:    TaxByCity,
	ChartFurniture:    Furniture,
}

// ChartIDs lists every chart in page order.
func ChartIDs() []string {
	return []string{
		ChartRentByCity, ChartRoomsCount, ChartTotalByCity, ChartAreaVsRent,
		ChartAnimalPolicy, ChartTaxByCity, ChartFurniture,
	}
}

// BuildChart builds the chart with the given id over view.
func BuildChart(view pipeline.View, id string) (Chart, error) {
	b, ok := builders[id]
	if !ok {
		return Chart{}, fmt.Errorf("%w: %q", ErrUnknownChart, id)
	}
	return b(view)
}

// Charts builds every chart in page order.
func Charts(view pipeline.View) ([]Chart, error) {
	charts := make([]Chart, 0, len(builders))
	for _, id := range ChartIDs() {
		c, err := BuildChart(view, id)
		if err != nil {
			return nil, fmt.Errorf("failed to build chart %s: %w", id, err)
		}
		charts = append(charts, c)
	}
	return charts, nil
}

// RentByCity is the mean rent per city bar chart.
func RentByCity(view pipeline.View) (Chart, error) {
	groups, err := pipeline.GroupMean(view, pipeline.FieldRent)
	if err != nil {
		return Chart{}, err
	}

	y := Encoding{Field: "mean(rent amount (R$))", Title: titleMeanRent, Type: Quantitative, Format: ",.2f"}
	return Chart{
		ID:        ChartRentByCity,
		Subheader: "Distribuição de Aluguel por Cidade",
		Title:     "Preço Médio de Aluguel por Cidade",
		Mark:      MarkBar,
		X:         cityEncoding(),
		Y:         y,
		Color:     ptr(cityEncoding()),
		Tooltip:   []Encoding{cityEncoding(), y},
		Bars:      groupBars(groups),
	}, nil
}

// RoomsCount is the number of listings per room count.
func RoomsCount(view pipeline.View) (Chart, error) {
	counts, err := pipeline.CountBy(view, pipeline.FieldRooms, nil)
	if err != nil {
		return Chart{}, err
	}

	x := Encoding{Field: "rooms", Title: titleRooms, Type: Ordinal}
	y := Encoding{Field: "count()", Title: titlePropCount, Type: Quantitative}
	bars := make([]Bar, len(counts))
	colors := palette(len(counts))
	for i, c := range counts {
		bars[i] = Bar{Label: c.Category, Value: float64(c.Count), Color: colors[i]}
	}

	return Chart{
		ID:        ChartRoomsCount,
		Subheader: "Quantidade de Imóveis por Número de Quartos",
		Title:     "Quantidade de Imóveis por Número de Quartos",
		Mark:      MarkBar,
		X:         x,
		Y:         y,
		Color:     ptr(x),
		Tooltip:   []Encoding{x, y},
		Bars:      bars,
	}, nil
}

// TotalByCity is the distribution of total monthly cost per city.
func TotalByCity(view pipeline.View) (Chart, error) {
	boxes, err := pipeline.BoxByCity(view, pipeline.FieldTotal)
	if err != nil {
		return Chart{}, err
	}

	y := Encoding{Field: "total (R$)", Title: titleTotal, Type: Quantitative, Format: ",.2f"}
	c := Chart{
		ID:        ChartTotalByCity,
		Subheader: "Total de Despesas Mensais por Cidade",
		Title:     "Despesas Totais Mensais por Cidade",
		Mark:      MarkBoxplot,
		X:         cityEncoding(),
		Y:         y,
		Color:     ptr(cityEncoding()),
		Tooltip:   []Encoding{cityEncoding(), y},
		Boxes:     boxes,
	}
	if len(boxes) > 0 {
		c.YDomain = &Extent{Min: boxes[0].Min, Max: boxes[0].Max}
		for _, b := range boxes[1:] {
			c.YDomain.Min = min(c.YDomain.Min, b.Min)
			c.YDomain.Max = max(c.YDomain.Max, b.Max)
		}
	}
	return c, nil
}

// AreaVsRent is the area/rent scatter, one dot per listing sized by room count.
func AreaVsRent(view pipeline.View) (Chart, error) {
	x := Encoding{Field: "area", Title: titleArea, Type: Quantitative}
	y := Encoding{Field: "rent amount (R$)", Title: titleRent, Type: Quantitative, Format: ",.2f"}
	size := Encoding{Field: "rooms", Title: titleRooms, Type: Quantitative}

	colors := cityColors(view)
	points := make([]Point, view.Len())
	bound := make(orb.MultiPoint, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		points[i] = Point{X: r.Area, Y: r.Rent, Size: float64(r.Rooms), Group: r.City, Color: colors[r.City]}
		bound = append(bound, orb.Point{r.Area, r.Rent})
	}

	c := Chart{
		ID:          ChartAreaVsRent,
		Subheader:   "Relação entre Área e Preço de Aluguel",
		Title:       "Relação entre Área e Preço de Aluguel",
		Mark:        MarkCircle,
		X:           x,
		Y:           y,
		Color:       ptr(cityEncoding()),
		Size:        &size,
		SizeRange:   []float64{50, 200},
		Tooltip:     []Encoding{x, y, size, cityEncoding()},
		Interactive: true,
		Points:      points,
	}
	if len(bound) > 0 {
		b := bound.Bound()
		c.XDomain = &Extent{Min: b.Min.X(), Max: b.Max.X()}
		c.YDomain = &Extent{Min: b.Min.Y(), Max: b.Max.Y()}
	}
	return c, nil
}

// AnimalPolicy is the share of listings that do and do not accept animals.
func AnimalPolicy(view pipeline.View) (Chart, error) {
	x := Encoding{Field: "Status", Title: titleStatus, Type: Nominal}
	y := Encoding{Field: "Porcentagem", Title: titlePercent, Type: Quantitative, Format: ".2f"}
	domain := []string{animalLabels[models.AnimalAccept], animalLabels[models.AnimalNotAccept]}

	c := Chart{
		ID:         ChartAnimalPolicy,
		Subheader:  "Imóveis que Aceitam Animais",
		Title:      "Porcentagem de Imóveis que Aceitam Animais",
		Mark:       MarkBar,
		X:          x,
		Y:          y,
		Color:      ptr(x),
		ColorScale: &ColorScale{Domain: domain, Range: []string{"#4caf50", "#f44336"}},
		Tooltip:    []Encoding{x, y},
	}
	if view.IsEmpty() {
		c.EmptyMessage = NoDataMessage
		return c, nil
	}

	counts, err := pipeline.CountBy(view, pipeline.FieldAnimal, []string{models.AnimalAccept, models.AnimalNotAccept})
	if err != nil {
		return Chart{}, err
	}
	for _, s := range pipeline.Percentages(counts) {
		label := translate(animalLabels, s.Category)
		c.Bars = append(c.Bars, Bar{Label: label, Value: s.Percent, Color: scaleColor(c.ColorScale, label)})
	}
	return c, nil
}

// TaxByCity is the mean property tax per city.
func TaxByCity(view pipeline.View) (Chart, error) {
	y := Encoding{Field: "property tax (R$)", Title: titleMeanTax, Type: Quantitative, Format: ",.2f"}
	c := Chart{
		ID:        ChartTaxByCity,
		Subheader: "Comparação do Imposto Médio por Cidade",
		Title:     "Comparação do Imposto Médio por Cidade",
		Mark:      MarkBar,
		X:         cityEncoding(),
		Y:         y,
		Color:     ptr(cityEncoding()),
		Tooltip:   []Encoding{cityEncoding(), y},
	}
	if view.IsEmpty() {
		c.EmptyMessage = NoDataMessage
		return c, nil
	}

	groups, err := pipeline.GroupMean(view, pipeline.FieldTax)
	if err != nil {
		return Chart{}, err
	}
	c.Bars = groupBars(groups)
	return c, nil
}

// Furniture is the furnished/unfurnished listing count.
func Furniture(view pipeline.View) (Chart, error) {
	x := Encoding{Field: titleFurnitureID, Title: titleFurniture, Type: Nominal}
	y := Encoding{Field: "Quantidade", Title: titlePropCount, Type: Quantitative, Format: "d"}
	c := Chart{
		ID:        ChartFurniture,
		Subheader: "Distribuição de Mobília dos Imóveis",
		Title:     "Distribuição de Mobília dos Imóveis",
		Mark:      MarkBar,
		X:         x,
		Y:         y,
		Color:     ptr(x),
		Tooltip:   []Encoding{x, y},
	}
	if view.IsEmpty() {
		c.EmptyMessage = NoDataMessage
		return c, nil
	}

	counts, err := pipeline.CountBy(view, pipeline.FieldFurniture, []string{models.FurnitureYes, models.FurnitureNo})
	if err != nil {
		return Chart{}, err
	}
	colors := palette(len(counts))
	for i, cnt := range counts {
		c.Bars = append(c.Bars, Bar{Label: translate(furnitureLabels, cnt.Category), Value: float64(cnt.Count), Color: colors[i]})
	}
	return c, nil
}

func cityEncoding() Encoding {
	return Encoding{Field: "city", Title: titleCity, Type: Nominal}
}

func groupBars(groups []models.GroupValue) []Bar {
	colors := palette(len(groups))
	bars := make([]Bar, len(groups))
	for i, g := range groups {
		bars[i] = Bar{Label: g.Key, Value: g.Value, Color: colors[i]}
	}
	return bars
}

// cityColors assigns palette colors to the view's cities in name order, the same
// order the grouped charts use.
func cityColors(view pipeline.View) map[string]string {
	seen := make(map[string]bool)
	var cities []string
	for i := 0; i < view.Len(); i++ {
		city := view.At(i).City
		if !seen[city] {
			seen[city] = true
			cities = append(cities, city)
		}
	}
	sort.Strings(cities)

	colors := palette(len(cities))
	byCity := make(map[string]string, len(cities))
	for i, city := range cities {
		byCity[city] = colors[i]
	}
	return byCity
}

func scaleColor(scale *ColorScale, label string) string {
	for i, d := range scale.Domain {
		if strings.EqualFold(d, label) && i < len(scale.Range) {
			return scale.Range[i]
		}
	}
	return defaultColors[0]
}

// Category palette for nominal color channels.
var defaultColors = []string{
	"#4c78a8", "#f58518", "#e45756", "#72b7b2", "#54a24b",
	"#eeca3b", "#b279a2", "#ff9da6", "#9d755d", "#bab0ac",
}

func palette(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

func ptr[T any](v T) *T {
	return &v
}
