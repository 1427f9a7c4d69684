package presentation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdash/internal/dataset"
	"rentdash/internal/models"
	"rentdash/internal/pipeline"
)

func record(city string, rent, area float64, rooms int, animal, furniture string) models.PropertyRecord {
	return models.PropertyRecord{
		City:        city,
		Area:        area,
		Rooms:       rooms,
		Animal:      animal,
		Furniture:   furniture,
		Rent:        rent,
		PropertyTax: rent / 10,
		Total:       rent + rent/10,
	}
}

func testDataset() *dataset.Dataset {
	return dataset.New("test", []models.PropertyRecord{
		record("B", 1000, 50, 1, models.AnimalAccept, models.FurnitureYes),
		record("A", 500, 20, 1, models.AnimalNotAccept, models.FurnitureNo),
		record("B", 2000, 100, 2, models.AnimalAccept, models.FurnitureNo),
		record("B", 3000, 150, 3, models.AnimalNotAccept, models.FurnitureNo),
	})
}

func viewFor(city string) pipeline.View {
	return pipeline.Filter(testDataset(), models.NewFilterCriterion(city))
}

func TestCharts_PageOrder(t *testing.T) {
	charts, err := Charts(viewFor("Todas"))
	require.NoError(t, err)

	ids := make([]string, len(charts))
	for i, c := range charts {
		ids[i] = c.ID
	}
	assert.Equal(t, ChartIDs(), ids)
}

func TestBuildChart_Unknown(t *testing.T) {
	_, err := BuildChart(viewFor("Todas"), "pie")
	assert.True(t, errors.Is(err, ErrUnknownChart))
}

func TestRentByCity(t *testing.T) {
	c, err := RentByCity(viewFor("Todas"))
	require.NoError(t, err)

	require.Len(t, c.Bars, 2)
	assert.Equal(t, "A", c.Bars[0].Label)
	assert.InDelta(t, 500, c.Bars[0].Value, 1e-9)
	assert.Equal(t, "B", c.Bars[1].Label)
	assert.InDelta(t, 2000, c.Bars[1].Value, 1e-9)
	assert.NotEqual(t, c.Bars[0].Color, c.Bars[1].Color)
	assert.Equal(t, MarkBar, c.Mark)
	assert.Equal(t, "Cidade", c.X.Title)
}

func TestRoomsCount(t *testing.T) {
	c, err := RoomsCount(viewFor("Todas"))
	require.NoError(t, err)

	labels := make([]string, len(c.Bars))
	values := make([]float64, len(c.Bars))
	for i, b := range c.Bars {
		labels[i] = b.Label
		values[i] = b.Value
	}
	assert.Equal(t, []string{"1", "2", "3"}, labels)
	assert.Equal(t, []float64{2, 1, 1}, values)
}

func TestTotalByCity_Domain(t *testing.T) {
	c, err := TotalByCity(viewFor("Todas"))
	require.NoError(t, err)

	require.Len(t, c.Boxes, 2)
	require.NotNil(t, c.YDomain)
	assert.InDelta(t, 550, c.YDomain.Min, 1e-9)
	assert.InDelta(t, 3300, c.YDomain.Max, 1e-9)
}

func TestAreaVsRent(t *testing.T) {
	c, err := AreaVsRent(viewFor("B"))
	require.NoError(t, err)

	require.Len(t, c.Points, 3)
	assert.Equal(t, Point{X: 50, Y: 1000, Size: 1, Group: "B", Color: defaultColors[0]}, c.Points[0])
	require.NotNil(t, c.XDomain)
	assert.Equal(t, Extent{Min: 50, Max: 150}, *c.XDomain)
	assert.Equal(t, Extent{Min: 1000, Max: 3000}, *c.YDomain)
	assert.True(t, c.Interactive)
	assert.Equal(t, []float64{50, 200}, c.SizeRange)
}

func TestAnimalPolicy(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		expected []Bar
	}{
		{
			name: "All cities",
			city: "Todas",
			expected: []Bar{
				{Label: "Aceita Animais", Value: 50, Color: "#4caf50"},
				{Label: "Não Aceita Animais", Value: 50, Color: "#f44336"},
			},
		},
		{
			name: "Single city",
			city: "A",
			expected: []Bar{
				{Label: "Aceita Animais", Value: 0, Color: "#4caf50"},
				{Label: "Não Aceita Animais", Value: 100, Color: "#f44336"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := AnimalPolicy(viewFor(tt.city))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.Bars)
			assert.Empty(t, c.EmptyMessage)
		})
	}
}

func TestAnimalPolicy_IgnoresUnlistedValues(t *testing.T) {
	view := pipeline.NewView(models.FilterCriterion{}, []models.PropertyRecord{
		record("A", 100, 10, 1, models.AnimalAccept, models.FurnitureNo),
		record("A", 100, 10, 1, "ACEPT", models.FurnitureNo),
	})

	c, err := AnimalPolicy(view)
	require.NoError(t, err)
	assert.Equal(t, []Bar{
		{Label: "Aceita Animais", Value: 100, Color: "#4caf50"},
		{Label: "Não Aceita Animais", Value: 0, Color: "#f44336"},
	}, c.Bars)
}

func TestFurniture_ZeroFilled(t *testing.T) {
	c, err := Furniture(viewFor("A"))
	require.NoError(t, err)

	require.Len(t, c.Bars, 2)
	assert.Equal(t, "Mobiliado", c.Bars[0].Label)
	assert.Equal(t, 0.0, c.Bars[0].Value)
	assert.Equal(t, "Não Mobiliado", c.Bars[1].Label)
	assert.Equal(t, 1.0, c.Bars[1].Value)
}

func TestCharts_EmptyView(t *testing.T) {
	charts, err := Charts(viewFor("Nowhere"))
	require.NoError(t, err)

	withMessage := map[string]bool{
		ChartAnimalPolicy: true,
		ChartTaxByCity:    true,
		ChartFurniture:    true,
	}
	for _, c := range charts {
		assert.True(t, c.IsEmpty(), c.ID)
		if withMessage[c.ID] {
			assert.Equal(t, NoDataMessage, c.EmptyMessage, c.ID)
		} else {
			assert.Empty(t, c.EmptyMessage, c.ID)
		}
	}
}

func TestTaxByCity(t *testing.T) {
	c, err := TaxByCity(viewFor("Todas"))
	require.NoError(t, err)

	require.Len(t, c.Bars, 2)
	assert.InDelta(t, 50, c.Bars[0].Value, 1e-9)
	assert.InDelta(t, 200, c.Bars[1].Value, 1e-9)
}
