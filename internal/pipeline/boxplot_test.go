package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdash/internal/models"
)

func TestBox(t *testing.T) {
	tests := []struct {
		name     string
		sample   []float64
		expected models.BoxStats
	}{
		{
			name:   "Single value",
			sample: []float64{42},
			expected: models.BoxStats{
				Key: "k", Count: 1, Min: 42, Q1: 42, Median: 42, Q3: 42, Max: 42,
				LowerWhisker: 42, UpperWhisker: 42, Outliers: []float64{},
			},
		},
		{
			name:   "Interpolated quartiles",
			sample: []float64{4, 1, 3, 2},
			expected: models.BoxStats{
				Key: "k", Count: 4, Min: 1, Q1: 1.75, Median: 2.5, Q3: 3.25, Max: 4,
				LowerWhisker: 1, UpperWhisker: 4, Outliers: []float64{},
			},
		},
		{
			name:   "Outlier beyond upper whisker",
			sample: []float64{1, 2, 3, 4, 5, 100},
			expected: models.BoxStats{
				Key: "k", Count: 6, Min: 1, Q1: 2.25, Median: 3.5, Q3: 4.75, Max: 100,
				LowerWhisker: 1, UpperWhisker: 5, Outliers: []float64{100},
			},
		},
		{
			name:     "Empty sample",
			sample:   nil,
			expected: models.BoxStats{Key: "k", Outliers: []float64{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := Box("k", tt.sample)
			assert.Equal(t, tt.expected.Count, box.Count)
			assert.InDelta(t, tt.expected.Min, box.Min, 1e-9)
			assert.InDelta(t, tt.expected.Q1, box.Q1, 1e-9)
			assert.InDelta(t, tt.expected.Median, box.Median, 1e-9)
			assert.InDelta(t, tt.expected.Q3, box.Q3, 1e-9)
			assert.InDelta(t, tt.expected.Max, box.Max, 1e-9)
			assert.InDelta(t, tt.expected.LowerWhisker, box.LowerWhisker, 1e-9)
			assert.InDelta(t, tt.expected.UpperWhisker, box.UpperWhisker, 1e-9)
			assert.Equal(t, tt.expected.Outliers, box.Outliers)
		})
	}
}

func TestBox_DoesNotReorderInput(t *testing.T) {
	sample := []float64{3, 1, 2}
	Box("k", sample)
	assert.Equal(t, []float64{3, 1, 2}, sample)
}

func TestBoxByCity(t *testing.T) {
	view := Filter(exampleDataset(), models.FilterCriterion{})

	boxes, err := BoxByCity(view, FieldTotal)
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	assert.Equal(t, "A", boxes[0].Key)
	assert.Equal(t, 3, boxes[0].Count)
	assert.InDelta(t, 2200.0, boxes[0].Median, 1e-9)
	assert.Equal(t, "B", boxes[1].Key)
	assert.InDelta(t, 550.0, boxes[1].Median, 1e-9)
}
