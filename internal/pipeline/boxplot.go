package pipeline

import (
	"math"
	"sort"

	"rentdash/internal/models"
)

// whiskerIQR is how far past the quartiles a whisker may reach, in IQRs.
const whiskerIQR = 1.5

// BoxByCity computes the five-number summary of field for each city, ordered by
// city name ascending.
func BoxByCity(v View, field Field) ([]models.BoxStats, error) {
	values := make(map[string][]float64)
	for _, r := range v.records {
		x, ok, err := field.numeric(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		values[r.City] = append(values[r.City], x)
	}

	cities := make([]string, 0, len(values))
	for city := range values {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	boxes := make([]models.BoxStats, 0, len(cities))
	for _, city := range cities {
		boxes = append(boxes, Box(city, values[city]))
	}
	return boxes, nil
}

// Box summarizes a sample. Quartiles use linear interpolation between order
// statistics. Whiskers end at the most extreme values within 1.5 IQR of the box;
// values beyond them are outliers.
func Box(key string, sample []float64) models.BoxStats {
	box := models.BoxStats{Key: key, Count: len(sample), Outliers: []float64{}}
	if len(sample) == 0 {
		return box
	}

	xs := make([]float64, len(sample))
	copy(xs, sample)
	sort.Float64s(xs)

	box.Min = xs[0]
	box.Max = xs[len(xs)-1]
	box.Q1 = quantile(xs, 0.25)
	box.Median = quantile(xs, 0.5)
	box.Q3 = quantile(xs, 0.75)

	iqr := box.Q3 - box.Q1
	lo := box.Q1 - whiskerIQR*iqr
	hi := box.Q3 + whiskerIQR*iqr

	box.LowerWhisker = box.Q1
	box.UpperWhisker = box.Q3
	for _, x := range xs {
		if x >= lo {
			box.LowerWhisker = math.Min(box.LowerWhisker, x)
			break
		}
	}
	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] <= hi {
			box.UpperWhisker = math.Max(box.UpperWhisker, xs[i])
			break
		}
	}
	for _, x := range xs {
		if x < lo || x > hi {
			box.Outliers = append(box.Outliers, x)
		}
	}
	return box
}

// quantile expects sorted input.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[i]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
