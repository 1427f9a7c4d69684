package pipeline

import (
	"sort"
	"strconv"

	"rentdash/internal/models"
)

// Every aggregate here is total over any View, the empty one included.

// Mean is the arithmetic mean of field over the view. Records missing an optional
// column are skipped. An empty view yields 0.
func Mean(v View, field Field) (float64, error) {
	var sum float64
	var n int
	for _, r := range v.records {
		x, ok, err := field.numeric(r)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// RentPerArea is mean(rent) / mean(area), a ratio of means rather than the mean of
// per-listing rent/area. A non-positive mean area is replaced by 1.
func RentPerArea(v View) float64 {
	rent := mustMean(v, FieldRent)
	area := mustMean(v, FieldArea)
	if area <= 0 {
		area = 1
	}
	return rent / area
}

// PercentAccepting is the share of listings that accept animals, in percent.
func PercentAccepting(v View) float64 {
	if len(v.records) == 0 {
		return 0
	}
	accepting := 0
	for _, r := range v.records {
		if r.AcceptsAnimals() {
			accepting++
		}
	}
	return float64(accepting) / float64(len(v.records)) * 100
}

// Summarize computes the headline numbers of the dashboard.
func Summarize(v View) models.SummaryStats {
	return models.SummaryStats{
		AverageRent:      mustMean(v, FieldRent),
		AverageTotalCost: mustMean(v, FieldTotal),
		RentPerArea:      RentPerArea(v),
		PercentAccepting: PercentAccepting(v),
		Count:            v.Len(),
	}
}

// mustMean is Mean for the built-in required fields, which cannot fail.
func mustMean(v View, field Field) float64 {
	m, err := Mean(v, field)
	if err != nil {
		panic(err)
	}
	return m
}

// GroupMean is the mean of field per city, ordered by city name ascending.
func GroupMean(v View, field Field) ([]models.GroupValue, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range v.records {
		x, ok, err := field.numeric(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		sums[r.City] += x
		counts[r.City]++
	}

	cities := make([]string, 0, len(counts))
	for city := range counts {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	groups := make([]models.GroupValue, 0, len(cities))
	for _, city := range cities {
		groups = append(groups, models.GroupValue{
			Key:   city,
			Value: sums[city] / float64(counts[city]),
			Count: counts[city],
		})
	}
	return groups, nil
}

// CountBy counts records per value of a categorical field. With an expected list
// the result is exactly those categories, in the given order, with 0 for any absent
// from the view; values outside the list are dropped. With no expected list the
// observed categories are returned in ascending order.
func CountBy(v View, field Field, expected []string) ([]models.CategoryCount, error) {
	observed := make(map[string]int)
	for _, r := range v.records {
		c, err := field.category(r)
		if err != nil {
			return nil, err
		}
		observed[c]++
	}

	if len(expected) > 0 {
		counts := make([]models.CategoryCount, 0, len(expected))
		listed := make(map[string]bool, len(expected))
		for _, c := range expected {
			if listed[c] {
				continue
			}
			listed[c] = true
			counts = append(counts, models.CategoryCount{Category: c, Count: observed[c]})
		}
		return counts, nil
	}

	categories := make([]string, 0, len(observed))
	for c := range observed {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categoryLess(categories[i], categories[j]) })

	counts := make([]models.CategoryCount, len(categories))
	for i, c := range categories {
		counts[i] = models.CategoryCount{Category: c, Count: observed[c]}
	}
	return counts, nil
}

// categoryLess orders integer labels numerically and everything else lexically.
func categoryLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	}
	return a < b
}

// Percentages converts counts into shares of their total. A zero total yields 0 for
// every category.
func Percentages(counts []models.CategoryCount) []models.CategoryShare {
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	shares := make([]models.CategoryShare, len(counts))
	for i, c := range counts {
		shares[i] = models.CategoryShare{Category: c.Category, Count: c.Count}
		if total > 0 {
			shares[i].Percent = float64(c.Count) / float64(total) * 100
		}
	}
	return shares
}
