package config

import (
	"regexp"
	"strings"

	"rentdash/internal/models"
)

// CityLister is implemented by anything that can list the cities of a dataset
type CityLister interface {
	Cities() []string
}

// GetCityNames returns the options of the city selector: the "Todas" sentinel
// followed by every distinct city in first-seen order
func GetCityNames(src CityLister) []string {
	names := []string{models.AllCitiesSelection}
	seen := make(map[string]bool)
	for _, city := range src.Cities() {
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true
		names = append(names, city)
	}
	return names
}

var nonSlug = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// NormalizeCity converts a city name to a URL and file friendly slug
func NormalizeCity(name string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}
