package models

import "strings"

// Animal and furniture values as they appear in the source table.
const (
	AnimalAccept       = "acept"
	AnimalNotAccept    = "not acept"
	FurnitureYes       = "furnished"
	FurnitureNo        = "not furnished"
	AllCitiesSentinel  = "all"
	AllCitiesSelection = "Todas"
)

// PropertyRecord is one row of the rental table. Optional columns are nil when the
// source file does not carry them.
type PropertyRecord struct {
	City          string   `json:"city"`
	Area          float64  `json:"area"`
	Rooms         int      `json:"rooms"`
	Bathroom      *int     `json:"bathroom,omitempty"`
	ParkingSpaces *int     `json:"parking_spaces,omitempty"`
	Floor         string   `json:"floor,omitempty"`
	Animal        string   `json:"animal"`
	Furniture     string   `json:"furniture"`
	HOA           *float64 `json:"hoa,omitempty"`
	Rent          float64  `json:"rent_amount"`
	PropertyTax   float64  `json:"property_tax"`
	FireInsurance *float64 `json:"fire_insurance,omitempty"`
	Total         float64  `json:"total"`
}

// AcceptsAnimals reports whether the listing allows pets.
func (p PropertyRecord) AcceptsAnimals() bool {
	return p.Animal == AnimalAccept
}

// FilterCriterion selects a single city. The zero value passes every record through.
type FilterCriterion struct {
	City string `json:"city"`
}

// NewFilterCriterion turns a raw selection into a criterion. Empty input, "all" and the
// selector label "Todas" all mean no filtering.
func NewFilterCriterion(selection string) FilterCriterion {
	s := strings.TrimSpace(selection)
	if s == "" || strings.EqualFold(s, AllCitiesSentinel) || strings.EqualFold(s, AllCitiesSelection) {
		return FilterCriterion{}
	}
	return FilterCriterion{City: s}
}

// IsAll reports whether the criterion is the pass-through sentinel.
func (f FilterCriterion) IsAll() bool {
	return f.City == ""
}

// Label is the value shown in the city selector for this criterion.
func (f FilterCriterion) Label() string {
	if f.IsAll() {
		return AllCitiesSelection
	}
	return f.City
}

type SummaryStats struct {
	AverageRent      float64 `json:"average_rent"`
	AverageTotalCost float64 `json:"average_total_cost"`
	RentPerArea      float64 `json:"rent_per_area"`
	PercentAccepting float64 `json:"percent_accepting_animals"`
	Count            int     `json:"count"`
}

// GroupValue is one entry of a grouped mean, e.g. city -> mean rent.
type GroupValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// CategoryCount is one entry of a value count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryShare is a category count expressed as a percentage of the view.
type CategoryShare struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// BoxStats is the five-number summary of one group, with whiskers clipped to 1.5 IQR.
type BoxStats struct {
	Key          string    `json:"key"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}
