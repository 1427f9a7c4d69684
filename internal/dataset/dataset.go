package dataset

import "rentdash/internal/models"

// Dataset is the loaded rental table. It is never mutated after construction.
type Dataset struct {
	source  string
	records []models.PropertyRecord
}

// New copies records into an immutable dataset.
func New(source string, records []models.PropertyRecord) *Dataset {
	cp := make([]models.PropertyRecord, len(records))
	copy(cp, records)
	return &Dataset{source: source, records: cp}
}

// Source is the path the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the i-th record by value.
func (d *Dataset) At(i int) models.PropertyRecord {
	return d.records[i]
}

// Records returns a copy of every record in file order.
func (d *Dataset) Records() []models.PropertyRecord {
	cp := make([]models.PropertyRecord, len(d.records))
	copy(cp, d.records)
	return cp
}

// Cities lists the city column in file order, duplicates included.
func (d *Dataset) Cities() []string {
	cities := make([]string, len(d.records))
	for i, r := range d.records {
		cities[i] = r.City
	}
	return cities
}
