package pipeline

import (
	"rentdash/internal/dataset"
	"rentdash/internal/models"
)

// View is the subset of a Dataset selected by a FilterCriterion, in dataset order.
type View struct {
	criterion models.FilterCriterion
	records   []models.PropertyRecord
}

// NewView builds a view straight from records, mostly for tests and callers that
// already hold a filtered slice.
func NewView(criterion models.FilterCriterion, records []models.PropertyRecord) View {
	cp := make([]models.PropertyRecord, len(records))
	copy(cp, records)
	return View{criterion: criterion, records: cp}
}

// Filter keeps the records whose city equals the criterion, or every record when
// the criterion is the pass-through sentinel.
func Filter(ds *dataset.Dataset, criterion models.FilterCriterion) View {
	if ds == nil {
		return View{criterion: criterion}
	}

	n := ds.Len()
	if criterion.IsAll() {
		return View{criterion: criterion, records: ds.Records()}
	}

	records := make([]models.PropertyRecord, 0, n)
	for i := 0; i < n; i++ {
		r := ds.At(i)
		if r.City == criterion.City {
			records = append(records, r)
		}
	}
	return View{criterion: criterion, records: records}
}

func (v View) Criterion() models.FilterCriterion {
	return v.criterion
}

func (v View) Len() int {
	return len(v.records)
}

func (v View) IsEmpty() bool {
	return len(v.records) == 0
}

func (v View) At(i int) models.PropertyRecord {
	return v.records[i]
}

// Records returns a copy of the view's records.
func (v View) Records() []models.PropertyRecord {
	cp := make([]models.PropertyRecord, len(v.records))
	copy(cp, v.records)
	return cp
}

// Slice returns records [offset, offset+limit) clamped to the view. A limit <= 0
// means everything after offset.
func (v View) Slice(offset, limit int) []models.PropertyRecord {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(v.records) {
		return []models.PropertyRecord{}
	}
	end := len(v.records)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	cp := make([]models.PropertyRecord, end-offset)
	copy(cp, v.records[offset:end])
	return cp
}
