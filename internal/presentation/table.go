package presentation

import (
	"rentdash/internal/dataset"
	"rentdash/internal/models"
	"rentdash/internal/pipeline"
)

// Table is one page of the raw data grid.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Total   int      `json:"total"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
}

// BuildTable projects records [offset, offset+limit) of the view onto the source
// column headers. limit <= 0 returns every row after offset.
func BuildTable(view pipeline.View, offset, limit int) Table {
	if offset < 0 {
		offset = 0
	}
	records := view.Slice(offset, limit)

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = row(r)
	}

	return Table{
		Columns: dataset.Columns,
		Rows:    rows,
		Total:   view.Len(),
		Offset:  offset,
		Limit:   limit,
	}
}

// row follows the order of dataset.Columns. Missing optional values are nil.
func row(r models.PropertyRecord) []any {
	return []any{
		r.City,
		r.Area,
		r.Rooms,
		intOrNil(r.Bathroom),
		intOrNil(r.ParkingSpaces),
		r.Floor,
		r.Animal,
		r.Furniture,
		floatOrNil(r.HOA),
		r.Rent,
		r.PropertyTax,
		floatOrNil(r.FireInsurance),
		r.Total,
	}
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
