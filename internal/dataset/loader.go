package dataset

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"rentdash/internal/models"
)

// Column headers of the rental table.
const (
	ColCity          = "city"
	ColArea          = "area"
	ColRooms         = "rooms"
	ColBathroom      = "bathroom"
	ColParkingSpaces = "parking spaces"
	ColFloor         = "floor"
	ColAnimal        = "animal"
	ColFurniture     = "furniture"
	ColHOA           = "hoa (R$)"
	ColRent          = "rent amount (R$)"
	ColPropertyTax   = "property tax (R$)"
	ColFireInsurance = "fire insurance (R$)"
	ColTotal         = "total (R$)"
)

// RequiredColumns must all be present for a file to load.
var RequiredColumns = []string{
	ColCity, ColArea, ColRooms, ColRent, ColTotal, ColAnimal, ColFurniture, ColPropertyTax,
}

// Columns is the full header in source order, optional columns included.
var Columns = []string{
	ColCity, ColArea, ColRooms, ColBathroom, ColParkingSpaces, ColFloor, ColAnimal,
	ColFurniture, ColHOA, ColRent, ColPropertyTax, ColFireInsurance, ColTotal,
}

// maxCount bounds the integer columns so a float cell always converts exactly.
const maxCount = math.MaxInt32

var columnTypes = map[string]series.Type{
	ColCity:          series.String,
	ColArea:          series.Float,
	ColRooms:         series.Float,
	ColBathroom:      series.Float,
	ColParkingSpaces: series.Float,
	ColFloor:         series.String,
	ColAnimal:        series.String,
	ColFurniture:     series.String,
	ColHOA:           series.Float,
	ColRent:          series.Float,
	ColPropertyTax:   series.Float,
	ColFireInsurance: series.Float,
	ColTotal:         series.Float,
}

// Open loads a dataset, picking the reader from the file extension.
func Open(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return LoadDataset(path)
	}
}

// LoadDataset reads a CSV file with a header row into a Dataset.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadError(path, "cannot open file", err)
	}
	defer f.Close()

	return ReadCSV(path, f)
}

// ReadCSV parses CSV content. name is only used in errors and as the dataset source.
// A header without rows loads as an empty dataset.
func ReadCSV(name string, r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, loadError(name, "cannot read table", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	if df.Err != nil {
		header, ok := headerOnly(data)
		if !ok {
			return nil, loadError(name, "cannot parse table", fmt.Errorf("%w: %v", ErrMalformed, df.Err))
		}
		if _, err := checkColumns(name, header); err != nil {
			return nil, err
		}
		return New(name, nil), nil
	}

	present, err := checkColumns(name, df.Names())
	if err != nil {
		return nil, err
	}

	t := table{df: df, present: present, name: name}
	cities := t.text(ColCity)
	areas, err := t.required(ColArea)
	if err != nil {
		return nil, err
	}
	rooms, err := t.required(ColRooms)
	if err != nil {
		return nil, err
	}
	rents, err := t.required(ColRent)
	if err != nil {
		return nil, err
	}
	taxes, err := t.required(ColPropertyTax)
	if err != nil {
		return nil, err
	}
	totals, err := t.required(ColTotal)
	if err != nil {
		return nil, err
	}
	animals := t.text(ColAnimal)
	furniture := t.text(ColFurniture)

	bathrooms := t.optional(ColBathroom)
	parking := t.optional(ColParkingSpaces)
	hoa := t.optional(ColHOA)
	fire := t.optional(ColFireInsurance)
	floors := t.text(ColFloor)

	records := make([]models.PropertyRecord, df.Nrow())
	for i := range records {
		if cities[i] == "" {
			return nil, loadError(name, fmt.Sprintf("row %d", i+1), fmt.Errorf("%w: empty %q", ErrMalformed, ColCity))
		}
		roomCount, err := countAt(name, ColRooms, rooms, i)
		if err != nil {
			return nil, err
		}
		if roomCount == nil {
			return nil, loadError(name, fmt.Sprintf("row %d", i+1), fmt.Errorf("%w: empty %q", ErrMalformed, ColRooms))
		}
		bathroom, err := countAt(name, ColBathroom, bathrooms, i)
		if err != nil {
			return nil, err
		}
		parkingSpaces, err := countAt(name, ColParkingSpaces, parking, i)
		if err != nil {
			return nil, err
		}

		rec := models.PropertyRecord{
			City:        cities[i],
			Area:        areas[i],
			Rooms:       *roomCount,
			Animal:      animals[i],
			Furniture:   furniture[i],
			Rent:        rents[i],
			PropertyTax: taxes[i],
			Total:       totals[i],
		}
		if floors != nil {
			rec.Floor = floors[i]
		}
		rec.Bathroom = bathroom
		rec.ParkingSpaces = parkingSpaces
		rec.HOA = floatAt(hoa, i)
		rec.FireInsurance = floatAt(fire, i)
		records[i] = rec
	}

	return New(name, records), nil
}

// headerOnly reports whether data is a lone header row and returns its cells.
func headerOnly(data []byte) ([]string, bool) {
	raw := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
	)
	if raw.Err != nil || raw.Nrow() != 1 {
		return nil, false
	}
	return raw.Records()[1], true
}

func checkColumns(name string, names []string) (map[string]bool, error) {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return nil, loadError(name, "schema mismatch", fmt.Errorf("%w: %q", ErrMissingColumn, col))
		}
	}
	return present, nil
}

// table wraps the dataframe column accessors used by ReadCSV.
type table struct {
	df      dataframe.DataFrame
	present map[string]bool
	name    string
}

func (t table) text(col string) []string {
	if !t.present[col] {
		return nil
	}
	values := t.df.Col(col).Records()
	for i, v := range values {
		// gota reads missing-value markers such as NA back as "NaN"
		if v == "NaN" {
			v = ""
		}
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// required returns a numeric column and rejects any unparsable cell.
func (t table) required(col string) ([]float64, error) {
	values := t.df.Col(col).Float()
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, loadError(t.name, fmt.Sprintf("row %d", i+1), fmt.Errorf("%w: %q is not numeric", ErrMalformed, col))
		}
	}
	return values, nil
}

// optional returns a numeric column or nil when the header is absent. Unparsable
// cells stay NaN and become nil fields.
func (t table) optional(col string) []float64 {
	if !t.present[col] {
		return nil
	}
	return t.df.Col(col).Float()
}

// countAt converts a non-negative whole count. Missing cells are nil.
func countAt(name, col string, values []float64, i int) (*int, error) {
	if values == nil || math.IsNaN(values[i]) {
		return nil, nil
	}
	v := values[i]
	if v != math.Trunc(v) || v < 0 || v > maxCount {
		return nil, loadError(name, fmt.Sprintf("row %d", i+1), fmt.Errorf("%w: %q is not a count: %v", ErrMalformed, col, v))
	}
	n := int(v)
	return &n, nil
}

func floatAt(values []float64, i int) *float64 {
	if values == nil || math.IsNaN(values[i]) {
		return nil
	}
	v := values[i]
	return &v
}
