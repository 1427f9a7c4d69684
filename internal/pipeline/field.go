package pipeline

import (
	"errors"
	"fmt"
	"strconv"

	"rentdash/internal/models"
)

var ErrUnknownField = errors.New("unknown field")

// Field names a column of the rental table. Values match the JSON names of
// PropertyRecord so API callers can pass them straight through.
type Field string

const (
	FieldCity          Field = "city"
	FieldArea          Field = "area"
	FieldRooms         Field = "rooms"
	FieldBathroom      Field = "bathroom"
	FieldParkingSpaces Field = "parking_spaces"
	FieldFloor         Field = "floor"
	FieldAnimal        Field = "animal"
	FieldFurniture     Field = "furniture"
	FieldHOA           Field = "hoa"
	FieldRent          Field = "rent_amount"
	FieldTax           Field = "property_tax"
	FieldFireInsurance Field = "fire_insurance"
	FieldTotal         Field = "total"
)

// numeric returns the field's value for r. ok is false when an optional column is
// missing for this record.
func (f Field) numeric(r models.PropertyRecord) (v float64, ok bool, err error) {
	switch f {
	case FieldArea:
		return r.Area, true, nil
	case FieldRooms:
		return float64(r.Rooms), true, nil
	case FieldRent:
		return r.Rent, true, nil
	case FieldTax:
		return r.PropertyTax, true, nil
	case FieldTotal:
		return r.Total, true, nil
	case FieldHOA:
		return optionalFloat(r.HOA)
	case FieldFireInsurance:
		return optionalFloat(r.FireInsurance)
	case FieldBathroom:
		return optionalInt(r.Bathroom)
	case FieldParkingSpaces:
		return optionalInt(r.ParkingSpaces)
	}
	return 0, false, fmt.Errorf("%w: %q is not numeric", ErrUnknownField, string(f))
}

// category returns the field's value for r as a category label.
func (f Field) category(r models.PropertyRecord) (string, error) {
	switch f {
	case FieldCity:
		return r.City, nil
	case FieldAnimal:
		return r.Animal, nil
	case FieldFurniture:
		return r.Furniture, nil
	case FieldFloor:
		return r.Floor, nil
	case FieldRooms:
		return strconv.Itoa(r.Rooms), nil
	case FieldBathroom:
		return optionalLabel(r.Bathroom), nil
	case FieldParkingSpaces:
		return optionalLabel(r.ParkingSpaces), nil
	}
	return "", fmt.Errorf("%w: %q is not categorical", ErrUnknownField, string(f))
}

func optionalFloat(v *float64) (float64, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	return *v, true, nil
}

func optionalInt(v *int) (float64, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	return float64(*v), true, nil
}

func optionalLabel(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
