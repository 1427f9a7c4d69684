package dataset

import (
	"errors"
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentdash/internal/models"
)

// propertyRow is the SQLite layout of a PropertyRecord. Position keeps file order.
type propertyRow struct {
	ID            uint   `gorm:"primaryKey"`
	Position      int    `gorm:"index"`
	City          string `gorm:"index;not null"`
	Area          float64
	Rooms         int
	Bathroom      *int
	ParkingSpaces *int
	Floor         string
	Animal        string
	Furniture     string
	HOA           *float64 `gorm:"column:hoa"`
	RentAmount    float64
	PropertyTax   float64
	FireInsurance *float64
	Total         float64
}

func (propertyRow) TableName() string {
	return "properties"
}

func openSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func closeSQLite(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// LoadSQLite reads a snapshot written by WriteSnapshot.
func LoadSQLite(path string) (*Dataset, error) {
	// sqlite would silently create an empty database for a missing file
	if _, err := os.Stat(path); err != nil {
		return nil, loadError(path, "cannot open file", err)
	}

	db, err := openSQLite(path)
	if err != nil {
		return nil, loadError(path, "cannot open database", err)
	}
	defer closeSQLite(db)

	if !db.Migrator().HasTable(&propertyRow{}) {
		return nil, loadError(path, "schema mismatch", fmt.Errorf("%w: table %q", ErrMissingColumn, "properties"))
	}

	var rows []propertyRow
	if err := db.Order("position").Find(&rows).Error; err != nil {
		return nil, loadError(path, "cannot read properties", fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	records := make([]models.PropertyRecord, len(rows))
	for i, r := range rows {
		records[i] = models.PropertyRecord{
			City:          r.City,
			Area:          r.Area,
			Rooms:         r.Rooms,
			Bathroom:      r.Bathroom,
			ParkingSpaces: r.ParkingSpaces,
			Floor:         r.Floor,
			Animal:        r.Animal,
			Furniture:     r.Furniture,
			HOA:           r.HOA,
			Rent:          r.RentAmount,
			PropertyTax:   r.PropertyTax,
			FireInsurance: r.FireInsurance,
			Total:         r.Total,
		}
	}
	return New(path, records), nil
}

// WriteSnapshot stores ds in a SQLite file, replacing any previous snapshot rows.
func WriteSnapshot(path string, ds *Dataset) error {
	if ds == nil {
		return errors.New("no dataset to write")
	}

	db, err := openSQLite(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer closeSQLite(db)

	if err := db.AutoMigrate(&propertyRow{}); err != nil {
		return fmt.Errorf("failed to migrate snapshot: %w", err)
	}

	rows := make([]propertyRow, ds.Len())
	for i := range rows {
		r := ds.At(i)
		rows[i] = propertyRow{
			Position:      i,
			City:          r.City,
			Area:          r.Area,
			Rooms:         r.Rooms,
			Bathroom:      r.Bathroom,
			ParkingSpaces: r.ParkingSpaces,
			Floor:         r.Floor,
			Animal:        r.Animal,
			Furniture:     r.Furniture,
			HOA:           r.HOA,
			RentAmount:    r.Rent,
			PropertyTax:   r.PropertyTax,
			FireInsurance: r.FireInsurance,
			Total:         r.Total,
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&propertyRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("failed to insert properties: %w", err)
		}
		return nil
	})
}
