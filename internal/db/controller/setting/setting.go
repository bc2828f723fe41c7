// Package setting provides read and upsert operations for named settings.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/profilemanager/profilemanager/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to read or write a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var s models.Setting

	result := db.Where(nameQueryPattern, name).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &s, nil
}

// Set creates or updates a setting by name (upsert operation).
func Set(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var s models.Setting

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(nameQueryPattern, name).First(&s)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s = models.Setting{Name: name, Value: value}
			return tx.Create(&s).Error
		}

		if result.Error != nil {
			return result.Error
		}

		s.Value = value

		return tx.Save(&s).Error
	})
	if err != nil {
		return nil, err
	}

	return &s, nil
}
