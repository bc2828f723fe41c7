// Package profile provides the store operations for the profile record:
// fetch by id, upsert by id and delete all.
package profile

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/profilemanager/profilemanager/internal/db/models"
)

const (
	idQueryPattern = "id = ?"
)

var (
	// ErrProfileNotFound is returned when no row exists for the requested id.
	// It is a normal outcome, callers treat it as "no data yet".
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// FetchByID retrieves the profile record stored under id.
func FetchByID(db *gorm.DB, id uint64) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Profile

	result := db.Where(idQueryPattern, id).Limit(1).Find(&p)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch profile %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}

	return &p, nil
}

// Upsert overwrites the four fields of the row stored under id, or inserts
// a new row with that id when none exists. The existence check and the write
// run in one transaction. It reports whether a row was written.
func Upsert(db *gorm.DB, id uint64, username, email, password, imagePath string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var affected int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Profile{}).Where(idQueryPattern, id).Count(&existing).Error; err != nil {
			return err
		}

		if existing > 0 {
			result := tx.Model(&models.Profile{}).Where(idQueryPattern, id).Updates(map[string]interface{}{
				"username": username,
				"email":    email,
				"password": password,
				"image":    imagePath,
			})
			affected = result.RowsAffected

			return result.Error
		}

		result := tx.Create(&models.Profile{
			ID:        id,
			Username:  username,
			Email:     email,
			Password:  password,
			ImagePath: imagePath,
		})
		affected = result.RowsAffected

		return result.Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert profile %d: %w", id, err)
	}

	return affected > 0, nil
}

// DeleteAll removes every profile row and returns how many were deleted.
func DeleteAll(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Profile{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete profiles: %w", result.Error)
	}

	return result.RowsAffected, nil
}
