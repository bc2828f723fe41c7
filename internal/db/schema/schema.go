// Package schema keeps the profile table in line with the schema version of the binary.
// There is no column-level migration: a version change drops and recreates the table.
package schema

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/profilemanager/profilemanager/internal/db/controller/setting"
	"github.com/profilemanager/profilemanager/internal/db/models"
)

const (
	// Version is the schema version of the profile table.
	Version = 4

	// VersionSetting is the settings row holding the stored schema version.
	VersionSetting = "schema_version"
)

// StoredVersion returns the schema version recorded in the database, 0 if none.
func StoredVersion(db *gorm.DB) (int, error) {
	s, err := setting.Get(db, VersionSetting)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	v, err := strconv.Atoi(string(s.Value))
	if err != nil {
		return 0, fmt.Errorf("invalid schema version %q: %w", s.Value, err)
	}

	return v, nil
}

// Migrate creates the tables. When the stored version differs from
// Version the profile table is dropped first.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return setting.ErrDBNil
	}

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return fmt.Errorf("failed to migrate settings table: %w", err)
	}

	stored, err := StoredVersion(db)
	if err != nil {
		return err
	}

	if stored != Version {
		if db.Migrator().HasTable(&models.Profile{}) {
			log.Warn().
				Int("stored_version", stored).
				Int("version", Version).
				Msg("schema version changed, recreating profile table")
		}

		if err = db.Migrator().DropTable(&models.Profile{}); err != nil {
			return fmt.Errorf("failed to drop profile table: %w", err)
		}
	}

	if err = db.AutoMigrate(&models.Profile{}); err != nil {
		return fmt.Errorf("failed to migrate profile table: %w", err)
	}

	if stored != Version {
		if _, err = setting.Set(db, VersionSetting, []byte(strconv.Itoa(Version))); err != nil {
			return fmt.Errorf("failed to store schema version: %w", err)
		}
	}

	return nil
}
