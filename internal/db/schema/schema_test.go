package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilemanager/profilemanager/internal/db/controller/setting"
	"github.com/profilemanager/profilemanager/internal/db/dbtest"
	"github.com/profilemanager/profilemanager/internal/db/models"
	"github.com/profilemanager/profilemanager/internal/db/schema"
)

func TestMigrateFresh(t *testing.T) {
	db := dbtest.New(t)

	assert.True(t, db.Migrator().HasTable(models.ProfileTableName))

	v, err := schema.StoredVersion(db)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, v)
}

func TestMigrateSameVersionKeepsRows(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.Profile{ID: 1, Username: "kept"}).Error)
	require.NoError(t, schema.Migrate(db))

	var p models.Profile
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, "kept", p.Username)
}

func TestMigrateVersionChangeRecreatesTable(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.Profile{ID: 1, Username: "old"}).Error)

	_, err := setting.Set(db, schema.VersionSetting, []byte("3"))
	require.NoError(t, err)

	require.NoError(t, schema.Migrate(db))

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.Zero(t, count, "profile table should have been dropped and recreated")

	v, err := schema.StoredVersion(db)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, v)
}

func TestStoredVersionInvalid(t *testing.T) {
	db := dbtest.New(t)

	_, err := setting.Set(db, schema.VersionSetting, []byte("four"))
	require.NoError(t, err)

	_, err = schema.StoredVersion(db)
	require.Error(t, err)
}

func TestMigrateNilDB(t *testing.T) {
	require.ErrorIs(t, schema.Migrate(nil), setting.ErrDBNil)
}
