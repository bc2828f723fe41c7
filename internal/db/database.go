// Package db opens the profile database for the configured engine.
package db

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/profilemanager/profilemanager/internal/config"
	"github.com/profilemanager/profilemanager/internal/db/dsn"
	gormadapter "github.com/profilemanager/profilemanager/internal/logger/adapter/gorm"
)

// Dialector returns the gorm dialector for the configured engine.
func Dialector(dbCfg *config.DB) (gorm.Dialector, error) {
	switch dbCfg.Engine {
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.Create(dbCfg)), nil
	case config.EngineMySQL:
		return gormmysql.Open(dsn.Create(dbCfg)), nil
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Create(dbCfg)), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownDBEngine, dbCfg.Engine)
	}
}

// Open connects to the configured database. For sqlite the parent
// directory of the database file is created first.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DB.Engine == config.EngineSQLite || cfg.DB.Engine == "" {
		if dir := filepath.Dir(cfg.DB.Path); dir != "" && cfg.DB.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0o750); err != nil { //nolint: mnd
				return nil, errors.Wrap(err, "failed to create database directory")
			}
		}
	}

	dialector, err := Dialector(&cfg.DB)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormadapter.New(cfg.Log.SQLLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	return db, nil
}
