// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/profilemanager/profilemanager/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(dbCfg *config.DB) string {
	switch dbCfg.Engine {
	case config.EngineMySQL:
		return mysql(dbCfg)
	case config.EnginePostgres:
		return postgres(dbCfg)
	default:
		return sqlite(dbCfg)
	}
}

// sqlite returns the file path, with extras appended as query parameters.
func sqlite(dbCfg *config.DB) string {
	if dbCfg.Extras == "" {
		return dbCfg.Path
	}

	return dbCfg.Path + "?" + dbCfg.Extras
}

func mysql(dbCfg *config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
		dbCfg.Extras,
	)
}

func postgres(dbCfg *config.DB) string {
	parts := []string{
		"host=" + dbCfg.Host,
		fmt.Sprintf("port=%d", dbCfg.Port),
		"user=" + dbCfg.User,
		"password=" + dbCfg.Password,
		"dbname=" + dbCfg.Name,
	}

	if dbCfg.Extras != "" {
		parts = append(parts, dbCfg.Extras)
	}

	return strings.Join(parts, " ")
}
