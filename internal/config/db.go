package config

// Supported values for DB.Engine.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // sqlite (default), mysql or postgres
	Path     string // database file, sqlite only
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
