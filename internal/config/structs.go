package config

import (
	"github.com/profilemanager/profilemanager/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Profile   Profile
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Host           string // listening address, defaults to loopback
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
}

// Profile holds the settings of the stored profile record.
type Profile struct {
	// RecordID is the id of the single profile row the application works on.
	RecordID uint64
	// ImageDir is the app-private directory profile pictures are written to.
	ImageDir string
}
