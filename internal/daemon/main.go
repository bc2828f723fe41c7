// Package daemon wires the database, the image store and the profile service
// together and runs the web service on top of them.
package daemon

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/profilemanager/profilemanager/internal/config"
	"github.com/profilemanager/profilemanager/internal/db"
	"github.com/profilemanager/profilemanager/internal/db/schema"
	"github.com/profilemanager/profilemanager/internal/imagestore"
	"github.com/profilemanager/profilemanager/internal/profile"
	"github.com/profilemanager/profilemanager/internal/web"
)

// ErrConfigNil is returned if no configuration was passed.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	profile    *profile.Service
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it was shut down.
func (d *Daemon) Start() error {
	addr := net.JoinHostPort(d.cfg.Webserver.Host, strconv.Itoa(d.cfg.Webserver.Port))

	log.Info().Str("addr", addr).Uint64("record", d.profile.RecordID()).Msg("starting web service")

	return d.webService.Start(addr)
}

// Profile returns the profile service the daemon serves.
func (d *Daemon) Profile() *profile.Service {
	return d.profile
}

// NewProfileService opens the configured database, brings the schema to the
// current version and returns a profile service bound to the configured record.
func NewProfileService(cfg *config.Config) (*profile.Service, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = schema.Migrate(conn); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	images, err := imagestore.New(cfg.Profile.ImageDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image store")
	}

	return profile.New(conn, images, cfg.Profile.RecordID), nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	svc, err := NewProfileService(cfg)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		profile:    svc,
		webService: web.New(cfg, svc),
	}, nil
}
