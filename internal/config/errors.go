package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if config db.engine is not one of sqlite, mysql or postgres.
	ErrUnknownDBEngine = errors.New("toml config db.engine is not supported")

	// ErrEmptyDBPath error if the sqlite engine is selected without db.path.
	ErrEmptyDBPath = errors.New("toml config db.path can not be empty for sqlite")

	// ErrEmptyDBHost error if a server engine is selected without db.host.
	ErrEmptyDBHost = errors.New("toml config db.host can not be empty")

	// ErrEmptyImageDir error if config profile.imagedir is empty.
	ErrEmptyImageDir = errors.New("toml config profile.imagedir can not be empty")
)
