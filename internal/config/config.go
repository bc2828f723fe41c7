// Package config handles input from etc/*.toml files
package config

import (
	"encoding/json"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/profilemanager/profilemanager/internal/db/models"
)

const (
	// EnvConfigJSON names the environment variable holding a JSON document
	// that is merged over the values read from main.toml.
	EnvConfigJSON = "PROFILEMANAGER_CONFIG_JSON"

	mainConfigName = "main"
	mainConfigType = "toml"

	defaultShutDownTime = 5
	defaultHost         = "127.0.0.1"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName(mainConfigName)
	v.SetConfigType(mainConfigType)
	v.AddConfigPath(path)

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out) + "\n", nil
}

// validate the settings the application can not start without and
// fill in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.Host == "" {
		c.Webserver.Host = defaultHost
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.DB.Engine == "" {
		c.DB.Engine = EngineSQLite
	}

	switch c.DB.Engine {
	case EngineSQLite:
		if c.DB.Path == "" {
			return errors.Wrap(ErrEmptyDBPath, invalidErrMessage)
		}
	case EngineMySQL, EnginePostgres:
		if c.DB.Host == "" {
			return errors.Wrap(ErrEmptyDBHost, invalidErrMessage)
		}
	default:
		return errors.Wrapf(ErrUnknownDBEngine, "%s: %q", invalidErrMessage, c.DB.Engine)
	}

	if c.Profile.RecordID == 0 {
		c.Profile.RecordID = models.DefaultProfileID
	}

	if c.Profile.ImageDir == "" {
		return errors.Wrap(ErrEmptyImageDir, invalidErrMessage)
	}

	return nil
}
