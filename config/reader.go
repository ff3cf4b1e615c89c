package config

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/contour3d/logging"
)

// Read reads a config from the given file. Environment variables referenced as $VAR or
// ${VAR} are substituted before decoding.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	cfg := Default()
	cfg.ConfigFilePath = originalPath
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := processConfig(cfg, logger); err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	return cfg, nil
}

// processConfig resolves paths relative to the config file and validates the result.
func processConfig(cfg *Config, logger logging.Logger) error {
	if err := cfg.Ensure(); err != nil {
		return err
	}
	if cfg.ConfigFilePath == "" {
		return nil
	}

	base := filepath.Dir(cfg.ConfigFilePath)
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	if cfg.Capture != nil {
		cfg.Capture.PointsFile = resolve(cfg.Capture.PointsFile)
		cfg.Capture.TextureFile = resolve(cfg.Capture.TextureFile)
	}
	cfg.Output.Dir = resolve(cfg.Output.Dir)
	logger.Debugw("read config", "path", cfg.ConfigFilePath, "output", cfg.Output.Dir)
	return nil
}
