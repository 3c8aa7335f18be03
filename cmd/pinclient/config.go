// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-pinclient/pkg/pinclient"
	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
)

// fileConfig is the YAML layout accepted by --config. Flags given on the
// command line override the values read from the file.
type fileConfig struct {
	Pins                  []pinning.Pin                `mapstructure:"pins"`
	RequirePins           bool                         `mapstructure:"require_pins"`
	Insecure              bool                         `mapstructure:"insecure"`
	AllowUnknownAuthority bool                         `mapstructure:"allow_unknown_authority"`
	CAFile                string                       `mapstructure:"ca_file"`
	ThrowOnCaptiveNetwork bool                         `mapstructure:"throw_on_captive_network"`
	DisableCaching        bool                         `mapstructure:"disable_caching"`
	Timeout               time.Duration                `mapstructure:"timeout"`
	Proxy                 *pinclient.Proxy             `mapstructure:"proxy"`
	ClientCertificate     *pinclient.ClientCertificate `mapstructure:"client_certificate"`
	HeaderSeparators      map[string]string            `mapstructure:"header_separators"`
	DANE                  daneConfig                   `mapstructure:"dane"`
}

type daneConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DNSServer string `mapstructure:"dns_server"`
}

// loadConfig reads path with viper. An empty path yields the zero config.
func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrConfigFile, path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrConfigFile, path, err)
	}

	// viper lowercases map keys.
	if len(cfg.HeaderSeparators) > 0 {
		separators := make(map[string]string, len(cfg.HeaderSeparators))
		for name, sep := range cfg.HeaderSeparators {
			separators[http.CanonicalHeaderKey(name)] = sep
		}
		cfg.HeaderSeparators = separators
	}

	return cfg, nil
}
