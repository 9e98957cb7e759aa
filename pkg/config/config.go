// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the FTP connection settings and the loaders that
// populate them from a config file, the environment, and command-line flags
// (in increasing precedence).
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix is the prefix for environment overrides (FTPRC_HOST, ...).
const EnvPrefix = "ftprc"

// Connection describes how to reach and authenticate against the server.
type Connection struct {
	Host           string `json:"host" yaml:"host" hcl:"host,optional"`
	Port           int    `json:"port" yaml:"port" hcl:"port,optional"`
	Username       string `json:"username" yaml:"username" hcl:"username,optional"`
	Password       string `json:"password" yaml:"password" hcl:"password,optional"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" hcl:"timeout_seconds,optional" envconfig:"TIMEOUT_SECONDS"`
	ExplicitTLS    bool   `json:"explicit_tls" yaml:"explicit_tls" hcl:"explicit_tls,optional" envconfig:"EXPLICIT_TLS"`
}

// Default returns a Connection with the standard FTP port and the
// connection-level socket timeout used for every blocking protocol call.
func Default() Connection {
	return Connection{
		Port:           21,
		TimeoutSeconds: 3600,
	}
}

// Timeout returns the socket timeout as a duration.
func (c Connection) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that the connection is dialable.
func (c Connection) Validate() error {
	if c.Host == "" {
		return errors.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port %d is out of range", c.Port)
	}
	return nil
}

// ApplyEnv overlays FTPRC_* environment variables onto c. Variables that are
// not set leave the existing values alone.
func ApplyEnv(c *Connection) error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return errors.Errorf("reading environment overrides: %w", err)
	}
	return nil
}
