// Copyright 2026 Moniker Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config builds the effective client configuration by merging
// explicit arguments, MONIKER_* environment variables and config files in a
// fixed precedence order. The merge itself is a pure function over
// already-materialized partial configurations; file and environment reading
// live in collaborators (see files.go).
package config

import "fmt"

// Environment variable names consumed by EnvPartial.
const (
	EnvServiceURL = "MONIKER_SERVICE_URL"
	EnvAppID      = "MONIKER_APP_ID"
	EnvTeam       = "MONIKER_TEAM"
	EnvStaticDir  = "MONIKER_STATIC_DIR"
)

// Partial is one layer of configuration. An empty string means the field is
// unset in this layer.
type Partial struct {
	ServiceURL string `yaml:"service_url"`
	AppID      string `yaml:"app_id"`
	Team       string `yaml:"team"`
	StaticDir  string `yaml:"static_dir"`
}

// fill copies into p every field of layer that p has not set yet.
func (p *Partial) fill(layer Partial) {
	if p.ServiceURL == "" {
		p.ServiceURL = layer.ServiceURL
	}
	if p.AppID == "" {
		p.AppID = layer.AppID
	}
	if p.Team == "" {
		p.Team = layer.Team
	}
	if p.StaticDir == "" {
		p.StaticDir = layer.StaticDir
	}
}

// Config is the effective, immutable configuration of a client instance.
type Config struct {
	serviceURL string
	appID      string
	team       string
	staticDir  string
}

// ServiceURL is the base URL of the moniker service. Always non-empty.
func (c *Config) ServiceURL() string { return c.serviceURL }

// AppID is the optional application identity forwarded to adapters for audit
// and lineage. Empty when unset.
func (c *Config) AppID() string { return c.appID }

// Team is the optional owning-team identity. Empty when unset.
func (c *Config) Team() string { return c.team }

// StaticDir is the optional root directory of the static-file adapter. Empty
// when the adapter is not configured.
func (c *Config) StaticDir() string { return c.staticDir }

// ConfigError indicates that no usable configuration could be assembled.
type ConfigError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid client configuration: %s", e.Reason)
}

// Resolve merges the three configuration sources into the effective
// configuration. Precedence, highest first: explicit arguments, environment
// variables, then files in the given order; each layer only fills fields left
// unset by higher layers. It fails with *ConfigError when service_url is
// absent from every source. app_id and team may remain unset.
func Resolve(explicit Partial, env map[string]string, files []Partial) (*Config, error) {
	merged := explicit
	merged.fill(Partial{
		ServiceURL: env[EnvServiceURL],
		AppID:      env[EnvAppID],
		Team:       env[EnvTeam],
		StaticDir:  env[EnvStaticDir],
	})
	for _, f := range files {
		merged.fill(f)
	}
	if merged.ServiceURL == "" {
		return nil, &ConfigError{Reason: fmt.Sprintf(
			"service_url is not set; configure it explicitly, via %s, or in a config file",
			EnvServiceURL)}
	}
	return &Config{
		serviceURL: merged.ServiceURL,
		appID:      merged.AppID,
		team:       merged.Team,
		staticDir:  merged.StaticDir,
	}, nil
}
