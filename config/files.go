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

package config

import (
	"os"
	"path/filepath"

	"github.com/stockparfait/errors"

	yaml "gopkg.in/yaml.v3"
)

// SearchPaths returns the config file locations in precedence order: the
// project-level .moniker.yaml in the current directory, then the user-level
// ~/.moniker/client.yaml.
func SearchPaths() []string {
	return []string{
		".moniker.yaml",
		filepath.Join(os.Getenv("HOME"), ".moniker", "client.yaml"),
	}
}

// LoadFile reads a single YAML config file into a Partial.
func LoadFile(path string) (Partial, error) {
	var p Partial
	data, err := os.ReadFile(path)
	if err != nil {
		return p, errors.Annotate(err, "failed to read config file '%s'", path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Annotate(err, "failed to parse config file '%s'", path)
	}
	return p, nil
}

// FilePartials loads every config file present on the search paths, in
// precedence order. Missing files are skipped; a present but unreadable or
// malformed file is an error.
func FilePartials() ([]Partial, error) {
	var partials []Partial
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Annotate(err, "cannot check config file '%s'", path)
		}
		p, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		partials = append(partials, p)
	}
	return partials, nil
}

// EnvPartial collects the MONIKER_* environment variables into a layer
// suitable for Resolve.
func EnvPartial() map[string]string {
	env := make(map[string]string)
	for _, key := range []string{EnvServiceURL, EnvAppID, EnvTeam, EnvStaticDir} {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}
	return env
}

// Load assembles the effective configuration from explicit arguments, the
// process environment and the config file search paths.
func Load(explicit Partial) (*Config, error) {
	files, err := FilePartials()
	if err != nil {
		return nil, errors.Annotate(err, "failed to load config files")
	}
	return Resolve(explicit, EnvPartial(), files)
}
