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

// Package adapter defines the capability contract that every backend
// (REST service, static files, vendor feeds) must satisfy, and the registry
// that routes a namespace to its adapter.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/monikerhq/moniker"
	"github.com/monikerhq/moniker/config"
)

// Document is an adapter-native payload: a decoded JSON object or an
// equivalent map assembled by a local adapter. The dispatch engine normalizes
// Documents into typed results; callers never see them.
type Document = map[string]interface{}

// Conventional Document keys recognized by the dispatch engine's
// normalization. Adapters are free to add keys beyond these.
const (
	KeyColumns     = "columns"
	KeyData        = "data"
	KeyRowCount    = "row_count"
	KeyTruncated   = "truncated"
	KeyDisplayName = "display_name"
	KeyDescription = "description"
	KeySchema      = "schema"
	KeyProfile     = "profile"
	KeyPath        = "path"
	KeyTeam        = "team"
	KeyApp         = "app"
)

// Capability is the contract implemented by every adapter. Each method
// receives the parsed address with its temporal qualifier unchanged and the
// effective client configuration. Adapters signal recognized conditions with
// *NotFoundError and *UnsupportedError returned directly (not wrapped), and
// return transport or backend failures as-is; classification is the dispatch
// engine's job. An adapter that cannot service a requested temporal mode must
// return *UnsupportedError rather than substitute data from another mode.
type Capability interface {
	// SourceType names the backend kind, e.g. "rest" or "static".
	SourceType() string

	// Read returns the data at the address.
	Read(ctx context.Context, addr moniker.Address, cfg *config.Config) (Document, error)

	// Describe returns metadata for the address. It must work for
	// namespace-level addresses (empty selector).
	Describe(ctx context.Context, addr moniker.Address, cfg *config.Config) (Document, error)

	// ListChildren lists child segments one level below the address. A leaf
	// yields an empty list, not an error.
	ListChildren(ctx context.Context, addr moniker.Address, cfg *config.Config) ([]string, error)

	// Lineage returns the ownership chain, most specific owner first.
	Lineage(ctx context.Context, addr moniker.Address, cfg *config.Config) ([]Document, error)
}

// NotFoundError reports a valid route with no data at the requested address
// and temporal point. It is a negative result, not a system fault.
type NotFoundError struct {
	Moniker string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no data at moniker '%s'", e.Moniker)
}

// UnsupportedError reports an operation or temporal mode the adapter does not
// implement.
type UnsupportedError struct {
	Source string // adapter source type
	Op     string // e.g. "lineage", "read@latest"
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s adapter does not support %s", e.Source, e.Op)
}

// UnknownNamespaceError reports that no registration matches a namespace and
// no fallback adapter is registered.
type UnknownNamespaceError struct {
	Namespace []string
}

// Error implements the error interface.
func (e *UnknownNamespaceError) Error() string {
	return fmt.Sprintf("no adapter registered for namespace '%s'",
		strings.Join(e.Namespace, "."))
}
