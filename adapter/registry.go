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

package adapter

import (
	"strings"

	"github.com/stockparfait/errors"
)

type registration struct {
	prefix     []string
	capability Capability
}

// Registry maps namespace prefixes to adapter capabilities. Registrations
// happen during client construction; after that the registry is read-only and
// safe for concurrent lookups.
//
// Matching rule: the longest dot-segment prefix wins. Among registrations
// with equally specific prefixes the first registered wins; this tie-break is
// part of the contract, callers may rely on it.
type Registry struct {
	entries  []registration
	fallback Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register binds a namespace prefix to a capability. The prefix must have at
// least one segment; use RegisterFallback for the catch-all entry.
func (r *Registry) Register(prefix []string, c Capability) error {
	if len(prefix) == 0 {
		return errors.Reason("empty prefix; use RegisterFallback for a catch-all adapter")
	}
	for _, seg := range prefix {
		if seg == "" {
			return errors.Reason("empty segment in prefix '%s'", strings.Join(prefix, "."))
		}
	}
	r.entries = append(r.entries, registration{
		prefix:     append([]string{}, prefix...),
		capability: c,
	})
	return nil
}

// RegisterFallback sets the adapter used when no prefix matches. Only the
// first registered fallback takes effect.
func (r *Registry) RegisterFallback(c Capability) {
	if r.fallback == nil {
		r.fallback = c
	}
}

// Resolve picks the capability for a namespace, or fails with
// *UnknownNamespaceError when nothing matches and no fallback is registered.
func (r *Registry) Resolve(namespace []string) (Capability, error) {
	best := -1
	bestLen := 0
	for i, e := range r.entries {
		if !isSegmentPrefix(e.prefix, namespace) {
			continue
		}
		// Strictly longer only, so the first registered wins ties.
		if best < 0 || len(e.prefix) > bestLen {
			best = i
			bestLen = len(e.prefix)
		}
	}
	if best >= 0 {
		return r.entries[best].capability, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, &UnknownNamespaceError{Namespace: append([]string{}, namespace...)}
}

// SourceTypes lists the source types of all registered adapters, fallback
// last. For diagnostics.
func (r *Registry) SourceTypes() []string {
	var types []string
	seen := make(map[string]bool)
	for _, e := range r.entries {
		if t := e.capability.SourceType(); !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	if r.fallback != nil && !seen[r.fallback.SourceType()] {
		types = append(types, r.fallback.SourceType())
	}
	return types
}

// isSegmentPrefix tests that prefix matches the leading segments of
// namespace. This is segment-wise, not string-wise: ["prices"] matches
// ["prices","equity"] but not ["prices-x"].
func isSegmentPrefix(prefix, namespace []string) bool {
	if len(prefix) > len(namespace) {
		return false
	}
	for i, seg := range prefix {
		if namespace[i] != seg {
			return false
		}
	}
	return true
}
