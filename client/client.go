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

package client

import (
	"context"

	"github.com/monikerhq/moniker"
	"github.com/monikerhq/moniker/adapter"
	"github.com/monikerhq/moniker/adapter/rest"
	"github.com/monikerhq/moniker/adapter/static"
	"github.com/monikerhq/moniker/config"
	"github.com/stockparfait/logging"
)

// Row is a single normalized data record.
type Row = map[string]interface{}

// Data is the normalized result of a read.
type Data struct {
	Moniker    string
	SourceType string
	Columns    []string
	Rows       []Row
	RowCount   int
	Truncated  bool
}

// Column describes one field of a data series.
type Column struct {
	Name string
	Type string
}

// ColumnStats is the numeric profile of one column.
type ColumnStats struct {
	Count  int
	Mean   float64
	StdDev float64
}

// Metadata is the normalized result of a describe.
type Metadata struct {
	Moniker     string
	SourceType  string
	DisplayName string
	Description string
	Schema      []Column
	Profile     map[string]ColumnStats
	RowCount    int
	// Attrs keeps the remaining adapter-reported fields for callers that
	// want more than the typed surface.
	Attrs map[string]interface{}
}

// OwnershipRecord is one link of the ownership chain.
type OwnershipRecord struct {
	Path string
	Team string
	App  string
}

// Client resolves monikers and dispatches them to registered adapters. It is
// immutable after construction and safe for concurrent use.
type Client struct {
	cfg      *config.Config
	registry *adapter.Registry
}

// New creates a client with the built-in adapters: the REST adapter as the
// registry fallback, and the static adapter claiming its top-level
// namespaces when a static directory is configured. A configured but broken
// static directory is skipped with a warning rather than failing
// construction.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	registry := adapter.NewRegistry()
	if dir := cfg.StaticDir(); dir != "" {
		if err := registerStatic(registry, dir); err != nil {
			logging.Warningf(ctx, "skipping static adapter: %s", err.Error())
		}
	}
	registry.RegisterFallback(rest.New())
	return NewWithRegistry(cfg, registry), nil
}

// NewWithRegistry creates a client over a caller-built registry. The registry
// must not be mutated afterwards.
func NewWithRegistry(cfg *config.Config, registry *adapter.Registry) *Client {
	return &Client{cfg: cfg, registry: registry}
}

func registerStatic(registry *adapter.Registry, dir string) error {
	a, err := static.New(dir)
	if err != nil {
		return err
	}
	namespaces, err := a.Namespaces()
	if err != nil {
		return err
	}
	for _, ns := range namespaces {
		if err := registry.Register([]string{ns}, a); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the client's effective configuration.
func (c *Client) Config() *config.Config { return c.cfg }

// dispatch resolves the adapter for an address. Unknown namespaces surface
// as-is; they are a routing outcome, not an adapter failure.
func (c *Client) dispatch(ctx context.Context, addr moniker.Address) (adapter.Capability, error) {
	capability, err := c.registry.Resolve(addr.Namespace)
	if err != nil {
		return nil, err
	}
	logging.Debugf(ctx, "moniker '%s' routed to %s adapter", addr, capability.SourceType())
	return capability, nil
}

// classify wraps adapter failures as *AdapterError with the cause preserved,
// letting recognized negative signals (not found, unsupported) pass through
// untouched.
func classify(addr moniker.Address, capability adapter.Capability, err error) error {
	switch err.(type) {
	case *adapter.NotFoundError, *adapter.UnsupportedError:
		return err
	}
	return &AdapterError{
		Moniker: addr.String(),
		Source:  capability.SourceType(),
		Err:     err,
	}
}

// Read returns the data at a moniker. It fails with *moniker.ParseError,
// *adapter.UnknownNamespaceError, *adapter.NotFoundError or *AdapterError;
// it never returns nil data to mean "not found".
func (c *Client) Read(ctx context.Context, s string) (*Data, error) {
	addr, err := moniker.Parse(s)
	if err != nil {
		return nil, err
	}
	return c.ReadAddress(ctx, addr)
}

// ReadAddress is Read for a pre-parsed address. The temporal qualifier is
// passed to the adapter unchanged.
func (c *Client) ReadAddress(ctx context.Context, addr moniker.Address) (*Data, error) {
	capability, err := c.dispatch(ctx, addr)
	if err != nil {
		return nil, err
	}
	doc, err := capability.Read(ctx, addr, c.cfg)
	if err != nil {
		return nil, classify(addr, capability, err)
	}
	return normalizeData(addr, capability.SourceType(), doc), nil
}

// Describe returns metadata for a moniker; it works for namespace-level
// monikers with no selector.
func (c *Client) Describe(ctx context.Context, s string) (*Metadata, error) {
	addr, err := moniker.Parse(s)
	if err != nil {
		return nil, err
	}
	return c.DescribeAddress(ctx, addr)
}

// DescribeAddress is Describe for a pre-parsed address.
func (c *Client) DescribeAddress(ctx context.Context, addr moniker.Address) (*Metadata, error) {
	capability, err := c.dispatch(ctx, addr)
	if err != nil {
		return nil, err
	}
	doc, err := capability.Describe(ctx, addr, c.cfg)
	if err != nil {
		return nil, classify(addr, capability, err)
	}
	return normalizeMetadata(addr, capability.SourceType(), doc), nil
}

// ListChildren lists the child segments one level below a moniker. A leaf
// yields an empty list.
func (c *Client) ListChildren(ctx context.Context, s string) ([]string, error) {
	addr, err := moniker.Parse(s)
	if err != nil {
		return nil, err
	}
	return c.ListChildrenAddress(ctx, addr)
}

// ListChildrenAddress is ListChildren for a pre-parsed address.
func (c *Client) ListChildrenAddress(ctx context.Context, addr moniker.Address) ([]string, error) {
	capability, err := c.dispatch(ctx, addr)
	if err != nil {
		return nil, err
	}
	children, err := capability.ListChildren(ctx, addr, c.cfg)
	if err != nil {
		return nil, classify(addr, capability, err)
	}
	if children == nil {
		children = []string{}
	}
	return children, nil
}

// Lineage returns the ownership chain of a moniker, most specific owner
// first.
func (c *Client) Lineage(ctx context.Context, s string) ([]OwnershipRecord, error) {
	addr, err := moniker.Parse(s)
	if err != nil {
		return nil, err
	}
	return c.LineageAddress(ctx, addr)
}

// LineageAddress is Lineage for a pre-parsed address.
func (c *Client) LineageAddress(ctx context.Context, addr moniker.Address) ([]OwnershipRecord, error) {
	capability, err := c.dispatch(ctx, addr)
	if err != nil {
		return nil, err
	}
	docs, err := capability.Lineage(ctx, addr, c.cfg)
	if err != nil {
		return nil, classify(addr, capability, err)
	}
	records := make([]OwnershipRecord, len(docs))
	for i, doc := range docs {
		records[i] = OwnershipRecord{
			Path: docString(doc, adapter.KeyPath),
			Team: docString(doc, adapter.KeyTeam),
			App:  docString(doc, adapter.KeyApp),
		}
	}
	return records, nil
}

// normalizeData converts an adapter-native document into Data. This is the
// single normalization boundary; callers never see adapter-specific shapes.
func normalizeData(addr moniker.Address, sourceType string, doc adapter.Document) *Data {
	d := &Data{
		Moniker:    addr.String(),
		SourceType: sourceType,
		Columns:    docStrings(doc, adapter.KeyColumns),
		Rows:       docRows(doc, adapter.KeyData),
		Truncated:  docBool(doc, adapter.KeyTruncated),
	}
	d.RowCount = docInt(doc, adapter.KeyRowCount, len(d.Rows))
	return d
}

func normalizeMetadata(addr moniker.Address, sourceType string, doc adapter.Document) *Metadata {
	m := &Metadata{
		Moniker:     addr.String(),
		SourceType:  sourceType,
		DisplayName: docString(doc, adapter.KeyDisplayName),
		Description: docString(doc, adapter.KeyDescription),
		RowCount:    docInt(doc, adapter.KeyRowCount, 0),
		Attrs:       map[string]interface{}{},
	}
	for _, col := range docRows(doc, adapter.KeySchema) {
		m.Schema = append(m.Schema, Column{
			Name: docString(col, "name"),
			Type: docString(col, "type"),
		})
	}
	for name, v := range docRow(doc, adapter.KeyProfile) {
		stats, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		if m.Profile == nil {
			m.Profile = make(map[string]ColumnStats)
		}
		m.Profile[name] = ColumnStats{
			Count:  docInt(stats, "count", 0),
			Mean:   docFloat(stats, "mean"),
			StdDev: docFloat(stats, "stddev"),
		}
	}
	handled := map[string]bool{
		adapter.KeyDisplayName: true,
		adapter.KeyDescription: true,
		adapter.KeySchema:      true,
		adapter.KeyProfile:     true,
		adapter.KeyRowCount:    true,
	}
	for k, v := range doc {
		if !handled[k] {
			m.Attrs[k] = v
		}
	}
	return m
}

// Document field extraction. Adapters decode from JSON or assemble maps in
// Go, so numbers may arrive as float64 or int, and lists as []interface{} or
// typed slices.

func docString(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docBool(doc map[string]interface{}, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docInt(doc map[string]interface{}, key string, dflt int) int {
	switch v := doc[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return dflt
}

func docFloat(doc map[string]interface{}, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func docStrings(doc map[string]interface{}, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func docRow(doc map[string]interface{}, key string) map[string]interface{} {
	m, _ := doc[key].(map[string]interface{})
	return m
}

func docRows(doc map[string]interface{}, key string) []Row {
	switch v := doc[key].(type) {
	case []map[string]interface{}:
		out := make([]Row, len(v))
		for i, r := range v {
			out[i] = r
		}
		return out
	case []interface{}:
		out := []Row{}
		for _, e := range v {
			if r, ok := e.(map[string]interface{}); ok {
				out = append(out, r)
			}
		}
		return out
	}
	return nil
}
