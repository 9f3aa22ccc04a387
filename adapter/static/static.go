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

// Package static is the built-in adapter for file-tree data sets. Namespace
// segments map to directories under the configured root, selectors map to CSV
// files: AAPL.csv holds the current series and AAPL@20260115.csv holds a
// point-in-time snapshot. Each directory may carry a meta.toml sidecar with
// display name, description and ownership.
//
// The adapter is optional: it registers only when a data directory is
// configured and present. A missing or empty directory never fails registry
// construction; unclaimed namespaces simply resolve elsewhere.
package static

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/monikerhq/moniker"
	"github.com/monikerhq/moniker/adapter"
	"github.com/monikerhq/moniker/config"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"

	toml "github.com/pelletier/go-toml/v2"
)

// SourceType identifies this adapter kind in results and diagnostics.
const SourceType = "static"

const (
	seriesExt = ".csv"
	metaFile  = "meta.toml"
)

// Adapter serves moniker data from a local directory tree.
type Adapter struct {
	root string
}

var _ adapter.Capability = &Adapter{}

// New creates a static adapter rooted at dir. It fails when dir does not
// exist or is not a directory, so that optional registration can skip it.
func New(dir string) (*Adapter, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Annotate(err, "cannot open static data directory '%s'", dir)
	}
	if !info.IsDir() {
		return nil, errors.Reason("static data path '%s' is not a directory", dir)
	}
	return &Adapter{root: dir}, nil
}

// SourceType implements adapter.Capability.
func (a *Adapter) SourceType() string { return SourceType }

// Namespaces returns the top-level namespace prefixes available under the
// root, for registration.
func (a *Adapter) Namespaces() ([]string, error) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		return nil, errors.Annotate(err, "failed to list static root '%s'", a.root)
	}
	var namespaces []string
	for _, e := range entries {
		if e.IsDir() {
			namespaces = append(namespaces, e.Name())
		}
	}
	slices.Sort(namespaces)
	return namespaces, nil
}

// dirFor maps the namespace plus any selector sub-path prefix to a directory.
// The final selector segment, if present, names a series file and is returned
// separately.
func (a *Adapter) dirFor(addr moniker.Address) (dir, series string) {
	segments := append([]string{}, addr.Namespace...)
	if addr.Selector != "" {
		sel := strings.Split(addr.Selector, "/")
		segments = append(segments, sel[:len(sel)-1]...)
		series = sel[len(sel)-1]
	}
	return filepath.Join(a.root, filepath.Join(segments...)), series
}

// seriesFile picks the CSV file for a series under dir honoring the temporal
// qualifier. It never substitutes one temporal mode for another: a missing
// snapshot is a not-found, not a fallback to the current file.
func (a *Adapter) seriesFile(ctx context.Context, dir, series string, addr moniker.Address) (string, error) {
	switch addr.Temporal.Kind {
	case moniker.Today:
		path := filepath.Join(dir, series+seriesExt)
		if _, err := os.Stat(path); err != nil {
			return "", &adapter.NotFoundError{Moniker: addr.String()}
		}
		return path, nil
	case moniker.PointInTime:
		path := filepath.Join(dir, series+"@"+addr.Temporal.Date.String()+seriesExt)
		if _, err := os.Stat(path); err != nil {
			return "", &adapter.NotFoundError{Moniker: addr.String()}
		}
		return path, nil
	case moniker.Latest:
		snapshots, err := filepath.Glob(filepath.Join(dir, series+"@*"+seriesExt))
		if err != nil || len(snapshots) == 0 {
			return "", &adapter.NotFoundError{Moniker: addr.String()}
		}
		slices.Sort(snapshots)
		latest := snapshots[len(snapshots)-1]
		logging.Debugf(ctx, "static adapter: picked snapshot %s for '%s'", latest, addr)
		return latest, nil
	}
	return "", &adapter.UnsupportedError{Source: SourceType, Op: "temporal " + addr.Temporal.Kind.String()}
}

// readCSV loads one series file. The header row names the columns; cell
// values that parse as numbers become float64.
func readCSV(path string) ([]string, []map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Annotate(err, "failed to open series file '%s'", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, errors.Annotate(err, "failed to read header of '%s'", path)
	}
	rows := []map[string]interface{}{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Annotate(err, "failed to read row %d of '%s'", len(rows)+2, path)
		}
		row := make(map[string]interface{})
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				row[header[i]] = v
			} else {
				row[header[i]] = cell
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// listBases returns the series names available in dir, snapshots collapsed to
// their base name, sorted.
func listBases(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, seriesExt) {
			continue
		}
		base := strings.TrimSuffix(name, seriesExt)
		if at := strings.IndexByte(base, '@'); at >= 0 {
			base = base[:at]
		}
		seen[base] = true
	}
	bases := make([]string, 0, len(seen))
	for b := range seen {
		bases = append(bases, b)
	}
	slices.Sort(bases)
	return bases, nil
}

// Read implements adapter.Capability. An empty selector or the ALL wildcard
// reads every series in the namespace, adding a "symbol" column.
func (a *Adapter) Read(ctx context.Context, addr moniker.Address, cfg *config.Config) (adapter.Document, error) {
	dir, series := a.dirFor(addr)
	if series == "" || series == moniker.WildcardSelector {
		return a.readAll(ctx, dir, addr)
	}
	path, err := a.seriesFile(ctx, dir, series, addr)
	if err != nil {
		return nil, err
	}
	columns, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	return adapter.Document{
		adapter.KeyPath:     addr.Path(),
		adapter.KeyColumns:  columns,
		adapter.KeyData:     rows,
		adapter.KeyRowCount: len(rows),
	}, nil
}

func (a *Adapter) readAll(ctx context.Context, dir string, addr moniker.Address) (adapter.Document, error) {
	bases, err := listBases(dir)
	if err != nil {
		return nil, &adapter.NotFoundError{Moniker: addr.String()}
	}
	columns := []string{"symbol"}
	all := []map[string]interface{}{}
	for _, base := range bases {
		path, err := a.seriesFile(ctx, dir, base, addr)
		if err != nil {
			// A series without the requested snapshot is skipped, not an error:
			// the wildcard asks for whatever exists at that temporal point.
			continue
		}
		cols, rows, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		for _, c := range cols {
			if !slices.Contains(columns, c) {
				columns = append(columns, c)
			}
		}
		for _, row := range rows {
			row["symbol"] = base
			all = append(all, row)
		}
	}
	if len(all) == 0 {
		// Either the namespace holds no series at all, or none of them has
		// data at the requested temporal point.
		return nil, &adapter.NotFoundError{Moniker: addr.String()}
	}
	return adapter.Document{
		adapter.KeyPath:     addr.Path(),
		adapter.KeyColumns:  columns,
		adapter.KeyData:     all,
		adapter.KeyRowCount: len(all),
	}, nil
}

// meta is the schema of the meta.toml sidecar.
type meta struct {
	DisplayName string `toml:"display_name"`
	Description string `toml:"description"`
	Team        string `toml:"team"`
	App         string `toml:"app"`
}

// readMeta loads the sidecar of dir; ok is false when there is none.
func readMeta(dir string) (meta, bool, error) {
	var m meta
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, false, nil
		}
		return m, false, errors.Annotate(err, "failed to read '%s'", filepath.Join(dir, metaFile))
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, false, errors.Annotate(err, "failed to parse '%s'", filepath.Join(dir, metaFile))
	}
	return m, true, nil
}

// Describe implements adapter.Capability. For a series address it includes
// the column schema and a numeric profile of the current data; for a
// namespace address it reports the sidecar metadata and child count.
func (a *Adapter) Describe(ctx context.Context, addr moniker.Address, cfg *config.Config) (adapter.Document, error) {
	dir, series := a.dirFor(addr)
	if _, err := os.Stat(dir); err != nil {
		return nil, &adapter.NotFoundError{Moniker: addr.String()}
	}
	m, _, err := readMeta(dir)
	if err != nil {
		return nil, err
	}
	doc := adapter.Document{
		adapter.KeyPath:        addr.Path(),
		adapter.KeyDisplayName: m.DisplayName,
		adapter.KeyDescription: m.Description,
		adapter.KeyTeam:        m.Team,
		adapter.KeyApp:         m.App,
	}
	if series == "" || series == moniker.WildcardSelector {
		bases, err := listBases(dir)
		if err != nil {
			return nil, errors.Annotate(err, "failed to list '%s'", dir)
		}
		doc["series_count"] = len(bases)
		return doc, nil
	}
	path, err := a.seriesFile(ctx, dir, series, addr)
	if err != nil {
		return nil, err
	}
	columns, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	doc[adapter.KeySchema] = columnSchema(columns, rows)
	doc[adapter.KeyProfile] = profile(columns, rows)
	doc[adapter.KeyRowCount] = len(rows)
	return doc, nil
}

// columnSchema infers a coarse name/type schema from the loaded rows.
func columnSchema(columns []string, rows []map[string]interface{}) []map[string]interface{} {
	schema := []map[string]interface{}{}
	for _, c := range columns {
		tp := "string"
		if len(rows) > 0 {
			if _, ok := rows[0][c].(float64); ok {
				tp = "number"
			}
		}
		schema = append(schema, map[string]interface{}{"name": c, "type": tp})
	}
	return schema
}

// profile computes count/mean/stddev per numeric column.
func profile(columns []string, rows []map[string]interface{}) map[string]interface{} {
	p := map[string]interface{}{}
	for _, c := range columns {
		values := []float64{}
		for _, row := range rows {
			if v, ok := row[c].(float64); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		p[c] = map[string]interface{}{
			"count":  len(values),
			"mean":   stat.Mean(values, nil),
			"stddev": stat.StdDev(values, nil),
		}
	}
	return p
}

// ListChildren implements adapter.Capability. Children of a namespace are its
// subdirectories and series bases; a series address is a leaf.
func (a *Adapter) ListChildren(ctx context.Context, addr moniker.Address, cfg *config.Config) ([]string, error) {
	dir, series := a.dirFor(addr)
	if series != "" {
		// A series file is a leaf; a selector naming a subdirectory lists it.
		sub := filepath.Join(dir, series)
		if info, err := os.Stat(sub); err == nil && info.IsDir() {
			dir, series = sub, ""
		} else {
			return []string{}, nil
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &adapter.NotFoundError{Moniker: addr.String()}
	}
	children := []string{}
	for _, e := range entries {
		if e.IsDir() {
			children = append(children, e.Name())
		}
	}
	bases, err := listBases(dir)
	if err != nil {
		return nil, errors.Annotate(err, "failed to list '%s'", dir)
	}
	children = append(children, bases...)
	slices.Sort(children)
	return children, nil
}

// Lineage implements adapter.Capability. It walks the namespace directories
// from most specific to least specific, collecting owners from the sidecars.
func (a *Adapter) Lineage(ctx context.Context, addr moniker.Address, cfg *config.Config) ([]adapter.Document, error) {
	if _, err := os.Stat(filepath.Join(a.root, filepath.Join(addr.Namespace...))); err != nil {
		return nil, &adapter.NotFoundError{Moniker: addr.String()}
	}
	owners := []adapter.Document{}
	for i := len(addr.Namespace); i > 0; i-- {
		dir := filepath.Join(a.root, filepath.Join(addr.Namespace[:i]...))
		m, ok, err := readMeta(dir)
		if err != nil {
			return nil, err
		}
		if !ok || (m.Team == "" && m.App == "") {
			continue
		}
		owners = append(owners, adapter.Document{
			adapter.KeyPath: strings.Join(addr.Namespace[:i], "."),
			adapter.KeyTeam: m.Team,
			adapter.KeyApp:  m.App,
		})
	}
	return owners, nil
}
