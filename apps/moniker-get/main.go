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

// Command moniker-get resolves a moniker and prints its data, metadata,
// children, ownership chain or subtree.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/monikerhq/moniker/client"
	"github.com/monikerhq/moniker/config"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
)

type Flags struct {
	Moniker    string // positional, required
	ServiceURL string
	AppID      string
	Team       string
	StaticDir  string
	LogLevel   logging.Level
	// At most one of describe, children, lineage or tree; default: read data.
	Describe bool
	Children bool
	Lineage  bool
	Tree     bool
	Depth    int // subtree depth for -tree; 0 = unlimited
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("moniker-get", flag.ExitOnError)
	fs.StringVar(&flags.ServiceURL, "service-url", "",
		"moniker service base URL; overrides environment and config files")
	fs.StringVar(&flags.AppID, "app-id", "", "calling application identity")
	fs.StringVar(&flags.Team, "team", "", "calling team identity")
	fs.StringVar(&flags.StaticDir, "static-dir", "",
		"root directory of the static file adapter")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.Describe, "describe", false, "print metadata instead of data")
	fs.BoolVar(&flags.Children, "children", false, "list child segments, one per line")
	fs.BoolVar(&flags.Lineage, "lineage", false, "print the ownership chain")
	fs.BoolVar(&flags.Tree, "tree", false, "print the subtree below the moniker")
	fs.IntVar(&flags.Depth, "depth", 0, "subtree depth for -tree; 0 = unlimited")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.Reason("expected exactly one moniker argument, got %d", fs.NArg())
	}
	flags.Moniker = fs.Arg(0)
	modes := 0
	for _, m := range []bool{flags.Describe, flags.Children, flags.Lineage, flags.Tree} {
		if m {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.Reason(
			"expected at most one of -describe, -children, -lineage or -tree")
	}
	return &flags, nil
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func printData(w io.Writer, data *client.Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(data.Columns); err != nil {
		return errors.Annotate(err, "failed to print header")
	}
	record := make([]string, len(data.Columns))
	for _, row := range data.Rows {
		for i, c := range data.Columns {
			record[i] = formatCell(row[c])
		}
		if err := cw.Write(record); err != nil {
			return errors.Annotate(err, "failed to print row")
		}
	}
	cw.Flush()
	return cw.Error()
}

func printMetadata(w io.Writer, meta *client.Metadata) {
	fmt.Fprintf(w, "moniker: %s\n", meta.Moniker)
	fmt.Fprintf(w, "source: %s\n", meta.SourceType)
	if meta.DisplayName != "" {
		fmt.Fprintf(w, "display_name: %s\n", meta.DisplayName)
	}
	if meta.Description != "" {
		fmt.Fprintf(w, "description: %s\n", meta.Description)
	}
	if meta.RowCount > 0 {
		fmt.Fprintf(w, "row_count: %d\n", meta.RowCount)
	}
	for _, col := range meta.Schema {
		fmt.Fprintf(w, "column: %s %s\n", col.Name, col.Type)
	}
	profiled := make([]string, 0, len(meta.Profile))
	for name := range meta.Profile {
		profiled = append(profiled, name)
	}
	sort.Strings(profiled)
	for _, name := range profiled {
		s := meta.Profile[name]
		fmt.Fprintf(w, "profile: %s count=%d mean=%g stddev=%g\n",
			name, s.Count, s.Mean, s.StdDev)
	}
	attrs := make([]string, 0, len(meta.Attrs))
	for k := range meta.Attrs {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)
	for _, k := range attrs {
		if v := formatCell(meta.Attrs[k]); v != "" {
			fmt.Fprintf(w, "%s: %s\n", k, v)
		}
	}
}

func run(ctx context.Context, flags *Flags, w io.Writer) error {
	cfg, err := config.Load(config.Partial{
		ServiceURL: flags.ServiceURL,
		AppID:      flags.AppID,
		Team:       flags.Team,
		StaticDir:  flags.StaticDir,
	})
	if err != nil {
		return errors.Annotate(err, "failed to resolve configuration")
	}
	c, err := client.New(ctx, cfg)
	if err != nil {
		return errors.Annotate(err, "failed to create client")
	}

	switch {
	case flags.Describe:
		meta, err := c.Describe(ctx, flags.Moniker)
		if err != nil {
			return errors.Annotate(err, "failed to describe '%s'", flags.Moniker)
		}
		printMetadata(w, meta)
	case flags.Children:
		children, err := c.ListChildren(ctx, flags.Moniker)
		if err != nil {
			return errors.Annotate(err, "failed to list children of '%s'", flags.Moniker)
		}
		for _, name := range children {
			fmt.Fprintln(w, name)
		}
	case flags.Lineage:
		owners, err := c.Lineage(ctx, flags.Moniker)
		if err != nil {
			return errors.Annotate(err, "failed to trace lineage of '%s'", flags.Moniker)
		}
		for _, o := range owners {
			fmt.Fprintf(w, "%s\t%s\t%s\n", o.Path, o.Team, o.App)
		}
	case flags.Tree:
		tree, err := c.Tree(ctx, flags.Moniker, flags.Depth)
		if err != nil {
			return errors.Annotate(err, "failed to walk subtree of '%s'", flags.Moniker)
		}
		fmt.Fprintln(w, tree.Print())
	default:
		data, err := c.Read(ctx, flags.Moniker)
		if err != nil {
			return errors.Annotate(err, "failed to read '%s'", flags.Moniker)
		}
		if err := printData(w, data); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := run(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
