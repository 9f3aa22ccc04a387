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

// Package rest is the built-in adapter for the moniker HTTP service. It is
// normally registered as the registry fallback, claiming every namespace not
// claimed by a more specific adapter. Retries, TLS and timeouts belong to the
// transport layer (stockparfait/fetch); this adapter only shapes requests and
// classifies service responses.
//
// Wire protocol: GET {service_url}/{op}/{path} where op is one of read,
// describe, list, lineage. The temporal qualifier travels as query
// parameters: asof=YYYYMMDD for point-in-time, temporal=latest for latest,
// nothing for today. The service reports recognized negative outcomes inside
// a 200 response as {"error": "not_found", "detail": "..."}.
package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/monikerhq/moniker"
	"github.com/monikerhq/moniker/adapter"
	"github.com/monikerhq/moniker/config"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

// Error codes the service may set in the "error" field of a response.
const (
	codeNotFound    = "not_found"
	codeUnsupported = "unsupported"
)

// SourceType identifies this adapter kind in results and diagnostics.
const SourceType = "rest"

// Adapter fetches moniker data from the moniker service over HTTP.
type Adapter struct{}

var _ adapter.Capability = &Adapter{}

// New creates the REST adapter.
func New() *Adapter {
	return &Adapter{}
}

// SourceType implements adapter.Capability.
func (a *Adapter) SourceType() string { return SourceType }

func endpoint(cfg *config.Config, op string, addr moniker.Address) string {
	return strings.TrimSuffix(cfg.ServiceURL(), "/") + "/" + op + "/" + addr.Path()
}

// temporalQuery encodes the temporal qualifier; the dispatch engine passes it
// through unchanged and so does this adapter.
func temporalQuery(t moniker.Temporal) url.Values {
	v := make(url.Values)
	switch t.Kind {
	case moniker.PointInTime:
		v["asof"] = []string{t.Date.String()}
	case moniker.Latest:
		v["temporal"] = []string{"latest"}
	}
	return v
}

func headers(cfg *config.Config) http.Header {
	h := make(http.Header)
	if cfg.AppID() != "" {
		h.Set("X-App-ID", cfg.AppID())
	}
	if cfg.Team() != "" {
		h.Set("X-Team", cfg.Team())
	}
	h.Set("X-Request-ID", uuid.NewString())
	return h
}

// headerTransport sets fixed headers on every request before handing it to
// the underlying transport.
type headerTransport struct {
	base   http.RoundTripper
	header http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, vs := range t.header {
		for _, v := range vs {
			r.Header.Set(k, v)
		}
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}

// useHeaders wraps the context's HTTP client so that every request carries
// the attribution headers. The context's transport, TLS and timeout settings
// are preserved.
func useHeaders(ctx context.Context, h http.Header) context.Context {
	base := fetch.GetClient(ctx)
	c := *base
	c.Transport = &headerTransport{base: base.Transport, header: h}
	return fetch.UseClient(ctx, &c)
}

// get fetches one service endpoint into a Document and classifies the
// service-level error field, if any.
func (a *Adapter) get(ctx context.Context, op string, addr moniker.Address, cfg *config.Config) (adapter.Document, error) {
	uri := endpoint(cfg, op, addr)
	logging.Debugf(ctx, "moniker service: GET %s", uri)
	ctx = useHeaders(ctx, headers(cfg))
	var doc adapter.Document
	if err := fetch.FetchJSON(ctx, uri, &doc, temporalQuery(addr.Temporal), nil); err != nil {
		return nil, errors.Annotate(err, "failed to fetch '%s'", uri)
	}
	switch code, _ := doc["error"].(string); code {
	case "":
		return doc, nil
	case codeNotFound:
		return nil, &adapter.NotFoundError{Moniker: addr.String()}
	case codeUnsupported:
		return nil, &adapter.UnsupportedError{Source: SourceType, Op: op}
	default:
		detail, _ := doc["detail"].(string)
		return nil, errors.Reason("service error '%s' for '%s': %s", code, addr, detail)
	}
}

// Read implements adapter.Capability.
func (a *Adapter) Read(ctx context.Context, addr moniker.Address, cfg *config.Config) (adapter.Document, error) {
	return a.get(ctx, "read", addr, cfg)
}

// Describe implements adapter.Capability.
func (a *Adapter) Describe(ctx context.Context, addr moniker.Address, cfg *config.Config) (adapter.Document, error) {
	return a.get(ctx, "describe", addr, cfg)
}

// ListChildren implements adapter.Capability.
func (a *Adapter) ListChildren(ctx context.Context, addr moniker.Address, cfg *config.Config) ([]string, error) {
	doc, err := a.get(ctx, "list", addr, cfg)
	if err != nil {
		return nil, err
	}
	raw, _ := doc["children"].([]interface{})
	children := []string{}
	for _, c := range raw {
		s, ok := c.(string)
		if !ok {
			return nil, errors.Reason("non-string child %v in response for '%s'", c, addr)
		}
		children = append(children, s)
	}
	return children, nil
}

// Lineage implements adapter.Capability.
func (a *Adapter) Lineage(ctx context.Context, addr moniker.Address, cfg *config.Config) ([]adapter.Document, error) {
	doc, err := a.get(ctx, "lineage", addr, cfg)
	if err != nil {
		return nil, err
	}
	raw, _ := doc["owners"].([]interface{})
	owners := []adapter.Document{}
	for _, o := range raw {
		m, ok := o.(map[string]interface{})
		if !ok {
			return nil, errors.Reason("malformed owner record %v in response for '%s'", o, addr)
		}
		owners = append(owners, m)
	}
	return owners, nil
}
