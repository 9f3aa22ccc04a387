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

package rest

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/monikerhq/moniker"
	"github.com/monikerhq/moniker/adapter"
	"github.com/monikerhq/moniker/config"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

// headerRecorder captures the headers of the last request it forwards.
type headerRecorder struct {
	base   http.RoundTripper
	header http.Header
}

func (t *headerRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	t.header = req.Header.Clone()
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func TestAdapter(t *testing.T) {
	t.Parallel()

	Convey("REST adapter calls the service", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := fetch.UseClient(context.Background(), server.Client())

		cfg, err := config.Resolve(config.Partial{
			ServiceURL: server.URL(),
			AppID:      "test-app",
			Team:       "test-team",
		}, nil, nil)
		So(err, ShouldBeNil)
		a := New()

		Convey("Read hits /read with the path and no temporal params for today", func() {
			server.ResponseBody = []string{`{
				"columns": ["date", "close"],
				"data": [{"date": "2026-01-15", "close": 123.45}],
				"row_count": 1
			}`}
			doc, err := a.Read(ctx, moniker.MustParse("prices.equity/AAPL"), cfg)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/read/prices.equity/AAPL")
			So(len(server.RequestQuery), ShouldEqual, 0)
			So(doc[adapter.KeyRowCount], ShouldEqual, 1.0)
		})

		Convey("point-in-time temporal becomes asof", func() {
			server.ResponseBody = []string{`{"data": []}`}
			_, err := a.Read(ctx, moniker.MustParse("prices.equity/AAPL@20260115"), cfg)
			So(err, ShouldBeNil)
			So(server.RequestQuery, ShouldResemble, url.Values{"asof": []string{"20260115"}})
		})

		Convey("latest temporal becomes temporal=latest", func() {
			server.ResponseBody = []string{`{"data": []}`}
			_, err := a.Read(ctx, moniker.MustParse("prices.equity/ALL@latest"), cfg)
			So(err, ShouldBeNil)
			So(server.RequestQuery, ShouldResemble, url.Values{"temporal": []string{"latest"}})
		})

		Convey("attribution headers are set on every request", func() {
			recorder := &headerRecorder{base: server.Client().Transport}
			hc := *server.Client()
			hc.Transport = recorder
			hctx := fetch.UseClient(context.Background(), &hc)

			server.ResponseBody = []string{`{"data": []}`}
			_, err := a.Read(hctx, moniker.MustParse("prices.equity/AAPL"), cfg)
			So(err, ShouldBeNil)
			So(recorder.header.Get("X-App-ID"), ShouldEqual, "test-app")
			So(recorder.header.Get("X-Team"), ShouldEqual, "test-team")
			So(recorder.header.Get("X-Request-ID"), ShouldNotBeBlank)
		})

		Convey("service not_found becomes NotFoundError", func() {
			server.ResponseBody = []string{`{"error": "not_found", "detail": "no binding"}`}
			_, err := a.Read(ctx, moniker.MustParse("prices.equity/NOPE"), cfg)
			So(err, ShouldNotBeNil)
			notFound, ok := err.(*adapter.NotFoundError)
			So(ok, ShouldBeTrue)
			So(notFound.Moniker, ShouldEqual, "prices.equity/NOPE")
		})

		Convey("service unsupported becomes UnsupportedError", func() {
			server.ResponseBody = []string{`{"error": "unsupported"}`}
			_, err := a.Lineage(ctx, moniker.MustParse("prices.equity"), cfg)
			So(err, ShouldNotBeNil)
			_, ok := err.(*adapter.UnsupportedError)
			So(ok, ShouldBeTrue)
		})

		Convey("other service errors surface as plain failures", func() {
			server.ResponseBody = []string{`{"error": "access_denied", "detail": "policy"}`}
			_, err := a.Read(ctx, moniker.MustParse("prices.equity/AAPL"), cfg)
			So(err, ShouldNotBeNil)
			_, ok := err.(*adapter.NotFoundError)
			So(ok, ShouldBeFalse)
		})

		Convey("Describe hits /describe and works without a selector", func() {
			server.ResponseBody = []string{`{"display_name": "Equity prices"}`}
			doc, err := a.Describe(ctx, moniker.MustParse("prices.equity"), cfg)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/describe/prices.equity")
			So(doc[adapter.KeyDisplayName], ShouldEqual, "Equity prices")
		})

		Convey("ListChildren extracts the children field", func() {
			server.ResponseBody = []string{`{"children": ["equity", "fx"]}`}
			children, err := a.ListChildren(ctx, moniker.MustParse("prices"), cfg)
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/list/prices")
			So(children, ShouldResemble, []string{"equity", "fx"})
		})

		Convey("ListChildren of a leaf is empty, not an error", func() {
			server.ResponseBody = []string{`{"children": []}`}
			children, err := a.ListChildren(ctx, moniker.MustParse("prices.equity/AAPL"), cfg)
			So(err, ShouldBeNil)
			So(children, ShouldResemble, []string{})
		})

		Convey("Lineage extracts owner records", func() {
			server.ResponseBody = []string{`{"owners": [
				{"path": "prices.equity", "team": "equities", "app": "pricer"},
				{"path": "prices", "team": "market-data"}
			]}`}
			owners, err := a.Lineage(ctx, moniker.MustParse("prices.equity"), cfg)
			So(err, ShouldBeNil)
			So(len(owners), ShouldEqual, 2)
			So(owners[0][adapter.KeyTeam], ShouldEqual, "equities")
			So(owners[1][adapter.KeyPath], ShouldEqual, "prices")
		})
	})
}
