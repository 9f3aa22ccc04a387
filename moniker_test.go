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

package moniker

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	t.Parallel()

	Convey("Parse handles the grammar", t, func() {
		Convey("namespace only", func() {
			addr, err := Parse("prices.equity")
			So(err, ShouldBeNil)
			So(addr, ShouldResemble, Address{Namespace: []string{"prices", "equity"}})
		})

		Convey("namespace and selector, default temporal", func() {
			addr, err := Parse("prices.equity/AAPL")
			So(err, ShouldBeNil)
			So(addr.Namespace, ShouldResemble, []string{"prices", "equity"})
			So(addr.Selector, ShouldEqual, "AAPL")
			So(addr.Temporal.Kind, ShouldEqual, Today)
		})

		Convey("point-in-time temporal", func() {
			addr, err := Parse("prices.equity/AAPL@20260115")
			So(err, ShouldBeNil)
			So(addr.Temporal.Kind, ShouldEqual, PointInTime)
			So(addr.Temporal.Date, ShouldResemble, NewDate(2026, 1, 15))
		})

		Convey("ISO date temporal", func() {
			addr, err := Parse("prices.equity/AAPL@2026-01-15")
			So(err, ShouldBeNil)
			So(addr.Temporal.Date, ShouldResemble, NewDate(2026, 1, 15))
		})

		Convey("latest temporal is case-insensitive", func() {
			addr, err := Parse("prices.equity/ALL@Latest")
			So(err, ShouldBeNil)
			So(addr.Selector, ShouldEqual, "ALL")
			So(addr.Temporal.Kind, ShouldEqual, Latest)
		})

		Convey("selector with a sub-path", func() {
			addr, err := Parse("risk.cvar/DESK_A/20240115/ALL")
			So(err, ShouldBeNil)
			So(addr.Namespace, ShouldResemble, []string{"risk", "cvar"})
			So(addr.Selector, ShouldEqual, "DESK_A/20240115/ALL")
		})

		Convey("scheme prefix is stripped", func() {
			addr, err := Parse("moniker://prices.equity/AAPL")
			So(err, ShouldBeNil)
			So(addr.Path(), ShouldEqual, "prices.equity/AAPL")
			So(addr.URI(), ShouldEqual, "moniker://prices.equity/AAPL")
		})
	})

	Convey("Parse rejects malformed monikers", t, func() {
		for _, s := range []string{
			"",
			"moniker://",
			"/AAPL",
			"prices.equity/",
			"prices.equity/AAPL@",
			"prices.equity/AAPL@notadate",
			"prices.equity/AAPL@12345678",
			"prices.equity/AAPL@2026@01",
			"prices..equity/AAPL",
			"prices equity/AAPL",
			"prices.equity//AAPL",
			"prices.equity/AAPL/",
		} {
			_, err := Parse(s)
			So(err, ShouldNotBeNil)
			_, ok := err.(*ParseError)
			So(ok, ShouldBeTrue)
		}
	})

	Convey("String round-trips", t, func() {
		for _, s := range []string{
			"prices.equity",
			"prices.equity/AAPL",
			"prices.equity/AAPL@20260115",
			"prices.equity/ALL@latest",
			"risk.cvar/DESK_A/20240115/ALL",
		} {
			addr, err := Parse(s)
			So(err, ShouldBeNil)
			So(addr.String(), ShouldEqual, s)
			addr2, err := Parse(addr.String())
			So(err, ShouldBeNil)
			So(addr2, ShouldResemble, addr)
		}
	})

	Convey("Child and Parent navigate the hierarchy", t, func() {
		ns := MustParse("prices.equity")
		child := ns.Child("AAPL")
		So(child.String(), ShouldEqual, "prices.equity/AAPL")
		grandchild := child.Child("close")
		So(grandchild.Selector, ShouldEqual, "AAPL/close")

		parent, ok := grandchild.Parent()
		So(ok, ShouldBeTrue)
		So(parent, ShouldResemble, child)
		parent, ok = child.Parent()
		So(ok, ShouldBeTrue)
		So(parent.String(), ShouldEqual, "prices.equity")
		parent, ok = parent.Parent()
		So(ok, ShouldBeTrue)
		So(parent.String(), ShouldEqual, "prices")
		_, ok = parent.Parent()
		So(ok, ShouldBeFalse)
	})
}

func TestDate(t *testing.T) {
	t.Parallel()

	Convey("ParseDate accepts the declared literal forms", t, func() {
		for _, s := range []string{
			"20260115",
			"2026-01-15",
			"2026-01-15T10:30:00",
			"2026-01-15 10:30:00",
		} {
			d, err := ParseDate(s)
			So(err, ShouldBeNil)
			So(d, ShouldResemble, NewDate(2026, 1, 15))
		}
	})

	Convey("ParseDate rejects non-dates", t, func() {
		for _, s := range []string{"latest", "20261345", "abc", "2026"} {
			_, err := ParseDate(s)
			So(err, ShouldNotBeNil)
		}
	})

	Convey("Date accessors", t, func() {
		d := NewDate(2026, 1, 15)
		So(d.String(), ShouldEqual, "20260115")
		So(d.ISO(), ShouldEqual, "2026-01-15")
		So(d.IsZero(), ShouldBeFalse)
		So(Date{}.IsZero(), ShouldBeTrue)
		So(NewDate(2025, 12, 31).Before(d), ShouldBeTrue)
		So(d.Before(d), ShouldBeFalse)
	})
}
