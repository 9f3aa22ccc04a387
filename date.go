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
	"fmt"
	"time"

	"github.com/stockparfait/errors"
)

// dateFormats are the temporal literal forms accepted in monikers, tried in
// order. The compact YYYYMMDD form is the canonical serialization.
var dateFormats = []string{
	"20060102",
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// Date records a calendar date as year, month and day. It fits into 4 bytes
// and is comparable with ==.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

// NewDate is the constructor for Date.
func NewDate(year uint16, month, day uint8) Date {
	return Date{Year: year, Month: month, Day: day}
}

// NewDateFromTime creates a Date from the calendar date of t.
func NewDateFromTime(t time.Time) Date {
	return Date{
		Year:  uint16(t.Year()),
		Month: uint8(t.Month()),
		Day:   uint8(t.Day()),
	}
}

// ParseDate parses a temporal literal in any of the accepted forms.
func ParseDate(s string) (Date, error) {
	var err error
	for _, format := range dateFormats {
		var t time.Time
		t, err = time.Parse(format, s)
		if err == nil {
			return NewDateFromTime(t), nil
		}
	}
	return Date{}, errors.Annotate(err, "failed to parse date '%s'", s)
}

// IsZero tests for an unset Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the canonical YYYYMMDD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// ISO returns the YYYY-MM-DD form.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time converts the date to time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
}

// Before implements a strict ordering on dates.
func (d Date) Before(d2 Date) bool {
	if d.Year != d2.Year {
		return d.Year < d2.Year
	}
	if d.Month != d2.Month {
		return d.Month < d2.Month
	}
	return d.Day < d2.Day
}
