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

// Package moniker implements the moniker addressing grammar:
//
//	namespace ["/" selector] ["@" temporal]
//
// where namespace is a dot-separated hierarchical path (e.g. "prices.equity"),
// selector is a symbol or the reserved "ALL" wildcard, and temporal is either
// "latest" or a date literal ("20260115", "2026-01-15"). A missing temporal
// qualifier means "today". The optional "moniker://" scheme prefix is accepted
// and stripped on parse.
package moniker

import (
	"fmt"
	"regexp"
	"strings"
)

// Scheme is the URI scheme prefix accepted by Parse and produced by URI().
const Scheme = "moniker://"

// WildcardSelector requests every symbol in a namespace. The parser keeps it
// verbatim; interpretation is an adapter concern.
const WildcardSelector = "ALL"

// TemporalKind enumerates the temporal qualifier modes of a moniker.
type TemporalKind int

const (
	Today       TemporalKind = iota // no "@" suffix
	PointInTime                     // "@<date>"
	Latest                          // "@latest"
)

// String implements fmt.Stringer.
func (k TemporalKind) String() string {
	switch k {
	case Today:
		return "today"
	case PointInTime:
		return "point-in-time"
	case Latest:
		return "latest"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Temporal is the parsed temporal qualifier of a moniker. Date is meaningful
// only when Kind is PointInTime.
type Temporal struct {
	Kind TemporalKind
	Date Date
}

// Token returns the temporal qualifier in its moniker string form, without the
// "@" separator. The Today case is the empty string.
func (t Temporal) Token() string {
	switch t.Kind {
	case Latest:
		return "latest"
	case PointInTime:
		return t.Date.String()
	}
	return ""
}

// Address is the parsed form of a moniker string.
type Address struct {
	Namespace []string // dot-separated in source form, never empty
	Selector  string   // optional; "" means a namespace-level request
	Temporal  Temporal
}

// ParseError indicates a moniker string that does not conform to the grammar.
type ParseError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid moniker '%s': %s", e.Input, e.Reason)
}

var segmentRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func parseError(input, format string, args ...interface{}) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// Parse converts a moniker string into an Address. It fails with *ParseError
// on any input outside the grammar; a given string maps to exactly one
// Address.
func Parse(s string) (Address, error) {
	var addr Address
	text := strings.TrimPrefix(s, Scheme)
	if text == "" {
		return addr, parseError(s, "empty namespace")
	}
	if strings.Count(text, "@") > 1 {
		return addr, parseError(s, "more than one '@'")
	}
	if at := strings.IndexByte(text, '@'); at >= 0 {
		token := text[at+1:]
		text = text[:at]
		if token == "" {
			return addr, parseError(s, "empty temporal qualifier after '@'")
		}
		if strings.EqualFold(token, "latest") {
			addr.Temporal = Temporal{Kind: Latest}
		} else {
			d, err := ParseDate(token)
			if err != nil {
				return addr, parseError(s, "temporal qualifier '%s' is neither 'latest' nor a date", token)
			}
			addr.Temporal = Temporal{Kind: PointInTime, Date: d}
		}
	}
	nsPart := text
	if slash := strings.IndexByte(text, '/'); slash >= 0 {
		nsPart = text[:slash]
		addr.Selector = text[slash+1:]
		if addr.Selector == "" {
			return addr, parseError(s, "empty selector after '/'")
		}
		for _, seg := range strings.Split(addr.Selector, "/") {
			if seg == "" {
				return addr, parseError(s, "empty segment in selector '%s'", addr.Selector)
			}
		}
	}
	if nsPart == "" {
		return addr, parseError(s, "empty namespace")
	}
	addr.Namespace = strings.Split(nsPart, ".")
	for _, seg := range addr.Namespace {
		if !segmentRegexp.MatchString(seg) {
			return addr, parseError(s, "invalid namespace segment '%s'", seg)
		}
	}
	return addr, nil
}

// MustParse is like Parse but panics on error. For use in tests and static
// initialization.
func MustParse(s string) Address {
	addr, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// Path returns the address in path form, namespace plus selector, without the
// temporal qualifier: "prices.equity/AAPL".
func (a Address) Path() string {
	p := strings.Join(a.Namespace, ".")
	if a.Selector != "" {
		p += "/" + a.Selector
	}
	return p
}

// String re-serializes the address to its moniker string form. Parsing the
// result yields an equivalent Address.
func (a Address) String() string {
	s := a.Path()
	if t := a.Temporal.Token(); t != "" {
		s += "@" + t
	}
	return s
}

// URI returns the full moniker URI with the scheme prefix.
func (a Address) URI() string {
	return Scheme + a.String()
}

// Child returns the address one level below this one. For a namespace-level
// address the segment becomes the selector; otherwise it extends the selector
// sub-path. The temporal qualifier is preserved.
func (a Address) Child(segment string) Address {
	child := a
	child.Namespace = append([]string{}, a.Namespace...)
	if a.Selector == "" {
		child.Selector = segment
	} else {
		child.Selector = a.Selector + "/" + segment
	}
	return child
}

// Parent returns the address one level above this one, and false when already
// at the root of the hierarchy.
func (a Address) Parent() (Address, bool) {
	parent := a
	if a.Selector != "" {
		if i := strings.LastIndexByte(a.Selector, '/'); i >= 0 {
			parent.Selector = a.Selector[:i]
		} else {
			parent.Selector = ""
		}
		parent.Namespace = append([]string{}, a.Namespace...)
		return parent, true
	}
	if len(a.Namespace) <= 1 {
		return a, false
	}
	parent.Namespace = append([]string{}, a.Namespace[:len(a.Namespace)-1]...)
	return parent, true
}
