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

import "fmt"

// AdapterError wraps a backend or transport failure, including timeouts and
// cancellations surfaced by an adapter. The original cause is preserved for
// diagnostics and never downgraded to an empty result.
type AdapterError struct {
	Moniker string
	Source  string // adapter source type
	Err     error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s adapter failed for '%s': %s", e.Source, e.Moniker, e.Err.Error())
}

// Unwrap exposes the original cause.
func (e *AdapterError) Unwrap() error { return e.Err }
