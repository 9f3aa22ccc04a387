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
	"runtime"

	"github.com/stockparfait/iterator"
	"golang.org/x/exp/slices"
)

// BatchResult is the outcome of reading one moniker within a batch. Exactly
// one of Data or Err is set.
type BatchResult struct {
	Moniker string
	Data    *Data
	Err     error
}

// BatchRead reads several monikers concurrently. One failing moniker does not
// abort the batch; each result carries its own error. Results are sorted by
// moniker string.
func (c *Client) BatchRead(ctx context.Context, monikers []string) []BatchResult {
	f := func(s string) BatchResult {
		data, err := c.Read(ctx, s)
		return BatchResult{Moniker: s, Data: data, Err: err}
	}
	pm := iterator.ParallelMap(ctx, 2*runtime.NumCPU(), iterator.FromSlice(monikers), f)
	defer pm.Close()

	results := iterator.Reduce[BatchResult, []BatchResult](pm, []BatchResult{},
		func(r BatchResult, acc []BatchResult) []BatchResult {
			return append(acc, r)
		})
	slices.SortFunc(results, func(a, b BatchResult) bool {
		return a.Moniker < b.Moniker
	})
	return results
}
