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
	"sync"

	"github.com/monikerhq/moniker/config"
	"github.com/stockparfait/errors"
)

// The process-wide default client, built at most once from auto-resolved
// configuration. This is the only persistent process state in the library.
var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns the process-wide default client, constructing it on first
// use from explicit-free configuration (environment variables and config
// files). Construction happens exactly once even under concurrent first
// access; all callers observe the same instance, or the same sticky error.
func Default(ctx context.Context) (*Client, error) {
	defaultOnce.Do(func() {
		cfg, err := config.Load(config.Partial{})
		if err != nil {
			defaultErr = errors.Annotate(err, "failed to configure default client")
			return
		}
		defaultClient, defaultErr = New(ctx, cfg)
	})
	return defaultClient, defaultErr
}

// Read reads a moniker using the default client.
func Read(ctx context.Context, s string) (*Data, error) {
	c, err := Default(ctx)
	if err != nil {
		return nil, err
	}
	return c.Read(ctx, s)
}

// Describe returns metadata for a moniker using the default client.
func Describe(ctx context.Context, s string) (*Metadata, error) {
	c, err := Default(ctx)
	if err != nil {
		return nil, err
	}
	return c.Describe(ctx, s)
}

// ListChildren lists children of a moniker using the default client.
func ListChildren(ctx context.Context, s string) ([]string, error) {
	c, err := Default(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListChildren(ctx, s)
}

// Lineage returns the ownership chain of a moniker using the default client.
func Lineage(ctx context.Context, s string) ([]OwnershipRecord, error) {
	c, err := Default(ctx)
	if err != nil {
		return nil, err
	}
	return c.Lineage(ctx, s)
}
