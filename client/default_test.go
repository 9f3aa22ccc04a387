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
	"testing"

	"github.com/monikerhq/moniker/config"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	// No t.Parallel: t.Setenv and process-wide default client state.
	t.Setenv(config.EnvServiceURL, "http://moniker.test")
	ctx := context.Background()

	Convey("Default constructs exactly one client under concurrent access", t, func() {
		const goroutines = 16
		clients := make([]*Client, goroutines)
		errs := make([]error, goroutines)

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				clients[i], errs[i] = Default(ctx)
			}(i)
		}
		wg.Wait()

		So(errs[0], ShouldBeNil)
		So(clients[0], ShouldNotBeNil)
		for i := 1; i < goroutines; i++ {
			So(errs[i], ShouldBeNil)
			So(clients[i], ShouldEqual, clients[0])
		}
		So(clients[0].Config().ServiceURL(), ShouldEqual, "http://moniker.test")
	})
}
