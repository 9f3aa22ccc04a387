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

package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	Convey("Precedence: explicit > env > files", t, func() {
		explicit := Partial{AppID: "x"}
		env := map[string]string{
			EnvAppID:      "y",
			EnvServiceURL: "http://e",
		}
		files := []Partial{{ServiceURL: "http://f", Team: "t"}}

		cfg, err := Resolve(explicit, env, files)
		So(err, ShouldBeNil)
		So(cfg.AppID(), ShouldEqual, "x")
		So(cfg.ServiceURL(), ShouldEqual, "http://e")
		So(cfg.Team(), ShouldEqual, "t")
	})

	Convey("Earlier file wins over later file", t, func() {
		files := []Partial{
			{ServiceURL: "http://project", StaticDir: "/data"},
			{ServiceURL: "http://home", Team: "home-team"},
		}
		cfg, err := Resolve(Partial{}, nil, files)
		So(err, ShouldBeNil)
		So(cfg.ServiceURL(), ShouldEqual, "http://project")
		So(cfg.StaticDir(), ShouldEqual, "/data")
		So(cfg.Team(), ShouldEqual, "home-team")
	})

	Convey("Missing service_url is a ConfigError", t, func() {
		_, err := Resolve(Partial{AppID: "x"}, nil, nil)
		So(err, ShouldNotBeNil)
		_, ok := err.(*ConfigError)
		So(ok, ShouldBeTrue)
	})

	Convey("app_id and team may remain unset", t, func() {
		cfg, err := Resolve(Partial{ServiceURL: "http://svc"}, nil, nil)
		So(err, ShouldBeNil)
		So(cfg.AppID(), ShouldEqual, "")
		So(cfg.Team(), ShouldEqual, "")
	})
}

func TestFiles(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_config")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("LoadFile reads YAML keys", t, func() {
		path := filepath.Join(tmpdir, "client.yaml")
		body := "service_url: http://svc:8050\napp_id: my-app\nteam: my-team\n"
		So(os.WriteFile(path, []byte(body), 0644), ShouldBeNil)

		p, err := LoadFile(path)
		So(err, ShouldBeNil)
		So(p, ShouldResemble, Partial{
			ServiceURL: "http://svc:8050",
			AppID:      "my-app",
			Team:       "my-team",
		})
	})

	Convey("LoadFile fails on malformed YAML", t, func() {
		path := filepath.Join(tmpdir, "bad.yaml")
		So(os.WriteFile(path, []byte(":\n :bad"), 0644), ShouldBeNil)
		_, err := LoadFile(path)
		So(err, ShouldNotBeNil)
	})

	Convey("LoadFile fails on a missing file", t, func() {
		_, err := LoadFile(filepath.Join(tmpdir, "nope.yaml"))
		So(err, ShouldNotBeNil)
	})
}

func TestEnvPartial(t *testing.T) {
	Convey("EnvPartial picks up MONIKER_* variables", t, func() {
		t.Setenv(EnvServiceURL, "http://env")
		t.Setenv(EnvTeam, "env-team")
		t.Setenv(EnvAppID, "")
		env := EnvPartial()
		So(env[EnvServiceURL], ShouldEqual, "http://env")
		So(env[EnvTeam], ShouldEqual, "env-team")
		_, ok := env[EnvAppID]
		So(ok, ShouldBeFalse)
	})
}
