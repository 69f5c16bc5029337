// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing config fixture")
	return path
}

func TestLoad(t *testing.T) {
	ctx := testContext(t)

	t.Run("yaml", func(t *testing.T) {
		path := writeConfig(t, "conf.yaml", `
sources:
  - type=s3,bucket=team-sops
paths: ~/sops:/srv/sops
builtin_dir: /opt/soprc/sops
output: ./out
addr: ":9000"
`)
		cfg, err := Load(ctx, path)
		require.NoError(t, err, "load should succeed")
		assert.Equal(t, []string{"type=s3,bucket=team-sops"}, cfg.Sources, "sources parsed")
		assert.Equal(t, "~/sops:/srv/sops", cfg.Paths, "paths parsed")
		assert.Equal(t, "/opt/soprc/sops", cfg.BuiltinDir, "builtin dir parsed")
		assert.Equal(t, "./out", cfg.Output, "output parsed")
		assert.Equal(t, ":9000", cfg.Addr, "addr parsed")
		assert.Equal(t, path, cfg.Location(), "location recorded")
	})

	t.Run("yaml_unknown_field_rejected", func(t *testing.T) {
		path := writeConfig(t, "conf.yaml", "bogus: true\n")
		_, err := Load(ctx, path)
		require.Error(t, err, "unknown fields should be rejected")
		assert.Contains(t, err.Error(), "parsing YAML", "error should name the format")
	})

	t.Run("json", func(t *testing.T) {
		path := writeConfig(t, "conf.json", `{"paths": "/srv/sops", "addr": ":9000"}`)
		cfg, err := Load(ctx, path)
		require.NoError(t, err, "load should succeed")
		assert.Equal(t, "/srv/sops", cfg.Paths, "paths parsed")
		assert.Equal(t, ":9000", cfg.Addr, "addr parsed")
	})

	t.Run("json_unknown_field_rejected", func(t *testing.T) {
		path := writeConfig(t, "conf.json", `{"bogus": true}`)
		_, err := Load(ctx, path)
		assert.Error(t, err, "unknown fields should be rejected")
	})

	t.Run("hcl", func(t *testing.T) {
		path := writeConfig(t, "conf.hcl", `
sources = ["type=s3,bucket=team-sops"]
paths   = "/srv/sops"
output  = "./out"
`)
		cfg, err := Load(ctx, path)
		require.NoError(t, err, "load should succeed")
		assert.Equal(t, []string{"type=s3,bucket=team-sops"}, cfg.Sources, "sources parsed")
		assert.Equal(t, "/srv/sops", cfg.Paths, "paths parsed")
		assert.Equal(t, "./out", cfg.Output, "output parsed")
	})

	t.Run("soprc_probes_yaml_then_hcl", func(t *testing.T) {
		yamlPath := writeConfig(t, ".soprc", "paths: /from/yaml\n")
		cfg, err := Load(ctx, yamlPath)
		require.NoError(t, err, "YAML content in .soprc should parse")
		assert.Equal(t, "/from/yaml", cfg.Paths, "YAML value loaded")

		hclPath := writeConfig(t, ".soprc", `paths = "/from/hcl"`)
		cfg, err = Load(ctx, hclPath)
		require.NoError(t, err, "HCL content in .soprc should parse")
		assert.Equal(t, "/from/hcl", cfg.Paths, "HCL value loaded")
	})

	t.Run("soprc_with_neither_format_fails", func(t *testing.T) {
		path := writeConfig(t, ".soprc", "{{{ not anything")
		_, err := Load(ctx, path)
		require.Error(t, err, "unparseable .soprc should fail")
		assert.Contains(t, err.Error(), "failed to parse .soprc", "error should name the file kind")
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		path := writeConfig(t, "conf.toml", "paths = '/x'")
		_, err := Load(ctx, path)
		require.Error(t, err, "unsupported extension should fail")
		assert.Contains(t, err.Error(), "unsupported file extension", "error should name the cause")
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err, "missing file should fail")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Sources, "no sources by default")
	assert.Empty(t, cfg.Addr, "addr left empty so env and defaults apply later")
	assert.Empty(t, cfg.Location(), "defaulted config has no location")
}
