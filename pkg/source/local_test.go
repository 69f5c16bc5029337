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

package source

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

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), "writing fixture should succeed")
}

func TestLocalSourceLoad(t *testing.T) {
	ctx := testContext(t)

	t.Run("loads_matching_files_in_lexical_order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "beta.sop.md", "## Overview\nBeta procedure.\n")
		writeFile(t, dir, "alpha.sop.md", "## Overview\nAlpha procedure.\n")

		sops, err := NewLocalSource(dir).Load(ctx)
		require.NoError(t, err, "load should succeed")
		require.Len(t, sops, 2, "both files should load")
		assert.Equal(t, "alpha", sops[0].Name, "lexical order")
		assert.Equal(t, "beta", sops[1].Name, "lexical order")
		assert.Equal(t, "Alpha procedure.", sops[0].Description, "description from Overview")
	})

	t.Run("ignores_non_sop_files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "keep.sop.md", "## Overview\nKept.\n")
		writeFile(t, dir, "readme.md", "## Overview\nNot a SOP.\n")
		writeFile(t, dir, "notes.txt", "plain text")

		sops, err := NewLocalSource(dir).Load(ctx)
		require.NoError(t, err, "load should succeed")
		require.Len(t, sops, 1, "only the .sop.md file should load")
		assert.Equal(t, "keep", sops[0].Name, "name should match")
	})

	t.Run("skips_files_without_overview", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "good.sop.md", "## Overview\nGood.\n")
		writeFile(t, dir, "bad.sop.md", "# No overview here\n")

		sops, err := NewLocalSource(dir).Load(ctx)
		require.NoError(t, err, "load should succeed")
		require.Len(t, sops, 1, "invalid file should be skipped, not fail the source")
		assert.Equal(t, "good", sops[0].Name, "valid file should survive")
	})

	t.Run("skips_subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.sop.md"), 0o755), "creating dir fixture")
		writeFile(t, dir, "flat.sop.md", "## Overview\nFlat.\n")

		sops, err := NewLocalSource(dir).Load(ctx)
		require.NoError(t, err, "load should succeed")
		require.Len(t, sops, 1, "directory entries should be ignored")
		assert.Equal(t, "flat", sops[0].Name, "file should survive")
	})

	t.Run("nonexistent_directory_is_empty_not_error", func(t *testing.T) {
		sops, err := NewLocalSource(filepath.Join(t.TempDir(), "missing")).Load(ctx)
		assert.NoError(t, err, "missing directory should not be an error")
		assert.Empty(t, sops, "missing directory yields no SOPs")
	})

	t.Run("non_directory_path_is_empty_not_error", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "file.txt", "not a dir")

		sops, err := NewLocalSource(filepath.Join(dir, "file.txt")).Load(ctx)
		assert.NoError(t, err, "non-directory path should not be an error")
		assert.Empty(t, sops, "non-directory path yields no SOPs")
	})
}

func TestLocalSourceString(t *testing.T) {
	assert.Equal(t, "local:/srv/sops", NewLocalSource("/srv/sops").String(), "identity should match")
}
