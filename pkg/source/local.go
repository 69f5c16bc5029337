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
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/soprc/pkg/sop"
)

// 📂 LocalSource loads SOPs from a local directory
type LocalSource struct {
	dir string
}

// 🏭 NewLocalSource creates a source over the given directory
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

// 📂 Load enumerates *.sop.md files in the directory, in lexical order.
// A missing or non-directory path yields an empty result, not an error.
// Unreadable or invalid files are skipped individually.
func (s *LocalSource) Load(ctx context.Context) ([]sop.SOP, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(s.dir)
	if err != nil {
		logger.Warn().Str("source", s.String()).Msg("SOP directory does not exist")
		return nil, nil
	}
	if !info.IsDir() {
		logger.Warn().Str("source", s.String()).Msg("SOP path is not a directory")
		return nil, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Error().Err(err).Str("source", s.String()).Msg("scanning SOP directory")
		return nil, nil
	}

	var sops []sop.SOP
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match("*"+sop.FileSuffix, entry.Name()); !ok {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error().Err(err).Str("file", path).Msg("reading SOP file")
			continue
		}

		parsed, err := sop.Parse(sop.NameFromFile(entry.Name()), string(data))
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping SOP file")
			continue
		}

		sops = append(sops, parsed)
	}

	return sops, nil
}

// 📝 String returns the source identity for diagnostics
func (s *LocalSource) String() string {
	return fmt.Sprintf("local:%s", s.dir)
}
