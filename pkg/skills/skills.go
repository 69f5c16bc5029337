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

package skills

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/soprc/pkg/sop"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📄 skillFileName is the file written inside each skill directory
const skillFileName = "SKILL.md"

// 📝 frontmatter is the metadata block prepended to each skill file
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Version     string `yaml:"version"`
}

// 🎯 Generate writes one skill directory per SOP under outputDir. Each
// directory is named after the SOP and contains a SKILL.md with a YAML
// front-matter block followed by the raw SOP content.
func Generate(ctx context.Context, outputDir string, sops []sop.SOP) error {
	userLogger := NewUserLogger(ctx)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}

	for _, s := range sops {
		path, err := writeSkill(outputDir, s)
		if err != nil {
			userLogger.LogSkillError(s.Name, err)
			return errors.Errorf("writing skill %s: %w", s.Name, err)
		}
		userLogger.LogSkillWritten(s.Name, path)
	}

	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		absOutput = outputDir
	}
	userLogger.LogSummary(absOutput, len(sops))

	return nil
}

// 📝 writeSkill writes a single SKILL.md and returns its path
func writeSkill(outputDir string, s sop.SOP) (string, error) {
	skillDir := filepath.Join(outputDir, s.Name)
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", errors.Errorf("creating skill directory: %w", err)
	}

	meta, err := yaml.Marshal(frontmatter{
		Name:        s.Name,
		Description: s.Description,
		Type:        "anthropic-skill",
		Version:     "1.0",
	})
	if err != nil {
		return "", errors.Errorf("marshaling frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(meta)
	sb.WriteString("---\n\n")
	sb.WriteString(s.Content)

	path := filepath.Join(skillDir, skillFileName)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", errors.Errorf("writing skill file: %w", err)
	}

	return path, nil
}
