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

package sop

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// 📄 FileSuffix is the filename marker that distinguishes SOP files from
// ordinary markdown (e.g. "code-review.sop.md")
const FileSuffix = ".sop.md"

// 📦 SOP is a single named procedure document
type SOP struct {
	Name        string // Unique key within a merged collection
	Content     string // Full raw document text
	Description string // Derived from the Overview section, never empty
}

// 🔍 NameFromFile derives a SOP name from a filename or object key by
// stripping the directory and the ".sop.md" suffix
func NameFromFile(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), FileSuffix)
}

// 📝 Parse builds a SOP from raw document text. The description comes from
// the body of a heading literally named "Overview" (any level), up to the
// next heading or end of document. Documents without an Overview section,
// or with an empty one, are rejected.
func Parse(name, content string) (SOP, error) {
	if !utf8.ValidString(content) {
		return SOP{}, errors.Errorf("decoding %s: content is not valid UTF-8", name)
	}

	body, ok := overviewBody(content)
	if !ok {
		return SOP{}, errors.Errorf("no Overview section found in %s", name)
	}

	description := strings.ReplaceAll(strings.TrimSpace(body), "\n", " ")
	if description == "" {
		return SOP{}, errors.Errorf("empty Overview section in %s", name)
	}

	return SOP{
		Name:        name,
		Content:     content,
		Description: description,
	}, nil
}

// 🔍 overviewBody returns the text between the Overview heading and the
// next heading (or EOF)
func overviewBody(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !isOverviewHeading(line) {
			continue
		}

		var body []string
		for _, next := range lines[i+1:] {
			if strings.HasPrefix(next, "#") {
				break
			}
			body = append(body, next)
		}

		return strings.Join(body, "\n"), true
	}

	return "", false
}

// 🔍 isOverviewHeading matches "# Overview" through "###### Overview",
// allowing trailing whitespace only
func isOverviewHeading(line string) bool {
	line = strings.TrimRight(line, " \t")
	hashes := len(line) - len(strings.TrimLeft(line, "#"))
	if hashes < 1 || hashes > 6 {
		return false
	}
	return line[hashes:] == " Overview"
}
