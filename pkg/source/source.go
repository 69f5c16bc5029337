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
	"strings"

	"github.com/walteh/soprc/pkg/sop"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Source is the interface for SOP backends
type Source interface {
	// 📂 Load returns all SOPs this source can produce, in enumeration order
	Load(ctx context.Context) ([]sop.SOP, error)

	// 📝 String returns a human-readable identity for diagnostics
	String() string
}

// 🏭 Factory creates a source from parsed configuration parameters
type Factory func(params map[string]string) (Source, error)

var (
	// 🗺️ factories is a map of source type names to factories
	factories = make(map[string]Factory)
)

// 📝 RegisterType registers a source factory for a "type=" value
func RegisterType(name string, factory Factory) {
	factories[name] = factory
}

// 🎯 Parse turns a source configuration string of the form
// "type=s3,bucket=my-bucket,prefix=sops/" into a Source. Malformed strings,
// a missing type, or an unknown type are hard errors - this function never
// degrades silently.
func Parse(raw string) (Source, error) {
	params := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return nil, errors.Errorf("invalid source parameter format: %s", part)
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	sourceType := params["type"]
	if sourceType == "" {
		return nil, errors.Errorf("source type is required")
	}

	factory := factories[sourceType]
	if factory == nil {
		return nil, errors.Errorf("unsupported source type: %s", sourceType)
	}

	return factory(params)
}
