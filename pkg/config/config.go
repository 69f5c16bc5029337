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

import "fmt"

// 🔧 Defaults applied when the config file and environment leave a field empty
const (
	DefaultAddr   = ":8377"
	DefaultOutput = "./skills"
)

// 📚 Config is the optional .soprc run configuration. Every field is
// optional; flags override file values, file values override environment.
type Config struct {
	Sources    []string `json:"sources,omitempty" yaml:"sources,omitempty" hcl:"sources,optional"`
	Paths      string   `json:"paths,omitempty" yaml:"paths,omitempty" hcl:"paths,optional"`
	BuiltinDir string   `json:"builtin_dir,omitempty" yaml:"builtin_dir,omitempty" hcl:"builtin_dir,optional"`
	Output     string   `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	Addr       string   `json:"addr,omitempty" yaml:"addr,omitempty" hcl:"addr,optional"`

	location string // path the config was loaded from
}

// 📝 Location returns the path the config was loaded from, or "" for an
// entirely defaulted config
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("sources=%d paths=%q builtin=%q addr=%q output=%q",
		len(cfg.Sources), cfg.Paths, cfg.BuiltinDir, cfg.Addr, cfg.Output)
}
