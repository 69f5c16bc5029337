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

package prompt

import (
	"fmt"

	"github.com/walteh/soprc/pkg/sop"
)

// 📝 promptTemplate wraps a SOP and the caller's input into the block the
// agent runtime expects
const promptTemplate = `Run this SOP:
<agent-sop name=%q>
<content>
%s
</content>
<user-input>
%s
</user-input>
</agent-sop>`

// 🎯 Handler renders the prompt for one SOP given the caller's input
type Handler func(userInput string) string

// 📇 Entry describes one registered prompt
type Entry struct {
	Name        string
	Description string
}

// 📚 Registry holds prompt handlers keyed by SOP name. Registration is
// first-wins, mirroring the merge precedence rule.
type Registry struct {
	handlers map[string]Handler
	entries  []Entry
}

// 🏭 NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// 📝 Register adds a prompt handler for the SOP. It returns false if a
// handler for that name is already registered; the first one wins.
func (r *Registry) Register(s sop.SOP) bool {
	if _, ok := r.handlers[s.Name]; ok {
		return false
	}

	name, content := s.Name, s.Content
	r.handlers[name] = func(userInput string) string {
		return fmt.Sprintf(promptTemplate, name, content, userInput)
	}
	r.entries = append(r.entries, Entry{Name: s.Name, Description: s.Description})

	return true
}

// 🎯 Handler returns the handler for a name, or nil if none is registered
func (r *Registry) Handler(name string) Handler {
	return r.handlers[name]
}

// 📇 Entries returns all registered prompts in registration order
func (r *Registry) Entries() []Entry {
	return r.entries
}

// 🔢 Len returns the number of registered prompts
func (r *Registry) Len() int {
	return len(r.entries)
}
