// Package codegen renders enum definitions as source code for the code
// preview panel. Built-in generators cover Go, Rust, and TypeScript; custom
// targets can be added as Lua scripts.
package codegen

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/enumedit/internal/enumdef"
)

// Codegen errors.
var (
	// ErrTargetNotFound is returned when no generator exists for a target.
	ErrTargetNotFound = errors.New("code generation target not found")

	// ErrTargetExists is returned when registering a duplicate target.
	ErrTargetExists = errors.New("code generation target already registered")
)

// Generator renders one language target.
type Generator interface {
	// Target returns the target name (e.g. "go", "rust").
	Target() string

	// Generate renders the definition as source code.
	Generate(def *enumdef.Definition) (string, error)
}

// Registry holds the available generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry creates a registry with the built-in generators installed.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	for _, g := range []Generator{goGenerator{}, rustGenerator{}, tsGenerator{}} {
		r.generators[g.Target()] = g
	}
	return r
}

// Register adds a generator for a new target.
func (r *Registry) Register(g Generator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[g.Target()]; exists {
		return fmt.Errorf("target %q: %w", g.Target(), ErrTargetExists)
	}
	r.generators[g.Target()] = g
	return nil
}

// Generate renders the definition for the named target.
func (r *Registry) Generate(target string, def *enumdef.Definition) (string, error) {
	r.mu.RLock()
	g, ok := r.generators[target]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("target %q: %w", target, ErrTargetNotFound)
	}
	return g.Generate(def)
}

// Targets returns the registered target names in sorted order.
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// variantValue returns the effective discriminant of variant i: the explicit
// value if set, otherwise the position index.
func variantValue(def *enumdef.Definition, i int) int64 {
	if v := def.Variants[i].Value; v != nil {
		return *v
	}
	return int64(i)
}

// goGenerator renders a Go const block with iota-style typing.
type goGenerator struct{}

func (goGenerator) Target() string { return "go" }

func (goGenerator) Generate(def *enumdef.Definition) (string, error) {
	var b strings.Builder

	if def.Description != "" {
		fmt.Fprintf(&b, "// %s %s\n", def.Name, def.Description)
	}
	fmt.Fprintf(&b, "type %s int\n\nconst (\n", def.Name)
	for i, v := range def.Variants {
		if v.Doc != "" {
			fmt.Fprintf(&b, "\t// %s%s - %s\n", def.Name, v.Name, v.Doc)
		}
		fmt.Fprintf(&b, "\t%s%s %s = %d\n", def.Name, v.Name, def.Name, variantValue(def, i))
	}
	b.WriteString(")\n")
	return b.String(), nil
}

// rustGenerator renders a Rust enum with explicit discriminants.
type rustGenerator struct{}

func (rustGenerator) Target() string { return "rust" }

func (rustGenerator) Generate(def *enumdef.Definition) (string, error) {
	var b strings.Builder

	if def.Description != "" {
		fmt.Fprintf(&b, "/// %s\n", def.Description)
	}
	b.WriteString("#[derive(Debug, Clone, Copy, PartialEq, Eq)]\n")
	fmt.Fprintf(&b, "pub enum %s {\n", def.Name)
	for i, v := range def.Variants {
		if v.Doc != "" {
			fmt.Fprintf(&b, "    /// %s\n", v.Doc)
		}
		fmt.Fprintf(&b, "    %s = %d,\n", v.Name, variantValue(def, i))
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// tsGenerator renders a TypeScript enum.
type tsGenerator struct{}

func (tsGenerator) Target() string { return "typescript" }

func (tsGenerator) Generate(def *enumdef.Definition) (string, error) {
	var b strings.Builder

	if def.Description != "" {
		fmt.Fprintf(&b, "/** %s */\n", def.Description)
	}
	fmt.Fprintf(&b, "export enum %s {\n", def.Name)
	for i, v := range def.Variants {
		if v.Doc != "" {
			fmt.Fprintf(&b, "  /** %s */\n", v.Doc)
		}
		fmt.Fprintf(&b, "  %s = %d,\n", v.Name, variantValue(def, i))
	}
	b.WriteString("}\n")
	return b.String(), nil
}
