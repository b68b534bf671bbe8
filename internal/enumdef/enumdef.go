// Package enumdef models the enum definition document stored in enum.json.
package enumdef

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Enum definition errors.
var (
	// ErrEmptyName is returned when the enum has no name.
	ErrEmptyName = errors.New("enum name is empty")

	// ErrInvalidName is returned when a name is not a valid identifier.
	ErrInvalidName = errors.New("name is not a valid identifier")

	// ErrDuplicateVariant is returned when two variants share a name.
	ErrDuplicateVariant = errors.New("duplicate variant name")

	// ErrVariantNotFound is returned when a referenced variant does not exist.
	ErrVariantNotFound = errors.New("variant not found")
)

// identRe matches identifier-shaped names: a letter or underscore followed
// by letters, digits, or underscores.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Variant is one member of an enum definition.
type Variant struct {
	Name string `json:"name"`
	// Value is the explicit discriminant, if any.
	Value *int64 `json:"value,omitempty"`
	Doc   string `json:"doc,omitempty"`
}

// Definition is the in-memory form of an enum.json document.
type Definition struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Variants    []Variant `json:"variants"`
}

// Default returns the definition written to newly created documents.
func Default() *Definition {
	return &Definition{
		Name:     "NewEnum",
		Variants: []Variant{},
	}
}

// DefaultContent returns the serialized default definition.
func DefaultContent() json.RawMessage {
	data, err := Default().Marshal()
	if err != nil {
		// Default() is a fixed value; marshal cannot fail.
		panic(err)
	}
	return data
}

// Parse decodes and validates an enum definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("malformed enum definition: %w", err)
	}
	if def.Variants == nil {
		def.Variants = []Variant{}
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the definition's structural invariants.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return ErrEmptyName
	}
	if !identRe.MatchString(d.Name) {
		return fmt.Errorf("enum %q: %w", d.Name, ErrInvalidName)
	}

	seen := make(map[string]bool, len(d.Variants))
	for _, v := range d.Variants {
		if !identRe.MatchString(v.Name) {
			return fmt.Errorf("variant %q: %w", v.Name, ErrInvalidName)
		}
		if seen[v.Name] {
			return fmt.Errorf("variant %q: %w", v.Name, ErrDuplicateVariant)
		}
		seen[v.Name] = true
	}
	return nil
}

// Marshal serializes the definition as indented JSON with a trailing newline,
// the form written to disk.
func (d *Definition) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	out := &Definition{
		Name:        d.Name,
		Description: d.Description,
		Variants:    make([]Variant, len(d.Variants)),
	}
	for i, v := range d.Variants {
		out.Variants[i] = v
		if v.Value != nil {
			val := *v.Value
			out.Variants[i].Value = &val
		}
	}
	return out
}

// IndexOf returns the position of the named variant, or -1.
func (d *Definition) IndexOf(name string) int {
	for i, v := range d.Variants {
		if v.Name == name {
			return i
		}
	}
	return -1
}
