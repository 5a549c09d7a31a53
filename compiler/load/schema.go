// Package load decodes resolved data-model documents into the Schema
// representation consumed by the generator.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema represents a resolved data model: its enumerations and entities in
// declaration order. Field types are kept as names and classified by the
// graph builder, so forward references between entities are allowed.
type Schema struct {
	Enums    []*Enum   `json:"enums,omitempty" yaml:"enums,omitempty"`
	Entities []*Entity `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// Entity represents a named record type of the data model.
type Entity struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields  []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Field represents one field of an entity. Type names either a scalar
// (String, Int, ...), an enum or another entity.
type Field struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	ID       bool   `json:"id,omitempty" yaml:"id,omitempty"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	List     bool   `json:"list,omitempty" yaml:"list,omitempty"`
	Default  bool   `json:"default,omitempty" yaml:"default,omitempty"`
	// Ref holds the name of the back-reference field on the target
	// entity. Only meaningful for relation fields.
	Ref     string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Enum represents an enumeration and its members in declaration order.
type Enum struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// ReadFile reads and decodes the schema document at the given path.
func ReadFile(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := UnmarshalSchema(buf)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", path, err)
	}
	return s, nil
}

// UnmarshalSchema decodes the given buffer to a loaded schema. Both YAML and
// JSON documents are accepted. Unknown keys are rejected.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty schema document")
		}
		return nil, err
	}
	for _, e := range s.Entities {
		if e == nil {
			return nil, errors.New("null entity entry")
		}
		for _, f := range e.Fields {
			if f == nil {
				return nil, fmt.Errorf("entity %q: null field entry", e.Name)
			}
		}
	}
	for _, e := range s.Enums {
		if e == nil {
			return nil, errors.New("null enum entry")
		}
	}
	return s, nil
}

// MarshalSchema encodes the schema as a YAML document.
func MarshalSchema(s *Schema) ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
