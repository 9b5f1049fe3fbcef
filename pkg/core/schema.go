package core

import (
	"fmt"
	"strings"
)

// Field is one named, typed column of a Schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema describes the structure of a dataset.
type Schema struct {
	Fields []Field
}

// Names returns the field names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

func (s Schema) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s:%s", f.Name, f.Kind)
	}
	return strings.Join(parts, ", ")
}
