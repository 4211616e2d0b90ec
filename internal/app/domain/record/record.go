// Package record defines the ordered column enumeration every entity
// exposes for response serialization.
package record

import (
	"bytes"
	"encoding/json"
)

// Field is a single named column value.
type Field struct {
	Name  string
	Value interface{}
}

// Fields is an ordered list of column values. It marshals as a JSON object
// whose keys appear in slice order, so entities control their own column
// order without reflection.
type Fields []Field

// MarshalJSON implements json.Marshaler.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (interface{}, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}
