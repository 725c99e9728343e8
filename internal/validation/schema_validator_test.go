package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("person", []byte(personSchema)))

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{"valid data", `{"name": "John", "age": 30}`, false, ""},
		{"valid data without optional field", `{"name": "Jane"}`, false, ""},
		{"missing required field", `{"age": 25}`, true, "required"},
		{"wrong type for field", `{"name": "John", "age": "thirty"}`, true, "age"},
		{"constraint violation", `{"name": "John", "age": -5}`, true, "age"},
		{"invalid JSON", `{"name": "John", "age": }`, true, "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "person")
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	err := NewSchemaValidator().ValidateBytes([]byte(`{}`), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestSchemaValidator_RegisterTwice(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("person", []byte(personSchema)))
	assert.NoError(t, v.Register("person", []byte(personSchema)))
}

func TestSchemaValidator_RegisterInvalidSchema(t *testing.T) {
	assert.Error(t, NewSchemaValidator().Register("bad", []byte(`{"type": `)))
}
