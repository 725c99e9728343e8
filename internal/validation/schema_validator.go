package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON documents against named, pre-registered schemas
type SchemaValidator interface {
	Register(name string, schema []byte) error
	ValidateBytes(data []byte, name string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// Register compiles schema under name. Registering the same name twice is a no-op.
func (v *validator) Register(name string, schema []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.schemas[name]; ok {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	if err := v.compiler.AddResource(name, doc); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := v.compiler.Compile(name)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[name] = compiled
	return nil
}

// ValidateBytes validates JSON data bytes against a registered schema
func (v *validator) ValidateBytes(data []byte, name string) error {
	v.mu.Lock()
	schema, ok := v.schemas[name]
	v.mu.Unlock()
	if !ok {
		return fmt.Errorf("schema %q is not registered", name)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError flattens the cause tree into one line per failure
func formatValidationError(err error) error {
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		var lines []string
		collectErrors(validationErr, &lines)
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(lines, "\n"))
	}
	return fmt.Errorf("validation error: %w", err)
}

func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if msg := formatError(err); msg != "" {
		*lines = append(*lines, msg)
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	keywords := ""
	if err.ErrorKind != nil {
		keywords = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}

	if keywords != "" {
		return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
