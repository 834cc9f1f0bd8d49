package stats

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/stats.schema.json
var statsSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("stats.schema.json", bytes.NewReader([]byte(statsSchema))); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("stats.schema.json")
	})
	return compiledSchema, schemaErr
}

// ValidateShape checks the raw document against the embedded structural
// schema before any dialect decoding. It catches documents that are valid
// JSON but not a stats file at all, with a better message than a field-level
// decode error.
func ValidateShape(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile stats schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &DeserializationError{Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return &DeserializationError{Err: err}
	}
	return nil
}
