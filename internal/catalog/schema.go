package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://salestrain.local/schemas/scenario_bank.schema.json"

//go:embed scenario_bank.schema.json
var bankSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(bankSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

func validateDocument(document interface{}) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile scenario bank schema: %w", err)
	}

	value, err := toJSONValue(document)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return nil
}
