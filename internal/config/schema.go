package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("docconf.schema.json", schemaJSON)
	})
	return compiledSchema, schemaErr
}

// validateSchema checks the raw YAML document against the embedded JSON
// Schema. An empty document is valid.
func validateSchema(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if document == nil {
		return nil
	}
	return sch.Validate(document)
}
