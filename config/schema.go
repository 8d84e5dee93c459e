package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the generated JSON schema
const SchemaID = "github.com/0xPolygon/cdk-enconfig/config/config"

// Schema returns the JSON schema of the config file, field names are the
// keys of the TOML document
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		FieldNameTag:   "mapstructure",
	}
	schema := r.Reflect(&Config{})
	schema.ID = SchemaID
	schema.Title = "External node configuration"
	return schema
}

// SchemaJSON returns the indented JSON document of Schema
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshalling config schema: %w", err)
	}
	return data, nil
}
