// Package schema provides helpers for building JSON Schema definitions used
// in tool parameter declarations.
package schema

import (
	jsonschema "github.com/swaggest/jsonschema-go"
)

// CreateStringSchema creates a JSON schema for a string field.
func CreateStringSchema(description string) *jsonschema.Schema {
	strType := jsonschema.SimpleType("string")
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &strType},
		Description: &description,
	}
}

// CreateStringSchemaEnum creates a JSON schema for a string field restricted
// to the given values.
func CreateStringSchemaEnum(description string, enumValues []string) *jsonschema.Schema {
	strType := jsonschema.SimpleType("string")
	enum := make([]interface{}, len(enumValues))
	for i, v := range enumValues {
		enum[i] = v
	}
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &strType},
		Description: &description,
		Enum:        enum,
	}
}

// CreateIntSchema creates a JSON schema for an integer field.
func CreateIntSchema(description string) *jsonschema.Schema {
	intType := jsonschema.SimpleType("integer")
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &intType},
		Description: &description,
	}
}

// CreateBoolSchema creates a JSON schema for a boolean field with a default.
func CreateBoolSchema(description string, defaultValue bool) *jsonschema.Schema {
	boolType := jsonschema.SimpleType("boolean")
	defVal := interface{}(defaultValue)
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &boolType},
		Description: &description,
		Default:     &defVal,
	}
}

// CreateObjectSchema creates a JSON schema for an object with the given
// properties and required fields. Nil properties yields an open object
// schema that accepts any arguments.
func CreateObjectSchema(properties map[string]*jsonschema.Schema, required []string) *jsonschema.Schema {
	objType := jsonschema.SimpleType("object")
	out := &jsonschema.Schema{
		Type:     &jsonschema.Type{SimpleTypes: &objType},
		Required: required,
	}
	if len(properties) > 0 {
		out.Properties = make(map[string]jsonschema.SchemaOrBool, len(properties))
		for name, prop := range properties {
			out.Properties[name] = jsonschema.SchemaOrBool{TypeObject: prop}
		}
	}
	return out
}
