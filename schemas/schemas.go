// Package schemas embeds the JSON schemas for the wire payloads.
package schemas

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed action.schema.json
var actionSchemaJSON string

var actionSchema = jsonschema.MustCompileString("action.schema.json", actionSchemaJSON)

// Action returns the compiled schema for a single action payload.
func Action() *jsonschema.Schema {
	return actionSchema
}
