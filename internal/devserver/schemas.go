package devserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

// Request-body schemas for the create endpoints. Compiled once at server
// construction; validation messages go back verbatim in the error envelope's
// message list, first entry being what clients display.

const messageSchema = `{
	"type": "object",
	"required": ["name", "email", "message"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"email": {"type": "string", "minLength": 3},
		"phone": {"type": "string"},
		"company": {"type": "string"},
		"message": {"type": "string", "minLength": 1}
	}
}`

const projectSchema = `{
	"type": "object",
	"required": ["title", "description", "image"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"image": {"type": "string", "minLength": 1},
		"technologies": {"type": "array", "items": {"type": "string"}},
		"category": {"enum": ["web", "mobile", "desktop", "other"]}
	}
}`

const serviceSchema = `{
	"type": "object",
	"required": ["title", "description", "icon"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"icon": {"type": "string", "minLength": 1},
		"features": {"type": "array", "items": {"type": "string"}}
	}
}`

const technologySchema = `{
	"type": "object",
	"required": ["name", "category", "icon", "level"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"category": {"enum": ["frontend", "backend", "database", "devops", "design", "mobile"]},
		"icon": {"type": "string", "minLength": 1},
		"level": {"enum": ["basic", "intermediate", "advanced"]}
	}
}`

type schemaSet struct {
	message    *jsonschema.Schema
	project    *jsonschema.Schema
	service    *jsonschema.Schema
	technology *jsonschema.Schema
}

func compileSchemas() (*schemaSet, error) {
	set := &schemaSet{}
	for name, pair := range map[string]struct {
		src string
		dst **jsonschema.Schema
	}{
		"message":    {messageSchema, &set.message},
		"project":    {projectSchema, &set.project},
		"service":    {serviceSchema, &set.service},
		"technology": {technologySchema, &set.technology},
	} {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(pair.src), rs); err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", name, err)
		}
		*pair.dst = rs
	}
	return set, nil
}

// validate runs payload against schema and returns the human-readable
// validation messages, empty when the payload is valid.
func validate(ctx context.Context, schema *jsonschema.Schema, payload []byte) ([]string, error) {
	keyErrs, err := schema.ValidateBytes(ctx, payload)
	if err != nil {
		return nil, err
	}

	msgs := make([]string, 0, len(keyErrs))
	for _, ke := range keyErrs {
		msgs = append(msgs, ke.Message)
	}
	return msgs, nil
}
