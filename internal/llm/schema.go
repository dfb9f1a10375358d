package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ppiankov/elementa/internal/model"
)

// DescribeElementsTool is the name of the structured invocation the model answers with
const DescribeElementsTool = "describeElements"

// Schema declares the shape of a structured answer. Parameters is a JSON
// Schema object; providers pass it to the model as a tool or response format.
type Schema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ElementDescriptionsSchema returns the schema for a chunk of element answers
func ElementDescriptionsSchema() Schema {
	return Schema{
		Name:        DescribeElementsTool,
		Description: "Record the answer to the user's question for every element in the requested range of atomic numbers.",
		Parameters: map[string]any{
			"type":     "object",
			"required": []any{"elementDescriptions"},
			"properties": map[string]any{
				"elementDescriptions": map[string]any{
					"type":        "array",
					"description": "One entry per element in the requested range, ordered by atomic number.",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"atomicNumber", "element", "answerValue"},
						"properties": map[string]any{
							"atomicNumber": map[string]any{
								"type":    "integer",
								"minimum": 1,
								"maximum": 118,
							},
							"element": map[string]any{
								"type":        "string",
								"description": "The element's name, e.g. Hydrogen.",
							},
							"answerValue": map[string]any{
								"type":        "string",
								"description": "The category, the rating as a number, or the free-text answer.",
							},
							"justification": map[string]any{
								"type":        []any{"string", "null"},
								"description": "Optional brief justification, null if there's nothing interesting to say.",
							},
						},
					},
				},
			},
		},
	}
}

// ExtractInvocation returns the payload of the single structured invocation in resp.
// Zero or several invocations are an error, as is an invocation of another schema.
func ExtractInvocation(resp *StructuredResponse, schemaName string) (json.RawMessage, error) {
	if resp == nil {
		return nil, ErrNoInvocation
	}

	var found []ContentBlock
	for _, b := range resp.Blocks {
		if b.Type == BlockToolUse {
			found = append(found, b)
		}
	}

	switch {
	case len(found) == 0:
		if resp.StopReason != "" {
			return nil, fmt.Errorf("%w (stop reason: %s)", ErrNoInvocation, resp.StopReason)
		}
		return nil, ErrNoInvocation
	case len(found) > 1:
		return nil, fmt.Errorf("%w: got %d", ErrMultipleInvocations, len(found))
	}

	block := found[0]
	if schemaName != "" && block.Name != "" && block.Name != schemaName {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrNoInvocation, schemaName, block.Name)
	}
	if len(bytes.TrimSpace(block.Input)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrSchemaViolation)
	}
	return block.Input, nil
}

// ValidatePayload checks payload against the schema's JSON Schema
func ValidatePayload(schema Schema, payload json.RawMessage) error {
	if len(schema.Parameters) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.Parameters),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
}

// DecodeDescriptions extracts, validates and decodes the element descriptions in resp
func DecodeDescriptions(resp *StructuredResponse) ([]model.AnswerRecord, error) {
	schema := ElementDescriptionsSchema()

	payload, err := ExtractInvocation(resp, schema.Name)
	if err != nil {
		return nil, err
	}
	if err := ValidatePayload(schema, payload); err != nil {
		return nil, err
	}

	var out model.ElementDescriptions
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return out.ElementDescriptions, nil
}

// rawSchema returns the schema parameters as JSON
func rawSchema(schema Schema) (json.RawMessage, error) {
	if len(schema.Parameters) == 0 {
		return json.RawMessage(`{"type":"object"}`), nil
	}
	data, err := json.Marshal(schema.Parameters)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
