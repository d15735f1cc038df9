package diagnostic

import "github.com/amixedcolor/aws-identity-gift/internal/llm"

// ResultSchema is the shape the model must answer with once the JSON is cut
// out of its reply.
var ResultSchema = &llm.Schema{
	Name:        "diagnostic-result",
	Description: "One recommended AWS service with a catchphrase, a letter and next steps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"service": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category":    map[string]any{"type": "string", "minLength": 1},
					"serviceName": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []any{"category", "serviceName"},
			},
			"catchphrase": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "A short phrase describing the user, at most 15 characters",
			},
			"aiLetter": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "A warm letter of about 200 characters",
			},
			"nextActions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string"},
			},
		},
		"required": []any{"service", "catchphrase", "aiLetter", "nextActions"},
	},
}
