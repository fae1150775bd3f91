package quiz

import "github.com/abhisek/studybuddy/internal/llm"

// questionSetSchema is checked against the array extracted from the
// generation reply. Extra fields are tolerated.
var questionSetSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Five multiple-choice questions with four options each",
	Definition: map[string]any{
		"type":     "array",
		"minItems": QuestionCount,
		"maxItems": QuestionCount,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":      "string",
					"minLength": 1,
					"pattern":   `\S`,
				},
				"options": map[string]any{
					"type":     "array",
					"minItems": OptionCount,
					"maxItems": OptionCount,
					"items": map[string]any{
						"type":      "string",
						"minLength": 1,
						"pattern":   `\S`,
					},
				},
			},
			"required": []any{"question", "options"},
		},
	},
}

// answerKeySchema accepts either bare letter tokens or single-key mappings
// such as {"1": "B"}. Mixing the two is rejected after validation.
var answerKeySchema = &llm.Schema{
	Name:        "quiz-answer-key",
	Description: "Correct option letters in question order",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"anyOf": []any{
				map[string]any{"type": "string"},
				map[string]any{
					"type":                 "object",
					"minProperties":        1,
					"maxProperties":        1,
					"additionalProperties": map[string]any{"type": "string"},
				},
			},
		},
	},
}
