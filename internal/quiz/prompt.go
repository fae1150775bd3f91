package quiz

import (
	"encoding/json"
	"fmt"
)

const generationTemplate = `Create %d multiple-choice questions from the following notes.
Each question must have exactly %d options labeled A) to D).
Do NOT include answers.
Return the output in JSON format as a list of objects:
[
  {
    "question": "Question text",
    "options": ["A) ...", "B) ...", "C) ...", "D) ..."]
  }
]
Notes:
%s`

// GenerationPrompt builds the question-generation prompt for notes.
func GenerationPrompt(notes string) string {
	return fmt.Sprintf(generationTemplate, QuestionCount, OptionCount, notes)
}

const answerKeyTemplate = `Provide ONLY the correct option letters (A, B, C, or D) in JSON array format,
one letter per question, in the same order as the questions:
%s`

// AnswerKeyPrompt serializes the committed questions, without any user
// answers, and asks for the matching answer letters.
func AnswerKeyPrompt(questions []Question) (string, error) {
	data, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("serialize questions: %w", err)
	}
	return fmt.Sprintf(answerKeyTemplate, data), nil
}
