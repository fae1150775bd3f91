package quiz

import (
	"fmt"
	"regexp"

	"github.com/abhisek/studybuddy/internal/extract"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/textnorm"
)

var optionLabels = [OptionCount]string{"A", "B", "C", "D"}

// labeledOption matches options that already carry a label such as "A)",
// "b." or "C:".
var labeledOption = regexp.MustCompile(`^\s*[A-Da-d]\s*[).:]`)

// ParseQuestions extracts a question set from a generation reply. The
// reply must hold exactly QuestionCount questions with OptionCount
// options each; anything else is a *ParseError and nothing is returned.
func ParseQuestions(reply string) ([]Question, error) {
	raw := extract.JSONArray(reply)
	if raw == nil {
		return nil, &ParseError{Stage: StageQuestions, Reason: "no JSON array in reply", Raw: reply}
	}
	if err := llm.ValidateValue(questionSetSchema, raw); err != nil {
		return nil, &ParseError{Stage: StageQuestions, Reason: err.Error(), Raw: reply}
	}

	questions, ok := extract.Into[Question](reply)
	if !ok {
		return nil, &ParseError{Stage: StageQuestions, Reason: "question array does not decode", Raw: reply}
	}

	for i := range questions {
		questions[i].Options = labelOptions(questions[i].Options)
		for j, opt := range questions[i].Options {
			if got := textnorm.OptionLetter(opt); got != optionLabels[j] {
				reason := fmt.Sprintf("question %d option %d is labeled %q, want %q", i+1, j+1, got, optionLabels[j])
				return nil, &ParseError{Stage: StageQuestions, Reason: reason, Raw: reply}
			}
		}
	}
	return questions, nil
}

// OptionIndex returns the position of the option labeled letter, or -1.
func OptionIndex(options []string, letter string) int {
	if letter == "" {
		return -1
	}
	for i, opt := range options {
		if textnorm.OptionLetter(opt) == letter {
			return i
		}
	}
	return -1
}

// labelOptions prefixes any unlabeled option with the label of its
// position, so every displayed option starts with its letter.
func labelOptions(options []string) []string {
	out := make([]string, len(options))
	for i, o := range options {
		if labeledOption.MatchString(o) {
			out[i] = o
			continue
		}
		out[i] = fmt.Sprintf("%s) %s", optionLabels[i], o)
	}
	return out
}

// keyShape is the form an answer-key array arrived in.
type keyShape int

const (
	shapeTokens   keyShape = iota + 1 // ["A", "B)", ...]
	shapeMappings                     // [{"1": "A"}, {"2": "B"}, ...]
)

// AnswerKey is the normalized answer key for one grading pass.
type AnswerKey struct {
	Letters []string
}

// ParseAnswerKey extracts the correct letters from a grading reply and
// resolves both accepted shapes to a flat list of A-D letters. want is
// the number of questions the key must cover.
func ParseAnswerKey(reply string, want int) (AnswerKey, error) {
	fail := func(format string, args ...any) (AnswerKey, error) {
		return AnswerKey{}, &ParseError{Stage: StageAnswerKey, Reason: fmt.Sprintf(format, args...), Raw: reply}
	}

	raw := extract.JSONArray(reply)
	if raw == nil {
		return fail("no JSON array in reply")
	}
	if err := llm.ValidateValue(answerKeySchema, raw); err != nil {
		return fail("%v", err)
	}

	tokens, err := flattenKey(raw)
	if err != nil {
		return fail("%v", err)
	}
	if len(tokens) != want {
		return fail("got %d answers for %d questions", len(tokens), want)
	}

	letters := make([]string, len(tokens))
	for i, tok := range tokens {
		letters[i] = textnorm.NormalizeAnswerToken(textnorm.StripDecorations(tok))
		if letters[i] == "" {
			return fail("answer %d (%q) is not a letter A-D", i+1, tok)
		}
	}
	return AnswerKey{Letters: letters}, nil
}

// flattenKey resolves the answer-key union. Every element must have the
// same shape; a mapping must hold exactly one key.
func flattenKey(items []any) ([]string, error) {
	var shape keyShape
	tokens := make([]string, 0, len(items))

	for i, item := range items {
		var (
			s   keyShape
			tok string
		)
		switch v := item.(type) {
		case string:
			s, tok = shapeTokens, v
		case map[string]any:
			if len(v) != 1 {
				return nil, fmt.Errorf("answer %d has %d keys, want 1", i+1, len(v))
			}
			for _, val := range v {
				str, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("answer %d value is not a string", i+1)
				}
				s, tok = shapeMappings, str
			}
		default:
			return nil, fmt.Errorf("answer %d has unsupported type %T", i+1, item)
		}

		if shape == 0 {
			shape = s
		} else if shape != s {
			return nil, fmt.Errorf("answer %d mixes letters and mappings", i+1)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
