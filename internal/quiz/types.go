package quiz

import (
	"github.com/abhisek/studybuddy/internal/scoring"
)

// Purpose labels recorded with each model request.
const (
	PurposeQuestions = "quiz-questions"
	PurposeAnswerKey = "quiz-answer-key"
)

const (
	// QuestionCount is the number of questions in every quiz.
	QuestionCount = 5

	// OptionCount is the number of options per question, labeled A-D.
	OptionCount = 4
)

// Question is a single multiple-choice question. Options keep the order
// the model produced and each carries its label prefix, e.g. "B) Paris".
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// Phase is a quiz session lifecycle state.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseGenerating
	PhaseReady
	PhaseGrading
	PhaseGraded
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseGenerating:
		return "generating"
	case PhaseReady:
		return "ready"
	case PhaseGrading:
		return "grading"
	case PhaseGraded:
		return "graded"
	default:
		return "unknown"
	}
}

// Busy reports whether a model call is outstanding in this phase.
func (p Phase) Busy() bool {
	return p == PhaseGenerating || p == PhaseGrading
}

// Item is the graded outcome of one question.
type Item struct {
	Question      string
	UserOption    string // full option text, empty when unanswered
	UserLetter    string
	CorrectLetter string
	Outcome       scoring.Outcome
}

// Result is the outcome of one grading pass.
type Result struct {
	Score int
	Total int
	Band  scoring.Band
	Items []Item
}

func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Items = append([]Item(nil), r.Items...)
	return &cp
}
