package quiz

import (
	"errors"
	"fmt"
)

// Stage names the model reply a ParseError refers to.
type Stage string

const (
	StageQuestions Stage = "questions"
	StageAnswerKey Stage = "answer-key"
)

// ParseError reports that the model replied but the reply was unusable:
// no JSON array, invalid JSON, or a shape that breaks the quiz contract.
type ParseError struct {
	Stage  Stage
	Reason string
	Raw    string // the model's reply as received
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %s", e.Stage, e.Reason)
}

// StateError reports an operation attempted in a phase that does not allow it.
type StateError struct {
	Op    string
	Phase Phase
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while quiz is %s", e.Op, e.Phase)
}

var (
	// ErrEmptyNotes is returned by Generate when the notes hold no text.
	ErrEmptyNotes = errors.New("notes are empty")

	// ErrInvalidSelection is returned for an out-of-range question index or
	// an option the question does not offer.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrStaleResponse is returned when a model reply arrives after the
	// session was reset or restarted. The reply is discarded.
	ErrStaleResponse = errors.New("response discarded: session changed while waiting")
)
