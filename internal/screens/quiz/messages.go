package quiz

import (
	"time"

	qz "github.com/abhisek/studybuddy/internal/quiz"
)

// generatedMsg is sent when a generation request returns.
type generatedMsg struct {
	Token int
	Err   error
}

// gradedMsg is sent when a grading request returns.
type gradedMsg struct {
	Token  int
	Result *qz.Result
	Err    error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time
