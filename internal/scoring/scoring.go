// Package scoring compares normalized answer letters and classifies the
// outcome of a graded quiz.
package scoring

import "fmt"

// ContractViolation reports a broken caller invariant. Score panics with
// it instead of returning a silently wrong count.
type ContractViolation struct {
	Op     string
	Detail string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Detail)
}

// Score returns the number of index-aligned equal pairs. Both slices must
// hold normalized letters and have the same length; unequal lengths panic
// with a *ContractViolation.
func Score(userLetters, correctLetters []string) int {
	if len(userLetters) != len(correctLetters) {
		panic(&ContractViolation{
			Op:     "score",
			Detail: fmt.Sprintf("%d user answers vs %d correct answers", len(userLetters), len(correctLetters)),
		})
	}
	n := 0
	for i := range userLetters {
		if userLetters[i] == correctLetters[i] {
			n++
		}
	}
	return n
}

// Outcome classifies a single graded question.
type Outcome int

const (
	Correct  Outcome = iota // user letter matches and is non-empty
	NoAnswer                // user left the question blank
	Mismatch                // user picked a different letter
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case NoAnswer:
		return "no-answer"
	case Mismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Wrong reports whether the outcome counts against the learner.
func (o Outcome) Wrong() bool {
	return o != Correct
}

// Classify returns the display outcome for one question. The NoAnswer and
// Mismatch split is for messaging only and never changes the score.
func Classify(userLetter, correctLetter string) Outcome {
	switch {
	case userLetter != "" && userLetter == correctLetter:
		return Correct
	case userLetter == "":
		return NoAnswer
	default:
		return Mismatch
	}
}

// Band is the aggregate feedback tone for a finished quiz.
type Band int

const (
	BandNeedsPractice Band = iota
	BandGood
	BandPerfect
)

func (b Band) String() string {
	switch b {
	case BandPerfect:
		return "perfect"
	case BandGood:
		return "good"
	default:
		return "needs practice"
	}
}

// BandFor returns the feedback band for score out of total. 70% counts as
// good (inclusive).
func BandFor(score, total int) Band {
	switch {
	case score == total:
		return BandPerfect
	case score*10 >= total*7:
		return BandGood
	default:
		return BandNeedsPractice
	}
}
