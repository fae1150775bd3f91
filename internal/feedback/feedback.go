// Package feedback turns quiz results and failures into localized
// user-facing text.
package feedback

import (
	"context"
	"errors"

	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/scoring"
)

// Band returns the encouragement message for a score band.
func Band(ctx context.Context, b scoring.Band) string {
	switch b {
	case scoring.BandPerfect:
		return i18n.T(ctx, "BandPerfect")
	case scoring.BandGood:
		return i18n.T(ctx, "BandGood")
	default:
		return i18n.T(ctx, "BandNeedsPractice")
	}
}

// Score returns the "score / total" line.
func Score(ctx context.Context, r *quiz.Result) string {
	return i18n.Td(ctx, "ScoreLine", map[string]any{"Score": r.Score, "Total": r.Total})
}

// Question returns the numbered question heading for index i.
func Question(ctx context.Context, i int, text string) string {
	return i18n.Td(ctx, "QuestionLabel", map[string]any{"Number": i + 1, "Question": text})
}

// Item returns the verdict line for one graded question. Unanswered
// questions say so instead of showing an empty letter.
func Item(ctx context.Context, it quiz.Item) string {
	if it.Outcome == scoring.Correct {
		return i18n.Td(ctx, "ItemCorrect", map[string]any{"User": it.UserLetter})
	}
	user := it.UserLetter
	if it.Outcome == scoring.NoAnswer {
		user = i18n.T(ctx, "NoAnswer")
	}
	return i18n.Td(ctx, "ItemWrong", map[string]any{"User": user, "Correct": it.CorrectLetter})
}

// Report renders the full result: a heading and verdict per question,
// then the score and band lines.
func Report(ctx context.Context, r *quiz.Result) []string {
	lines := make([]string, 0, 2*len(r.Items)+2)
	for i, it := range r.Items {
		lines = append(lines, Question(ctx, i, it.Question), "  "+Item(ctx, it))
	}
	return append(lines, Score(ctx, r), Band(ctx, r.Band))
}

// Error maps a failure to a message. A stale response maps to "", since
// it is dropped without telling the user.
func Error(ctx context.Context, err error) string {
	var (
		parseErr *quiz.ParseError
		stateErr *quiz.StateError
		apiErr   *llm.APIError
	)
	switch {
	case err == nil, errors.Is(err, quiz.ErrStaleResponse):
		return ""
	case errors.Is(err, quiz.ErrEmptyNotes):
		return i18n.T(ctx, "ErrEmptyNotes")
	case errors.Is(err, quiz.ErrInvalidSelection):
		return i18n.T(ctx, "ErrInvalidSelection")
	case errors.As(err, &parseErr):
		if parseErr.Stage == quiz.StageAnswerKey {
			return i18n.T(ctx, "ErrParseAnswerKey")
		}
		return i18n.T(ctx, "ErrParseQuestions")
	case errors.As(err, &stateErr):
		if stateErr.Phase.Busy() {
			return i18n.T(ctx, "ErrBusy")
		}
		return i18n.T(ctx, "ErrNoQuiz")
	case llm.IsRateLimited(err):
		return i18n.T(ctx, "ErrRateLimited")
	case errors.As(err, &apiErr):
		return i18n.Td(ctx, "ErrAPI", map[string]any{"Detail": apiErr.Err.Error()})
	default:
		return i18n.Td(ctx, "ErrUnknown", map[string]any{"Detail": err.Error()})
	}
}
