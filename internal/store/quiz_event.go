package store

import (
	"context"
	"fmt"
)

type quizEventRow struct {
	eventHeader
	SessionID     string `db:"session_id"`
	Action        string `db:"action"`
	QuestionCount int    `db:"question_count"`
	Score         int    `db:"score"`
	Total         int    `db:"total"`
	Band          string `db:"band"`
	Detail        string `db:"detail"`
}

const insertQuizEvent = `INSERT INTO quiz_events (
	sequence, timestamp_ms, session_id, action, question_count, score, total, band, detail
) VALUES (
	:sequence, :timestamp_ms, :session_id, :action, :question_count, :score, :total, :band, :detail
)`

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	if data.SessionID == "" {
		return fmt.Errorf("quiz event: missing session ID")
	}

	row := &quizEventRow{
		SessionID:     data.SessionID,
		Action:        string(data.Action),
		QuestionCount: data.QuestionCount,
		Score:         data.Score,
		Total:         data.Total,
		Band:          data.Band,
		Detail:        data.Detail,
	}
	if err := r.insertEvent(ctx, insertQuizEvent, row); err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEvent, error) {
	where, args := opts.filter()
	if opts.Session != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.Session)
	}

	q := "SELECT * FROM quiz_events" + whereClause(where) + " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	var rows []quizEventRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}

	events := make([]QuizEvent, len(rows))
	for i, row := range rows {
		events[i] = QuizEvent{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: row.at(),
			QuizEventData: QuizEventData{
				SessionID:     row.SessionID,
				Action:        QuizAction(row.Action),
				QuestionCount: row.QuestionCount,
				Score:         row.Score,
				Total:         row.Total,
				Band:          row.Band,
				Detail:        row.Detail,
			},
		}
	}
	return events, nil
}

func (r *eventRepo) QuizSummary(ctx context.Context) (QuizSummary, error) {
	var row struct {
		Graded       int `db:"graded"`
		Failed       int `db:"failed"`
		TotalCorrect int `db:"total_correct"`
		TotalAsked   int `db:"total_asked"`
		Perfect      int `db:"perfect"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT
		COALESCE(SUM(CASE WHEN action = 'graded' THEN 1 ELSE 0 END), 0) AS graded,
		COALESCE(SUM(CASE WHEN action IN ('generation_failed', 'grading_failed') THEN 1 ELSE 0 END), 0) AS failed,
		COALESCE(SUM(CASE WHEN action = 'graded' THEN score ELSE 0 END), 0) AS total_correct,
		COALESCE(SUM(CASE WHEN action = 'graded' THEN total ELSE 0 END), 0) AS total_asked,
		COALESCE(SUM(CASE WHEN action = 'graded' AND score = total AND total > 0 THEN 1 ELSE 0 END), 0) AS perfect
	FROM quiz_events`)
	if err != nil {
		return QuizSummary{}, fmt.Errorf("quiz summary: %w", err)
	}
	return QuizSummary(row), nil
}
