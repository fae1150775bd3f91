package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded quiz outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		s, err := openStore(v)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := commandContext(cmd, v)
		events, err := s.EventRepo().QueryQuizEvents(ctx,
			store.QueryOpts{Limit: v.GetInt("limit"), Session: v.GetString("session")})
		if err != nil {
			return fmt.Errorf("query quiz events: %w", err)
		}
		sum, err := s.EventRepo().QuizSummary(ctx)
		if err != nil {
			return fmt.Errorf("quiz summary: %w", err)
		}
		printQuizHistory(cmd.OutOrStdout(), events, sum)
		return nil
	},
}

func printQuizHistory(w io.Writer, events []store.QuizEvent, sum store.QuizSummary) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No quizzes recorded yet.")
		return
	}

	t := newTable(w, -5, 19, 8, 18, -5, 15, 40)
	t.header("ID", "Time", "Session", "Action", "Score", "Band", "Detail")
	for _, e := range events {
		score := ""
		if e.Action == store.QuizGraded {
			score = fmt.Sprintf("%d/%d", e.Score, e.Total)
		}
		t.row(strconv.Itoa(e.ID), stamp(e.Timestamp), e.SessionID, string(e.Action),
			score, e.Band, truncate(e.Detail, 40))
	}
	t.rule()
	fmt.Fprintf(w, "Graded: %d   Failed: %d   Perfect: %d   Accuracy: %.0f%% (%d/%d)\n",
		sum.Graded, sum.Failed, sum.Perfect, sum.Accuracy()*100, sum.TotalCorrect, sum.TotalAsked)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().String("session", "", "Only show events of this quiz session ID")
}
