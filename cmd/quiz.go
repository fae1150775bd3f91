package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/feedback"
	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/study"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz from notes and grade your answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		ctx := commandContext(cmd, v)

		var notes string
		if path := v.GetString("notes"); path != "" {
			var err error
			if notes, err = study.LoadNotes(path); err != nil {
				return err
			}
		}
		plain := v.GetBool("plain")
		if plain && notes == "" {
			return errors.New("--plain needs --notes")
		}

		st, err := openStore(v)
		if err != nil {
			return err
		}
		defer st.Close()

		cl, err := newClients(ctx, v, st.EventRepo())
		if err != nil {
			return err
		}

		if !plain {
			return app.Run(ctx, newQuizScreen(ctx, cl, st.EventRepo(), notes), appOptions(ctx, cl))
		}

		session := quiz.NewSession(cl.Quiz,
			quiz.WithRecorder(st.EventRepo()),
			quiz.WithLogger(slog.Default()),
		)
		return runPlainQuiz(ctx, session, notes, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	quizCmd.Flags().StringP("notes", "f", "", "Notes file (.txt, .md or .pdf)")
	quizCmd.Flags().Bool("plain", false, "Run without the terminal UI, reading answers from stdin")
}

// runPlainQuiz generates a quiz from notes, asks each question on out,
// reads one answer letter per line from in and prints the graded report.
// A blank line skips a question; end of input leaves the rest unanswered.
func runPlainQuiz(ctx context.Context, session *quiz.Session, notes string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, i18n.T(ctx, "Generating"))
	if err := session.Generate(ctx, notes); err != nil {
		fmt.Fprintln(out, feedback.Error(ctx, err))
		return err
	}

	questions := session.Questions()
	fmt.Fprintln(out, i18n.Tp(ctx, "QuestionsReady", len(questions)))
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	eof := false
	for i, q := range questions {
		fmt.Fprintln(out, feedback.Question(ctx, i, q.Text))
		for _, opt := range q.Options {
			fmt.Fprintln(out, "   "+opt)
		}
		for !eof {
			fmt.Fprint(out, i18n.Td(ctx, "AnswerPrompt", map[string]any{"Number": i + 1}))
			if !scanner.Scan() {
				eof = true
				fmt.Fprintln(out)
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				break
			}
			if err := session.SelectLetter(i, line); err != nil {
				fmt.Fprintln(out, feedback.Error(ctx, err))
				continue
			}
			break
		}
		fmt.Fprintln(out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	fmt.Fprintln(out, i18n.T(ctx, "Grading"))
	res, err := session.Submit(ctx)
	if err != nil {
		fmt.Fprintln(out, feedback.Error(ctx, err))
		return err
	}
	fmt.Fprintln(out)
	for _, line := range feedback.Report(ctx, res) {
		fmt.Fprintln(out, line)
	}
	return nil
}
