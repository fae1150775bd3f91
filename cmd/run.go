package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/chat"
	"github.com/abhisek/studybuddy/internal/screens/home"
	quizscreen "github.com/abhisek/studybuddy/internal/screens/quiz"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/study"
)

// runApp opens the store, builds the LLM clients, and launches the TUI at
// the home menu.
func runApp(cmd *cobra.Command) error {
	v := viperForCmd(cmd)
	ctx := commandContext(cmd, v)

	st, err := openStore(v)
	if err != nil {
		return err
	}
	defer st.Close()

	cl, err := newClients(ctx, v, st.EventRepo())
	if err != nil {
		return err
	}

	root := home.New(ctx, home.Deps{
		NewQuiz: func() screen.Screen { return newQuizScreen(ctx, cl, st.EventRepo(), "") },
		NewChat: func() screen.Screen { return chat.New(ctx, study.NewChat(cl.Chat)) },
		History: st.EventRepo(),
	})
	return app.Run(ctx, root, appOptions(ctx, cl))
}

func newQuizScreen(ctx context.Context, cl *clients, repo store.EventRepo, notes string) screen.Screen {
	session := quiz.NewSession(cl.Quiz,
		quiz.WithRecorder(repo),
		quiz.WithLogger(slog.Default()),
	)
	return quizscreen.New(ctx, session, notes)
}

func appOptions(ctx context.Context, cl *clients) app.Options {
	return app.Options{
		Name:   i18n.T(ctx, "AppTitle"),
		Status: cl.ModelID(),
	}
}
