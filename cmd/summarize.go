package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/study"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize a notes file (.txt, .md or .pdf)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		ctx := commandContext(cmd, v)

		notes, err := study.LoadNotes(args[0])
		if err != nil {
			return err
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

		summary, err := study.NewSummarizer(cl.Summary).Summarize(ctx, notes)
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}

		out := cmd.OutOrStdout()
		if path := v.GetString("out"); path != "" {
			if err := os.WriteFile(path, []byte(summary+"\n"), 0o644); err != nil {
				return fmt.Errorf("save summary: %w", err)
			}
			fmt.Fprintln(out, i18n.Td(ctx, "SummarySaved", map[string]any{"Path": path}))
			return nil
		}
		fmt.Fprintln(out, summary)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringP("out", "o", "", "Save the summary to this file instead of printing it")
}
