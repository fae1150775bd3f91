package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/feedback"
	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/study"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask study questions line by line",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		c := study.NewChat(cl.Chat)
		out := cmd.OutOrStdout()
		if err := runChat(ctx, c, cmd.InOrStdin(), out); err != nil {
			return err
		}

		if path := v.GetString("export"); path != "" && c.Transcript().Len() > 0 {
			if err := os.WriteFile(path, []byte(c.Transcript().Export()+"\n"), 0o644); err != nil {
				return fmt.Errorf("export transcript: %w", err)
			}
			fmt.Fprintln(out, i18n.Td(ctx, "ExportSaved", map[string]any{"Path": path}))
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringP("export", "o", "", "Write the transcript to this file on exit")
}

// runChat answers one question per input line until a blank line or end
// of input. "/clear" empties the transcript. Failed questions are
// reported and the loop continues.
func runChat(ctx context.Context, c *study.Chat, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, i18n.T(ctx, "ChatWelcome"))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			return nil
		case "/clear":
			c.Clear()
			fmt.Fprintln(out, i18n.T(ctx, "ChatCleared"))
			continue
		}

		reply, err := c.Ask(ctx, line)
		if err != nil {
			fmt.Fprintln(out, feedback.Error(ctx, err))
			continue
		}
		fmt.Fprintln(out, reply)
		fmt.Fprintln(out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
