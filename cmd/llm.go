package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		s, err := openStore(v)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(commandContext(cmd, v),
			store.QueryOpts{Limit: v.GetInt("limit"), Purpose: v.GetString("purpose")})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printLLMEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}
		v := viperForCmd(cmd)
		s, err := openStore(v)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(commandContext(cmd, v), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		s, err := openStore(v)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := commandContext(cmd, v)
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		printLLMStats(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete recorded model requests older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		age := v.GetDuration("older-than")
		if age <= 0 {
			return fmt.Errorf("--older-than must be positive, got %s", age)
		}
		s, err := openStore(v)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.EventRepo().PruneLLMEvents(commandContext(cmd, v), time.Now().Add(-age))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d model requests older than %s.\n", n, age)
		return nil
	},
}

func printLLMEvents(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No model requests recorded yet.")
		return
	}
	t := newTable(w, -5, 19, 16, 28, -6, -6, -7, 2)
	t.header("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		t.row(strconv.Itoa(e.ID), stamp(e.Timestamp), e.Purpose, e.Model,
			strconv.Itoa(e.InputTokens), strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10), ok)
	}
}

func printLLMEvent(w io.Writer, e *store.LLMEvent) {
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", stamp(e.Timestamp)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
	}

	for _, part := range [][2]string{{"PROMPT", e.RequestBody}, {"REPLY", e.ResponseBody}} {
		body := strings.TrimRight(part[1], "\n")
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(w, "\n── %s %s\n%s\n", part[0], strings.Repeat("─", 56-len(part[0])), body)
	}
}

func printLLMStats(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No model requests recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by purpose")
	t := newTable(w, 18, -6, -10, -10, -8)
	t.header("Purpose", "Calls", "Input", "Output", "Avg ms")
	var calls, in, out int
	for _, u := range byPurpose {
		t.row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	t.rule()
	t.row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), "")

	if len(byModel) == 0 {
		return
	}
	fmt.Fprintln(w, "\nEstimated cost (USD)")
	t = newTable(w, 32, -6, -10, -10, -10)
	t.header("Model", "Calls", "Input", "Output", "Cost")
	for _, u := range byModel {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			cost = formatCost(c.Cost(u.InputTokens, u.OutputTokens))
		}
		t.row(u.Model, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
	}
	est := llm.EstimateCost(byModel)
	label := "TOTAL"
	if len(est.Unknown) > 0 {
		label = "TOTAL (partial)"
	}
	t.rule()
	t.row(label, "", "", "", formatCost(est.TotalUSD))
	if len(est.Unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(est.Unknown, ", "))
	}
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose: quiz-questions, quiz-answer-key, chat or summary")

	llmPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete requests recorded longer ago than this")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd, llmPruneCmd)
}
