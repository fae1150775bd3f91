package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// table prints fixed-width columns two spaces apart. A negative width
// right-aligns the column; the last column is never padded.
type table struct {
	w      io.Writer
	widths []int
}

func newTable(w io.Writer, widths ...int) *table {
	return &table{w: w, widths: widths}
}

func (t *table) width() int {
	n := 0
	for _, w := range t.widths {
		n += max(w, -w) + 2
	}
	return max(n, 40)
}

func (t *table) rule() {
	fmt.Fprintln(t.w, strings.Repeat("─", t.width()))
}

// header prints the column titles between two rules.
func (t *table) header(cols ...string) {
	t.rule()
	t.row(cols...)
	t.rule()
}

func (t *table) row(cols ...string) {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cols)-1 || i >= len(t.widths) {
			b.WriteString(c)
			continue
		}
		w := t.widths[i]
		if w < 0 {
			fmt.Fprintf(&b, "%*s", -w, truncate(c, -w))
		} else {
			fmt.Fprintf(&b, "%-*s", w, truncate(c, w))
		}
	}
	fmt.Fprintln(t.w, strings.TrimRight(b.String(), " "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func stamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
