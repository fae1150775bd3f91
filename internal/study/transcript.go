package study

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role identifies who spoke a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    Role
	Content string
}

// Transcript is an append-only list of conversation turns.
type Transcript struct {
	mu    sync.Mutex
	turns []Turn
}

// Append adds a turn.
func (t *Transcript) Append(role Role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, Turn{Role: role, Content: content})
}

// Turns returns a copy of the recorded turns.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Turn(nil), t.turns...)
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}

// Clear removes every turn.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = nil
}

// Export renders the transcript as "<Role>: <content>" lines, one per
// turn, joined by newlines. Line breaks inside content are folded into
// single spaces so each turn stays on one line.
func (t *Transcript) Export() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	caser := cases.Title(language.English)
	lines := make([]string, len(t.turns))
	for i, turn := range t.turns {
		lines[i] = caser.String(string(turn.Role)) + ": " + foldLines(turn.Content)
	}
	return strings.Join(lines, "\n")
}

func foldLines(content string) string {
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
