// Package textnorm canonicalizes free text and answer tokens.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	leadingLetter = regexp.MustCompile(`^[A-Da-d]`)
)

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims the ends.
func CollapseWhitespace(text string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
}

// NormalizeAnswerToken returns the upper-cased A-D letter at the start of
// raw, or "" when raw does not start with one. Only the first character
// after trimming is inspected.
func NormalizeAnswerToken(raw string) string {
	m := leadingLetter.FindString(strings.TrimSpace(raw))
	return strings.ToUpper(m)
}

// StripDecorations removes the ")" and "." characters models like to put
// around option letters, e.g. "B)" or "C.".
func StripDecorations(raw string) string {
	return strings.NewReplacer(")", "", ".", "").Replace(raw)
}

// OptionLetter returns the label letter of a displayed option such as
// "C) Mitochondria".
func OptionLetter(option string) string {
	return NormalizeAnswerToken(option)
}
