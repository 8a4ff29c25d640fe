package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

type token struct {
	Text     string
	InBraces bool
}

func (t token) IsEmpty() bool {
	return t.Text == ""
}

func (t token) IsDigital() bool {
	for _, ch := range t.Text {
		if !unicode.IsDigit(ch) && ch != '.' {
			return false
		}
	}
	return t.Text != ""
}

func (t *token) Push(ch rune) {
	t.Text += string(unicode.ToLower(ch))
}

type tokenList []token

func (l *tokenList) Push(t token) {
	*l = append(*l, t)
}

func (l tokenList) String() string {
	words := make([]string, 0, len(l))
	for _, t := range l {
		words = append(words, t.Text)
	}
	return strings.Join(words, " ")
}

type match interface {
	Match(t token) bool
}

type wordMatch struct {
	Word string
}

func (m wordMatch) Match(t token) bool {
	return t.Text == m.Word
}

type regexMatch struct {
	Exp *regexp.Regexp
}

func (m regexMatch) Match(t token) bool {
	return m.Exp.MatchString(t.Text)
}

type orMatch struct {
	Matches []match
}

func (m orMatch) Match(t token) bool {
	for _, sub := range m.Matches {
		if sub.Match(t) {
			return true
		}
	}
	return false
}

type bracesMatch struct{}

func (m bracesMatch) Match(t token) bool {
	return t.InBraces
}

func (l tokenList) Find(m match) int {
	for i, t := range l {
		if m.Match(t) {
			return i
		}
	}
	return -1
}

func (l tokenList) FindAll(m match) []int {
	var found []int
	for i, t := range l {
		if m.Match(t) {
			found = append(found, i)
		}
	}
	return found
}
