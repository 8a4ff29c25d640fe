package analysis

import (
	"unicode"
)

// parseName splits a raw name into lowercase tokens. A dot between two digits
// stays inside the token, so fractional chapter numbers survive tokenizing.
func parseName(name string) tokenList {
	tokens := tokenList{}
	t := token{}
	braces := 0
	runes := []rune(name)

	for i, ch := range runes {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			t.Push(ch)
			continue
		}

		if ch == '.' && i > 0 && i < len(runes)-1 &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			t.Push(ch)
			continue
		}

		if !t.IsEmpty() {
			tokens.Push(t)
			t.Text = ""
		}
		if ch == '(' || ch == '[' {
			braces++
			t.InBraces = true
		} else if (ch == ')' || ch == ']') && braces > 0 {
			braces--
			if braces == 0 {
				t.InBraces = false
			}
		}
	}

	if !t.IsEmpty() {
		tokens.Push(t)
	}

	return tokens
}
