package stcs

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("  Union ICRS (Circle 1 -2.5 .3)\tBox  ")
	want := []Token{
		{TokenWord, "Union", 2},
		{TokenWord, "ICRS", 8},
		{TokenLeftParen, "(", 13},
		{TokenWord, "Circle", 14},
		{TokenNumber, "1", 21},
		{TokenNumber, "-2.5", 23},
		{TokenNumber, ".3", 28},
		{TokenRightParen, ")", 30},
		{TokenWord, "Box", 32},
		{TokenEOF, "", 37},
	}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize() returned %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestNumberPattern(t *testing.T) {
	numbers := []string{"1", "-1", "+1.5", "1.", ".5", "1e9", "2.5E-3"}
	for _, n := range numbers {
		if !numberPattern.MatchString(n) {
			t.Errorf("%q should be a number", n)
		}
	}
	words := []string{"e5", "1.2.3", "-", ".", "J2000", "2000-01-01", "1e"}
	for _, w := range words {
		if numberPattern.MatchString(w) {
			t.Errorf("%q should not be a number", w)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tokens := Tokenize("   ")
	if len(tokens) != 1 || tokens[0].Type != TokenEOF || tokens[0].Pos != 3 {
		t.Errorf("Tokenize(blank) = %v, want a single EOF at 3", tokens)
	}
}
