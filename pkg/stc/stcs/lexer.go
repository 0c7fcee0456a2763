package stcs

import (
	"fmt"
	"regexp"
	"unicode"
)

// TokenType classifies an STC-S token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenWord
	TokenNumber
	TokenLeftParen
	TokenRightParen
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenWord:
		return "WORD"
	case TokenNumber:
		return "NUMBER"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexeme with its byte offset in the expression.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// String returns a string representation of the token.
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

var numberPattern = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// Tokenize splits an expression at whitespace runs. Parentheses are tokens
// of their own even without surrounding whitespace. The returned slice always
// ends with a TokenEOF positioned at len(expr).
func Tokenize(expr string) []Token {
	var tokens []Token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := expr[start:end]
		tt := TokenWord
		if numberPattern.MatchString(word) {
			tt = TokenNumber
		}
		tokens = append(tokens, Token{Type: tt, Value: word, Pos: start})
		start = -1
	}

	for i, r := range expr {
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case r == '(':
			flush(i)
			tokens = append(tokens, Token{Type: TokenLeftParen, Value: "(", Pos: i})
		case r == ')':
			flush(i)
			tokens = append(tokens, Token{Type: TokenRightParen, Value: ")", Pos: i})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(expr))

	return append(tokens, Token{Type: TokenEOF, Pos: len(expr)})
}
