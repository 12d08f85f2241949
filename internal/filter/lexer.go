package filter

import (
	"fmt"
	"unicode"
)

// tokenKind identifies the kind of a token within an expression string.
type tokenKind int

const (
	// tokenCommand is the raw text between a pair of braces.
	tokenCommand tokenKind = iota
	// tokenLeftParen represents an opening parenthesis.
	tokenLeftParen
	// tokenRightParen represents a closing parenthesis.
	tokenRightParen
	// tokenOperator is a run of alphanumeric characters outside of braces, e.g. "and".
	tokenOperator
	// tokenInvalid marks anything that can't be part of a valid expression.
	tokenInvalid
)

// String returns the string representation of a token kind.
func (k tokenKind) String() string {
	switch k {
	case tokenCommand:
		return "COMMAND"
	case tokenLeftParen:
		return "LPAREN"
	case tokenRightParen:
		return "RPAREN"
	case tokenOperator:
		return "OPERATOR"
	case tokenInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("tokenKind(%d)", int(k))
	}
}

// token is a single lexical unit of an expression string.
type token struct {
	kind tokenKind
	text string // Only set for tokenCommand and tokenOperator.
}

func (t token) String() string {
	if t.text == "" {
		return t.kind.String()
	}

	return fmt.Sprintf("%s(%q)", t.kind, t.text)
}

// tokenize splits the given expression into tokens.
//
// The lexer never fails, anything it can't make sense of results in a tokenInvalid which
// makes the parser reject the expression once it gets there. This includes empty "()" pairs,
// closing parentheses without an opening one and unclosed parentheses at the end of the input.
func tokenize(expr string) []token {
	var tokens []token
	runes := []rune(expr)
	openParens := 0

	for pos := 0; pos < len(runes); {
		switch ch := runes[pos]; {
		case ch == '{':
			end := pos + 1
			for end < len(runes) && runes[end] != '}' {
				end++
			}

			tokens = append(tokens, token{kind: tokenCommand, text: string(runes[pos+1 : end])})
			pos = end + 1 // Skip the closing brace as well, if any.
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLeftParen})
			openParens++
			pos++

			if pos < len(runes) && runes[pos] == ')' {
				tokens = append(tokens, token{kind: tokenInvalid})
			}
		case ch == ')':
			if openParens == 0 {
				tokens = append(tokens, token{kind: tokenInvalid})
			} else {
				tokens = append(tokens, token{kind: tokenRightParen})
				openParens--
			}
			pos++
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			pos++
		case isOperatorRune(ch):
			end := pos
			for end < len(runes) && isOperatorRune(runes[end]) {
				end++
			}

			tokens = append(tokens, token{kind: tokenOperator, text: string(runes[pos:end])})
			pos = end
		default:
			tokens = append(tokens, token{kind: tokenInvalid})
			pos++
		}
	}

	if openParens != 0 {
		tokens = append(tokens, token{kind: tokenInvalid})
	}

	return tokens
}

func isOperatorRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
