package filter

import "strings"

// ParseExpression parses a filter expression for a filter of the given Type.
//
// An expression joins brace delimited commands with the logical operators not, and, or, xor, nor,
// nand and xnor, e.g. `not ({contains "x"} and {contains "y"})`. Parentheses can be used for grouping.
// Inputs without any braces that don't parse as they are are retried as a single command, so that
// `contains "x"` is a shortcut for `{contains "x"}`.
//
// Returns false if the expression can't be parsed.
func ParseExpression(t Type, text string) (Expression, bool) {
	expr, ok := parseTokenized(t, text)
	if !ok && !strings.ContainsAny(text, "{}") {
		expr, ok = parseTokenized(t, "{"+text+"}")
	}

	return expr, ok
}

func parseTokenized(t Type, text string) (Expression, bool) {
	return buildExpression(t, toPostfix(tokenize(text)))
}

// buildExpression reduces the given postfix tokens to a single expression tree.
func buildExpression(t Type, postfix []token) (Expression, bool) {
	var stack []Expression

	pop := func() Expression {
		expr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return expr
	}

	for _, tok := range postfix {
		switch tok.kind {
		case tokenCommand:
			cmd, ok := ParseCommand(t, tok.text)
			if !ok {
				return nil, false
			}

			stack = append(stack, NewSingle(cmd))
		case tokenOperator:
			if tok.text == unaryNot {
				if len(stack) < 1 {
					return nil, false
				}

				stack = append(stack, NewNot(pop()))
				continue
			}

			if len(stack) < 2 {
				return nil, false
			}

			right := pop()
			left := pop()
			chain, err := NewChain(LogicalOp(tok.text), left, right)
			if err != nil {
				return nil, false
			}

			stack = append(stack, chain)
		case tokenInvalid:
			return nil, false
		default:
			// Parentheses are consumed by toPostfix and never show up here.
		}
	}

	if len(stack) != 1 {
		return nil, false
	}

	return stack[0], true
}
