package filter

// unaryNot is the only unary operator of the expression language.
const unaryNot = "not"

// precedence returns the binding strength of the given operator, higher binds tighter.
// Unknown operators get the lowest precedence and are rejected later on by the parser.
func precedence(op string) int {
	switch op {
	case unaryNot:
		return 3
	case string(And), string(Nand):
		return 2
	case string(Or), string(Nor), string(Xor), string(Xnor):
		return 1
	default:
		return 0
	}
}

// toPostfix reorders the given infix tokens into postfix order using the shunting yard algorithm.
//
// Operators of equal precedence are left associative. Parentheses are consumed, while invalid
// tokens are passed through unchanged for the parser to reject them.
func toPostfix(tokens []token) []token {
	output := make([]token, 0, len(tokens))
	var ops []token

	for _, tok := range tokens {
		switch tok.kind {
		case tokenCommand, tokenInvalid:
			output = append(output, tok)
		case tokenLeftParen:
			ops = append(ops, tok)
		case tokenRightParen:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.kind == tokenLeftParen {
					break
				}

				output = append(output, top)
			}
		case tokenOperator:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind != tokenOperator || precedence(top.text) < precedence(tok.text) {
					break
				}

				output = append(output, top)
				ops = ops[:len(ops)-1]
			}

			ops = append(ops, tok)
		}
	}

	for len(ops) > 0 {
		output = append(output, ops[len(ops)-1])
		ops = ops[:len(ops)-1]
	}

	return output
}
