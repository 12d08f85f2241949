package filter

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	testdata := []struct {
		Expression string
		Expected   []token
	}{
		{"", nil},
		{`{contains "a"}`, []token{{kind: tokenCommand, text: `contains "a"`}}},
		{
			"not ({a}\tand\n{b})",
			[]token{
				{kind: tokenOperator, text: "not"},
				{kind: tokenLeftParen},
				{kind: tokenCommand, text: "a"},
				{kind: tokenOperator, text: "and"},
				{kind: tokenCommand, text: "b"},
				{kind: tokenRightParen},
			},
		},
		{"()", []token{{kind: tokenLeftParen}, {kind: tokenInvalid}, {kind: tokenRightParen}}},
		{")", []token{{kind: tokenInvalid}}},
		{"({a}", []token{{kind: tokenLeftParen}, {kind: tokenCommand, text: "a"}, {kind: tokenInvalid}}},
		{"{a} & {b}", []token{
			{kind: tokenCommand, text: "a"},
			{kind: tokenInvalid},
			{kind: tokenCommand, text: "b"},
		}},
		{"{a} AND2 {b}", []token{
			{kind: tokenCommand, text: "a"},
			{kind: tokenOperator, text: "AND2"},
			{kind: tokenCommand, text: "b"},
		}},
		{"{a {b}", []token{{kind: tokenCommand, text: "a {b"}}},
		{"{unterminated", []token{{kind: tokenCommand, text: "unterminated"}}},
	}

	for _, td := range testdata {
		assert.Equal(t, td.Expected, tokenize(td.Expression), "unexpected tokens for %q", td.Expression)
	}
}

func TestToPostfix(t *testing.T) {
	t.Parallel()

	render := func(tokens []token) []string {
		var out []string
		for _, tok := range tokens {
			if tok.kind == tokenCommand || tok.kind == tokenOperator {
				out = append(out, tok.text)
			} else {
				out = append(out, tok.kind.String())
			}
		}

		return out
	}

	testdata := []struct {
		Expression string
		Expected   []string
	}{
		{"{a} or {b} and {c}", []string{"a", "b", "c", "and", "or"}},
		{"{a} and {b} or {c}", []string{"a", "b", "and", "c", "or"}},
		{"({a} or {b}) and {c}", []string{"a", "b", "or", "c", "and"}},
		{"{a} xor {b} xnor {c}", []string{"a", "b", "xor", "c", "xnor"}},
		{"{a} and {b} nand {c}", []string{"a", "b", "and", "c", "nand"}},
		{"not {a} and {b}", []string{"a", "not", "b", "and"}},
		{"{a} and not {b}", []string{"a", "b", "not", "and"}},
		{"not ({a} and {b})", []string{"a", "b", "and", "not"}},
		{"{a} ? {b}", []string{"a", "INVALID", "b"}},
	}

	for _, td := range testdata {
		assert.Equal(t, td.Expected, render(toPostfix(tokenize(td.Expression))), "unexpected postfix for %q", td.Expression)
	}
}

func TestParseExpression(t *testing.T) {
	t.Parallel()

	a, b, c := NewSingle(Contains{Text: "a"}), NewSingle(Contains{Text: "b"}), NewSingle(Contains{Text: "c"})

	t.Run("SingleCommand", func(t *testing.T) {
		expr, ok := ParseExpression(Key, `{contains "a"}`)
		require.True(t, ok)
		assert.Equal(t, a, expr)
	})

	t.Run("BareCommandIsWrapped", func(t *testing.T) {
		expr, ok := ParseExpression(Key, `contains "a"`)
		require.True(t, ok)
		assert.Equal(t, a, expr)
	})

	t.Run("BareAndWrappedInputsAgree", func(t *testing.T) {
		inputs := []string{
			`contains "a"`,
			`contains  "a"`,
			`kv-contains "k" "v"`,
			`numop ">" "5"`,
			`date after "2024-01-01"`,
			`contains "a" and contains "b"`,
			`not contains "a"`,
			"",
			"and",
			"(x)",
		}

		for _, typ := range Types {
			for _, in := range inputs {
				bare, bareOk := ParseExpression(typ, in)
				wrapped, wrappedOk := ParseExpression(typ, "{"+in+"}")
				assert.Equal(t, wrappedOk, bareOk, "%s filter %q", typ, in)
				assert.Equal(t, wrapped, bare, "%s filter %q", typ, in)
			}
		}
	})

	t.Run("OperatorPrecedence", func(t *testing.T) {
		expr, ok := ParseExpression(Key, `{contains "a"} or {contains "b"} and {contains "c"}`)
		require.True(t, ok)
		assert.Equal(t, mustChain(t, Or, a, mustChain(t, And, b, c)), expr)

		expr, ok = ParseExpression(Key, `({contains "a"} or {contains "b"}) and {contains "c"}`)
		require.True(t, ok)
		assert.Equal(t, mustChain(t, And, mustChain(t, Or, a, b), c), expr)

		expr, ok = ParseExpression(Key, `not {contains "a"} and {contains "b"}`)
		require.True(t, ok)
		assert.Equal(t, mustChain(t, And, NewNot(a), b), expr)

		expr, ok = ParseExpression(Key, `{contains "a"} nand not {contains "b"}`)
		require.True(t, ok)
		assert.Equal(t, mustChain(t, Nand, a, NewNot(b)), expr)
	})

	t.Run("EqualPrecedenceIsLeftAssociative", func(t *testing.T) {
		expr, ok := ParseExpression(Key, `{contains "a"} xor {contains "b"} or {contains "c"}`)
		require.True(t, ok)
		assert.Equal(t, mustChain(t, Or, mustChain(t, Xor, a, b), c), expr)

		expr, ok = ParseExpression(Key, `{contains "a"} nor {contains "b"} xnor {contains "c"}`)
		require.True(t, ok)
		assert.Equal(t, mustChain(t, Xnor, mustChain(t, Nor, a, b), c), expr)
	})

	t.Run("NestedParentheses", func(t *testing.T) {
		expr, ok := ParseExpression(Key, `not (({contains "a"}) and ({contains "b"} or {contains "c"}))`)
		require.True(t, ok)
		assert.Equal(t, NewNot(mustChain(t, And, a, mustChain(t, Or, b, c))), expr)
	})

	t.Run("InvalidExpressions", func(t *testing.T) {
		testdata := []string{
			"",
			"   ",
			"{}",
			"()",
			`({contains "a"}`,
			`{contains "a"})`,
			`({contains "a"}))`,
			`() {contains "a"}`,
			`{contains "a"} & {contains "b"}`,
			`{contains "a"} AND {contains "b"}`,
			`{contains "a"} implies {contains "b"}`,
			`{contains "a"} {contains "b"}`,
			`{contains "a"} and`,
			`and {contains "a"}`,
			`not`,
			`{contains "a"} and {kv-contains "k" "v"}`,
			`{contains "a" "b"}`,
			`contains "a" "b"`,
			`{ contains "a"}`,
		}

		for _, expr := range testdata {
			_, ok := ParseExpression(Key, expr)
			assert.False(t, ok, "parsing %q should fail", expr)
		}
	})

	t.Run("CommandsAreCheckedAgainstFilterType", func(t *testing.T) {
		_, ok := ParseExpression(Value, `{kv-contains "k" "v"} or {kv-numop "k" ">" "1"}`)
		assert.True(t, ok)

		_, ok = ParseExpression(Value, `{kv-contains "k" "v"} or {contains "v"}`)
		assert.False(t, ok)

		_, ok = ParseExpression(Key, `{contains "k"} and {date after "2024-01-01"}`)
		assert.False(t, ok)

		_, ok = ParseExpression(Date, `{contains "01"} and {date after "2024-01-01"}`)
		assert.True(t, ok)
	})
}

func mustChain(t *testing.T, op LogicalOp, left, right Expression) *Chain {
	chain, err := NewChain(op, left, right)
	require.NoError(t, err)

	return chain
}
