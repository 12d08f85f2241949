package filter

import (
	"fmt"
	"github.com/datasculptor/data-sculptor/internal/record"
)

// Type is the axis a filter is defined against.
// It decides which commands are legal in a filter and how its evaluation result is applied to the data.
type Type int

const (
	// Date filters decide whether a whole day is shown, based on its date.
	Date Type = iota
	// Key filters decide which key/value pairs of a day are shown.
	Key
	// Value filters decide whether a whole day is shown, based on its values.
	Value
)

// Types lists all filter types in display order.
var Types = []Type{Date, Key, Value}

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case Date:
		return "date"
	case Key:
		return "key"
	case Value:
		return "value"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType parses the textual representation of a Type as returned by Type.String.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if t.String() == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("invalid filter type %q", s)
}

// EvalData bundles everything an Expression needs to evaluate a single key/value pair of a day.
//
// It only borrows the day and is meant to be built right before evaluating an expression.
type EvalData struct {
	Day   *record.Day
	Entry record.Entry
	Type  Type
}

// Expression is a boolean expression tree with commands as its leaves.
// Expressions are immutable once built.
type Expression interface {
	// Eval evaluates the expression against the given data.
	// Returns false when the data is filtered out, true otherwise.
	Eval(data EvalData) bool

	// isExpression restricts implementations to this package, so that every Expression can be hashed.
	isExpression()
}

// LogicalOp is a binary logical operator joining two expressions.
type LogicalOp string

// List of the supported binary logical operators.
const (
	And  LogicalOp = "and"
	Or   LogicalOp = "or"
	Xor  LogicalOp = "xor"
	Nor  LogicalOp = "nor"
	Nand LogicalOp = "nand"
	Xnor LogicalOp = "xnor"
)

// Single is an expression consisting of a single command.
type Single struct {
	cmd Command
}

// NewSingle wraps the given command into an Expression.
func NewSingle(cmd Command) *Single {
	return &Single{cmd: cmd}
}

// Command returns the wrapped command.
func (s *Single) Command() Command {
	return s.cmd
}

// Eval dispatches to the command based on the type of the evaluating filter.
func (s *Single) Eval(data EvalData) bool {
	switch data.Type {
	case Date:
		return s.cmd.applyDate(data)
	case Key:
		return s.cmd.applyKey(data)
	case Value:
		return s.cmd.applyValue(data)
	default:
		return true
	}
}

func (*Single) isExpression() {}

// Not negates its inner expression.
type Not struct {
	expr Expression
}

// NewNot returns an expression negating the given one.
func NewNot(expr Expression) *Not {
	return &Not{expr: expr}
}

// Eval implements the Expression interface.
func (n *Not) Eval(data EvalData) bool {
	return !n.expr.Eval(data)
}

func (*Not) isExpression() {}

// Chain joins two expressions by a LogicalOp.
type Chain struct {
	op          LogicalOp
	left, right Expression
}

// NewChain returns a new Chain joining left and right by the given operator.
// Returns an error if the operator isn't one of the supported LogicalOp values.
func NewChain(op LogicalOp, left, right Expression) (*Chain, error) {
	switch op {
	case And, Or, Xor, Nor, Nand, Xnor:
		return &Chain{op: op, left: left, right: right}, nil
	default:
		return nil, fmt.Errorf("invalid logical operator provided: %q", op)
	}
}

// Op returns the operator of this chain.
func (c *Chain) Op() LogicalOp {
	return c.op
}

// Eval evaluates both operands and combines them based on the chain operator.
func (c *Chain) Eval(data EvalData) bool {
	left, right := c.left.Eval(data), c.right.Eval(data)

	switch c.op {
	case And:
		return left && right
	case Or:
		return left || right
	case Xor:
		return left != right
	case Nor:
		return !(left || right)
	case Nand:
		return !(left && right)
	case Xnor:
		return left == right
	default:
		// Unreachable, NewChain doesn't allow other operators.
		return false
	}
}

func (*Chain) isExpression() {}

// Assert interface compliance.
var (
	_ Expression = (*Single)(nil)
	_ Expression = (*Not)(nil)
	_ Expression = (*Chain)(nil)
)
