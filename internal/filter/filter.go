package filter

import (
	"errors"
	"fmt"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidExpression is returned when a filter expression can't be parsed.
var ErrInvalidExpression = errors.New("invalid filter expression")

// Filter is a named, compiled filter expression of a given Type.
//
// Filters are never modified after creation. Editing a filter means replacing it by a new one.
type Filter struct {
	Title      string // Title is the expression text the filter was created from.
	Type       Type
	Expression Expression
	ID         ID
}

// New compiles the given expression text into a Filter of the given Type.
func New(t Type, title string) (*Filter, error) {
	expr, ok := ParseExpression(t, title)
	if !ok {
		return nil, fmt.Errorf("%w for %s filter: %q", ErrInvalidExpression, t, title)
	}

	return &Filter{Title: title, Type: t, Expression: expr, ID: Hash(expr)}, nil
}

// MarshalLogObject implements the zapcore.ObjectMarshaler interface.
func (f *Filter) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", f.ID.String())
	encoder.AddString("type", f.Type.String())
	encoder.AddString("title", f.Title)

	return nil
}
