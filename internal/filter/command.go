package filter

import (
	"strconv"
	"strings"
	"time"
)

// Command is a single leaf predicate of an Expression.
//
// Each command provides one apply method per filter Type. A command reached by a Type it isn't
// meant for lets the data pass, since the parser only builds commands legal for the filter's Type.
type Command interface {
	applyDate(data EvalData) bool
	applyKey(data EvalData) bool
	applyValue(data EvalData) bool
}

// CompOperator is a numeric comparison operator.
type CompOperator string

const (
	GreaterThan CompOperator = ">"
	LessThan    CompOperator = "<"
)

// compare reports whether "value op number" holds.
func (op CompOperator) compare(value, number float64) bool {
	switch op {
	case GreaterThan:
		return value > number
	case LessThan:
		return value < number
	default:
		return false
	}
}

// DateOperator is a date comparison operator.
type DateOperator string

const (
	Before DateOperator = "before"
	After  DateOperator = "after"
)

// Contains matches if the subject contains Text.
// The subject is the date string for Date filters and the key title for Key filters.
type Contains struct {
	Text string
}

func (c Contains) applyDate(data EvalData) bool {
	return strings.Contains(data.Day.DateString, c.Text)
}

func (c Contains) applyKey(data EvalData) bool {
	return strings.Contains(data.Entry.Key, c.Text)
}

func (Contains) applyValue(EvalData) bool { return true }

// KeyValueContains matches if the value stored under Key contains Text.
// Days without such a key always match.
type KeyValueContains struct {
	Key  string
	Text string
}

func (KeyValueContains) applyDate(EvalData) bool { return true }

func (KeyValueContains) applyKey(EvalData) bool { return true }

func (c KeyValueContains) applyValue(data EvalData) bool {
	value, ok := data.Day.Lookup(c.Key)
	if !ok {
		return true
	}

	return strings.Contains(value, c.Text)
}

// NumOp compares the numeric part of the subject with Number.
// The subject is the date string for Date filters and the entry value for Key filters.
type NumOp struct {
	Op     CompOperator
	Number float64
}

func (c NumOp) applyDate(data EvalData) bool {
	return compareNumeric(data.Day.DateString, c.Op, c.Number)
}

func (c NumOp) applyKey(data EvalData) bool {
	return compareNumeric(data.Entry.Value, c.Op, c.Number)
}

func (NumOp) applyValue(EvalData) bool { return true }

// KeyValueNumOp compares the numeric part of the value stored under Key with Number.
// Days without such a key always match.
type KeyValueNumOp struct {
	Key    string
	Op     CompOperator
	Number float64
}

func (KeyValueNumOp) applyDate(EvalData) bool { return true }

func (KeyValueNumOp) applyKey(EvalData) bool { return true }

func (c KeyValueNumOp) applyValue(data EvalData) bool {
	value, ok := data.Day.Lookup(c.Key)
	if !ok {
		return true
	}

	return compareNumeric(value, c.Op, c.Number)
}

// DateOp matches days strictly before or after Date.
type DateOp struct {
	Op   DateOperator
	Date time.Time
}

func (c DateOp) applyDate(data EvalData) bool {
	switch c.Op {
	case Before:
		return data.Day.Date.Before(c.Date)
	case After:
		return data.Day.Date.After(c.Date)
	default:
		return false
	}
}

func (DateOp) applyKey(EvalData) bool { return true }

func (DateOp) applyValue(EvalData) bool { return true }

// numeric strips everything but digits and decimal points from s and parses the remainder.
func numeric(s string) (float64, bool) {
	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}

		return -1
	}, s)

	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// compareNumeric reports whether the numeric part of s compares to number by op.
// Values without a parsable numeric part never match.
func compareNumeric(s string, op CompOperator, number float64) bool {
	value, ok := numeric(s)
	if !ok {
		return false
	}

	return op.compare(value, number)
}

// Assert interface compliance.
var (
	_ Command = Contains{}
	_ Command = KeyValueContains{}
	_ Command = NumOp{}
	_ Command = KeyValueNumOp{}
	_ Command = DateOp{}
)
