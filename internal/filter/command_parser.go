package filter

import (
	"github.com/datasculptor/data-sculptor/internal/record"
	"strings"
)

// keyword describes a command keyword, the filter types it's legal for and how to parse its arguments.
type keyword struct {
	name  string
	types []Type
	parse func(args string) (Command, bool)
}

// keywords lists all known command keywords.
var keywords = []keyword{
	{name: "contains", types: []Type{Key, Date}, parse: parseContains},
	{name: "kv-contains", types: []Type{Value}, parse: parseKeyValueContains},
	{name: "numop", types: []Type{Key, Date}, parse: parseNumOp},
	{name: "kv-numop", types: []Type{Value}, parse: parseKeyValueNumOp},
	{name: "date", types: []Type{Date}, parse: parseDate},
}

// ParseCommand parses a single command such as `contains "foo"` for a filter of the given Type.
//
// Returns false if the command is malformed or not allowed for the given Type.
func ParseCommand(t Type, text string) (Command, bool) {
	for _, kw := range keywords {
		if !strings.HasPrefix(text, kw.name) {
			continue
		}

		if !kw.allows(t) {
			return nil, false
		}

		return kw.parse(text[len(kw.name):])
	}

	return nil, false
}

func (kw keyword) allows(t Type) bool {
	for _, allowed := range kw.types {
		if allowed == t {
			return true
		}
	}

	return false
}

func parseContains(args string) (Command, bool) {
	text, ok := lastQuoted(args)
	if !ok {
		return nil, false
	}

	return Contains{Text: text}, true
}

func parseKeyValueContains(args string) (Command, bool) {
	key, rest, ok := quoted(args)
	if !ok {
		return nil, false
	}

	text, ok := lastQuoted(rest)
	if !ok {
		return nil, false
	}

	return KeyValueContains{Key: key, Text: text}, true
}

func parseNumOp(args string) (Command, bool) {
	op, number, ok := parseComparison(args)
	if !ok {
		return nil, false
	}

	return NumOp{Op: op, Number: number}, true
}

func parseKeyValueNumOp(args string) (Command, bool) {
	key, rest, ok := quoted(args)
	if !ok {
		return nil, false
	}

	op, number, ok := parseComparison(rest)
	if !ok {
		return nil, false
	}

	return KeyValueNumOp{Key: key, Op: op, Number: number}, true
}

// parseComparison parses the ` "<op>" "<number>"` tail shared by numop and kv-numop.
//
// Like values, the number is stripped to its digits and decimal points before parsing.
func parseComparison(args string) (CompOperator, float64, bool) {
	rawOp, rest, ok := quoted(args)
	if !ok {
		return "", 0, false
	}

	op := CompOperator(rawOp)
	if op != GreaterThan && op != LessThan {
		return "", 0, false
	}

	rawNumber, ok := lastQuoted(rest)
	if !ok {
		return "", 0, false
	}

	// The number is normalized the same way as the values it's compared with.
	number, ok := numeric(rawNumber)
	if !ok {
		return "", 0, false
	}

	return op, number, true
}

func parseDate(args string) (Command, bool) {
	for _, op := range []DateOperator{Before, After} {
		prefix := " " + string(op)
		if !strings.HasPrefix(args, prefix) {
			continue
		}

		rawDate, ok := lastQuoted(args[len(prefix):])
		if !ok {
			return nil, false
		}

		date, err := record.ParseDate(rawDate)
		if err != nil {
			return nil, false
		}

		return DateOp{Op: op, Date: date}, true
	}

	return nil, false
}
