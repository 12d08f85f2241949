package filter

import (
	"encoding/binary"
	"fmt"
	"github.com/cespare/xxhash/v2"
	"github.com/datasculptor/data-sculptor/internal/record"
	"math"
)

// ID identifies a filter by the structure of its expression.
// Textually different filters compiling to the same expression share the same ID.
type ID uint64

// String returns the ID as 16 hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Node discriminants written in front of each hashed node.
const (
	hashSingle byte = iota + 1
	hashNot
	hashChain
	hashContains
	hashKeyValueContains
	hashNumOp
	hashKeyValueNumOp
	hashDateOp
)

// Hash computes the structural hash of the given expression.
func Hash(expr Expression) ID {
	h := xxhash.New()
	hashExpression(h, expr)

	return ID(h.Sum64())
}

func hashExpression(h *xxhash.Digest, expr Expression) {
	switch e := expr.(type) {
	case *Single:
		_, _ = h.Write([]byte{hashSingle})
		hashCommand(h, e.cmd)
	case *Not:
		_, _ = h.Write([]byte{hashNot})
		hashExpression(h, e.expr)
	case *Chain:
		_, _ = h.Write([]byte{hashChain})
		hashString(h, string(e.op))
		hashExpression(h, e.left)
		hashExpression(h, e.right)
	default:
		panic(fmt.Sprintf("filter: cannot hash expression of type %T", expr))
	}
}

func hashCommand(h *xxhash.Digest, cmd Command) {
	switch c := cmd.(type) {
	case Contains:
		_, _ = h.Write([]byte{hashContains})
		hashString(h, c.Text)
	case KeyValueContains:
		_, _ = h.Write([]byte{hashKeyValueContains})
		hashString(h, c.Key)
		hashString(h, c.Text)
	case NumOp:
		_, _ = h.Write([]byte{hashNumOp})
		hashString(h, string(c.Op))
		hashFloat(h, c.Number)
	case KeyValueNumOp:
		_, _ = h.Write([]byte{hashKeyValueNumOp})
		hashString(h, c.Key)
		hashString(h, string(c.Op))
		hashFloat(h, c.Number)
	case DateOp:
		_, _ = h.Write([]byte{hashDateOp})
		hashString(h, string(c.Op))
		hashString(h, c.Date.Format(record.DateFormat))
	default:
		panic(fmt.Sprintf("filter: cannot hash command of type %T", cmd))
	}
}

// hashString writes s length prefixed, so that adjacent strings can't shift into each other.
func hashString(h *xxhash.Digest, s string) {
	var buf [binary.MaxVarintLen64]byte
	_, _ = h.Write(buf[:binary.PutUvarint(buf[:], uint64(len(s)))])
	_, _ = h.WriteString(s)
}

func hashFloat(h *xxhash.Digest, f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, _ = h.Write(buf[:])
}
