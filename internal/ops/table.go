package ops

import (
	"errors"
	"fmt"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/source"
)

// ErrUnsupportedOperation is returned when no implementation is registered
// for the requested operator and operand kinds.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// BinaryFunc implements one operator for one pair of operand kinds. It
// must combine the operands' provenance into its result.
type BinaryFunc func(a, b datum.Datum) (datum.Datum, error)

// UnaryFunc implements one operator for one operand kind.
type UnaryFunc func(a datum.Datum) (datum.Datum, error)

type binKey struct {
	op   Operator
	l, r datum.Kind
}

type unKey struct {
	op Operator
	k  datum.Kind
}

// Table maps (operator, kind, kind) to implementations. Registration is
// additive and open; a module defining a new kind registers its own pairs.
type Table struct {
	bin map[binKey]BinaryFunc
	un  map[unKey]UnaryFunc
}

// NewTable returns an empty dispatch table.
func NewTable() *Table {
	return &Table{
		bin: make(map[binKey]BinaryFunc),
		un:  make(map[unKey]UnaryFunc),
	}
}

// Register adds a binary implementation. Registering the same triple twice
// is a programmer error and panics, as with duplicate handler names in a
// handler registry.
func (t *Table) Register(op Operator, left, right datum.Kind, fn BinaryFunc) {
	k := binKey{op, left, right}
	if _, exists := t.bin[k]; exists {
		panic(fmt.Sprintf("binary op %s (%s,%s) already registered", op, left, right))
	}
	t.bin[k] = fn
}

// RegisterUnary adds a unary implementation.
func (t *Table) RegisterUnary(op Operator, kind datum.Kind, fn UnaryFunc) {
	k := unKey{op, kind}
	if _, exists := t.un[k]; exists {
		panic(fmt.Sprintf("unary op %s (%s) already registered", op, kind))
	}
	t.un[k] = fn
}

// Supports reports whether a binary implementation is registered.
func (t *Table) Supports(op Operator, left, right datum.Kind) bool {
	_, ok := t.bin[binKey{op, left, right}]
	return ok
}

// Apply evaluates a binary operator. Raw Go scalars (float64, int) are
// wrapped as Number datums with empty provenance before lookup; a missing
// entry fails with ErrUnsupportedOperation naming the operator and kinds.
func (t *Table) Apply(op Operator, a, b any) (datum.Datum, error) {
	da, err := wrapOperand(a)
	if err != nil {
		return datum.Datum{}, err
	}
	db, err := wrapOperand(b)
	if err != nil {
		return datum.Datum{}, err
	}
	if da.IsNull() || db.IsNull() {
		return datum.Datum{}, fmt.Errorf("operator %s: null operand", op)
	}
	fn, ok := t.bin[binKey{op, da.Kind, db.Kind}]
	if !ok {
		return datum.Datum{}, fmt.Errorf("%w: %s (%s, %s)", ErrUnsupportedOperation, op, da.Kind, db.Kind)
	}
	return fn(da, db)
}

// ApplyUnary evaluates a unary operator, mirroring Apply.
func (t *Table) ApplyUnary(op Operator, a any) (datum.Datum, error) {
	da, err := wrapOperand(a)
	if err != nil {
		return datum.Datum{}, err
	}
	if da.IsNull() {
		return datum.Datum{}, fmt.Errorf("operator %s: null operand", op)
	}
	fn, ok := t.un[unKey{op, da.Kind}]
	if !ok {
		return datum.Datum{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedOperation, op, da.Kind)
	}
	return fn(da)
}

// wrapOperand lifts raw scalars into Number datums with empty provenance.
func wrapOperand(v any) (datum.Datum, error) {
	switch x := v.(type) {
	case datum.Datum:
		return x, nil
	case float64:
		return datum.NewNumber(x, 0, 0, source.Empty()), nil
	case int:
		return datum.NewNumber(float64(x), 0, 0, source.Empty()), nil
	default:
		return datum.Datum{}, fmt.Errorf("cannot use %T as an operand", v)
	}
}

// defaultTable is the process-wide table used by node behaviours and the
// expression evaluator. Kind modules add their entries at init time.
var defaultTable = NewTable()

// Default returns the process-wide dispatch table.
func Default() *Table { return defaultTable }

// Apply evaluates a binary operator against the default table.
func Apply(op Operator, a, b any) (datum.Datum, error) {
	return defaultTable.Apply(op, a, b)
}

// ApplyUnary evaluates a unary operator against the default table.
func ApplyUnary(op Operator, a any) (datum.Datum, error) {
	return defaultTable.ApplyUnary(op, a)
}
