// Package expr is the expression-evaluator boundary of the graph core.
//
// The textual grammar and tokenizer are external collaborators: HCL's
// hclsyntax parser produces the AST, and this package walks it, sending
// every binary and unary operator through the same operator dispatch table
// a node behaviour uses, wrapping and unwrapping Datum exactly as a
// behaviour would.
package expr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/ops"
	"github.com/spectramap/cubegraph/internal/source"
	"github.com/zclconf/go-cty/cty"
)

// Func is a named function callable from an expression.
type Func func(args []datum.Datum) (datum.Datum, error)

// Evaluator evaluates parsed expressions over Datum environments.
type Evaluator struct {
	table *ops.Table
	funcs map[string]Func
}

// New creates an evaluator over the given dispatch table, with the
// standard pow/min/max functions installed (HCL's grammar has no operator
// spellings for these).
func New(t *ops.Table) *Evaluator {
	e := &Evaluator{table: t, funcs: make(map[string]Func)}
	binary := func(op ops.Operator) Func {
		return func(args []datum.Datum) (datum.Datum, error) {
			if len(args) != 2 {
				return datum.Datum{}, fmt.Errorf("%s expects 2 arguments, got %d", op, len(args))
			}
			return t.Apply(op, args[0], args[1])
		}
	}
	e.funcs["pow"] = binary(ops.Pow)
	e.funcs["min"] = binary(ops.Min)
	e.funcs["max"] = binary(ops.Max)
	return e
}

// RegisterFunc adds a named function. Duplicate names are a programmer
// error and panic.
func (e *Evaluator) RegisterFunc(name string, fn Func) {
	if _, exists := e.funcs[name]; exists {
		panic(fmt.Sprintf("expression function %q already registered", name))
	}
	e.funcs[name] = fn
}

// Eval parses and evaluates an expression. Identifiers resolve through
// env; numeric literals become Number datums with empty provenance, so a
// result's provenance is exactly the union contributed by the env values
// that reached it.
func (e *Evaluator) Eval(src string, env map[string]datum.Datum) (datum.Datum, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(src), "expr", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return datum.Datum{}, fmt.Errorf("parsing expression %q: %w", src, diags)
	}
	return e.walk(parsed, env)
}

var binaryOps = map[*hclsyntax.Operation]ops.Operator{
	hclsyntax.OpAdd:      ops.Add,
	hclsyntax.OpSubtract: ops.Sub,
	hclsyntax.OpMultiply: ops.Mul,
	hclsyntax.OpDivide:   ops.Div,
}

func (e *Evaluator) walk(expr hclsyntax.Expression, env map[string]datum.Datum) (datum.Datum, error) {
	switch x := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		v := x.Val
		if v.IsNull() || !v.Type().Equals(cty.Number) {
			return datum.Datum{}, fmt.Errorf("only numeric literals are allowed in expressions")
		}
		f, _ := v.AsBigFloat().Float64()
		return datum.NewNumber(f, 0, 0, source.Empty()), nil

	case *hclsyntax.ScopeTraversalExpr:
		name := x.Traversal.RootName()
		d, ok := env[name]
		if !ok {
			return datum.Datum{}, fmt.Errorf("unknown identifier %q in expression", name)
		}
		if d.IsNull() {
			return datum.Datum{}, fmt.Errorf("identifier %q holds no value", name)
		}
		return d, nil

	case *hclsyntax.ParenthesesExpr:
		return e.walk(x.Expression, env)

	case *hclsyntax.UnaryOpExpr:
		if x.Op != hclsyntax.OpNegate {
			return datum.Datum{}, fmt.Errorf("unsupported unary operator in expression")
		}
		operand, err := e.walk(x.Val, env)
		if err != nil {
			return datum.Datum{}, err
		}
		return e.table.ApplyUnary(ops.Neg, operand)

	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOps[x.Op]
		if !ok {
			return datum.Datum{}, fmt.Errorf("unsupported binary operator in expression")
		}
		left, err := e.walk(x.LHS, env)
		if err != nil {
			return datum.Datum{}, err
		}
		right, err := e.walk(x.RHS, env)
		if err != nil {
			return datum.Datum{}, err
		}
		return e.table.Apply(op, left, right)

	case *hclsyntax.FunctionCallExpr:
		fn, ok := e.funcs[x.Name]
		if !ok {
			return datum.Datum{}, fmt.Errorf("unknown function %q in expression", x.Name)
		}
		args := make([]datum.Datum, len(x.Args))
		for i, argExpr := range x.Args {
			arg, err := e.walk(argExpr, env)
			if err != nil {
				return datum.Datum{}, err
			}
			args[i] = arg
		}
		return fn(args)

	default:
		return datum.Datum{}, fmt.Errorf("unsupported expression construct %T", expr)
	}
}
