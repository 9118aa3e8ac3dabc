package ops

import "fmt"

// Operator identifies an arithmetic operation in the dispatch table.
type Operator int

const (
	// Add is a + b.
	Add Operator = iota
	// Sub is a - b.
	Sub
	// Mul is a * b.
	Mul
	// Div is a / b.
	Div
	// Pow is a ^ b.
	Pow
	// Min is the band/pixel-wise minimum.
	Min
	// Max is the band/pixel-wise maximum.
	Max
	// Neg is unary negation.
	Neg
)

var operatorNames = map[Operator]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Pow: "^",
	Min: "min",
	Max: "max",
	Neg: "neg",
}

func (o Operator) String() string {
	if n, ok := operatorNames[o]; ok {
		return n
	}
	return fmt.Sprintf("op(%d)", int(o))
}
