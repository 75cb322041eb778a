package circuit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnrepresentableOp marks circuits that cannot be rendered as OpenQASM
// text: arbitrary state preparations and raw unitaries have no portable
// statement form.
var ErrUnrepresentableOp = errors.New("operation has no OpenQASM form")

// openQASM statement names per gate.
var qasmNames = map[string]string{
	"PauliX":        "x",
	"PauliY":        "y",
	"PauliZ":        "z",
	"Hadamard":      "h",
	"S":             "s",
	"SX":            "v",
	"T":             "t",
	"Adjoint(S)":    "si",
	"Adjoint(T)":    "ti",
	"PhaseShift":    "phaseshift",
	"RX":            "rx",
	"RY":            "ry",
	"RZ":            "rz",
	"Rot":           "rot",
	"CNOT":          "cnot",
	"CY":            "cy",
	"CZ":            "cz",
	"SWAP":          "swap",
	"ISWAP":         "iswap",
	"CPhaseShift":   "cphaseshift",
	"CPhaseShift00": "cphaseshift00",
	"CPhaseShift01": "cphaseshift01",
	"CPhaseShift10": "cphaseshift10",
	"PSWAP":         "pswap",
	"XX":            "xx",
	"XY":            "xy",
	"YY":            "yy",
	"ZZ":            "zz",
	"CSWAP":         "cswap",
	"Toffoli":       "ccnot",
}

// ToQASM renders the circuit as OpenQASM 3.0 for logs and reports.
func (c *Circuit) ToQASM() (string, error) {
	lines := []string{
		"OPENQASM 3.0;",
		fmt.Sprintf("qubit[%d] q;", c.NumQubits),
		"",
	}
	for i, op := range c.Ops {
		stmts, err := opStatements(op)
		if err != nil {
			return "", fmt.Errorf("op %d: %w", i, err)
		}
		lines = append(lines, stmts...)
	}
	return strings.Join(lines, "\n"), nil
}

func opStatements(op Operation) ([]string, error) {
	switch op.Kind {
	case BasisPrep:
		stmts := []string{}
		for w, b := range op.Bits {
			if b == 1 {
				stmts = append(stmts, fmt.Sprintf("x q[%d];", w))
			}
		}
		return stmts, nil
	case GateOp:
		return []string{gateStatement(op)}, nil
	case StatePrep, UnitaryOp:
		return nil, ErrUnrepresentableOp
	default:
		return nil, fmt.Errorf("unknown operation kind %d", op.Kind)
	}
}

func gateStatement(op Operation) string {
	name, ok := qasmNames[op.Gate]
	if !ok {
		if base, isAdjoint := adjointBase(op.Gate); isAdjoint {
			if baseName, found := qasmNames[base]; found {
				name = "inv @ " + baseName
			} else {
				name = "inv @ " + strings.ToLower(base)
			}
		} else {
			name = strings.ToLower(op.Gate)
		}
	}
	var b strings.Builder
	b.WriteString(name)
	if len(op.Params) > 0 {
		args := make([]string, len(op.Params))
		for i, p := range op.Params {
			args[i] = strconv.FormatFloat(p, 'g', -1, 64)
		}
		b.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	targets := make([]string, len(op.Wires))
	for i, w := range op.Wires {
		targets[i] = fmt.Sprintf("q[%d]", w)
	}
	b.WriteString(" " + strings.Join(targets, ", ") + ";")
	return b.String()
}
