// Package circuit builds the probe circuits the suite sends to devices:
// an optional state preparation, the gates under test, and an implicit
// terminal probability measurement over all wires.
package circuit

import (
	"fmt"

	"github.com/qonform-team/qonform/common"
	"github.com/qonform-team/qonform/gate"
	"github.com/qonform-team/qonform/qstate"
	"gonum.org/v1/gonum/mat"
)

type OpKind int

const (
	BasisPrep OpKind = iota
	StatePrep
	GateOp
	UnitaryOp
)

func (k OpKind) String() string {
	switch k {
	case BasisPrep:
		return "basis_prep"
	case StatePrep:
		return "state_prep"
	case GateOp:
		return "gate"
	case UnitaryOp:
		return "unitary"
	default:
		return "unknown"
	}
}

type Operation struct {
	Kind   OpKind
	Gate   string
	Params []float64
	Wires  []int

	Bits       []int
	Amplitudes qstate.Vector
	Matrix     *mat.CDense
}

type Circuit struct {
	NumQubits int
	Ops       []Operation
}

func New(numQubits int) *Circuit {
	return &Circuit{NumQubits: numQubits}
}

// PrepareBasis loads the computational basis state given by per-wire bits,
// wire 0 first.
func (c *Circuit) PrepareBasis(bits ...int) *Circuit {
	c.Ops = append(c.Ops, Operation{Kind: BasisPrep, Bits: bits})
	return c
}

// PrepareState loads an arbitrary normalized amplitude vector.
func (c *Circuit) PrepareState(amps []complex128) *Circuit {
	v := make(qstate.Vector, len(amps))
	copy(v, amps)
	c.Ops = append(c.Ops, Operation{Kind: StatePrep, Amplitudes: v})
	return c
}

func (c *Circuit) Apply(name string, wires ...int) *Circuit {
	c.Ops = append(c.Ops, Operation{Kind: GateOp, Gate: name, Wires: wires})
	return c
}

func (c *Circuit) ApplyParam(name string, params []float64, wires ...int) *Circuit {
	c.Ops = append(c.Ops, Operation{Kind: GateOp, Gate: name, Params: params, Wires: wires})
	return c
}

// ApplyUnitary injects a raw unitary over the listed wires.
func (c *Circuit) ApplyUnitary(u *mat.CDense, wires ...int) *Circuit {
	c.Ops = append(c.Ops, Operation{Kind: UnitaryOp, Matrix: u, Wires: wires})
	return c
}

// Validate rejects malformed circuits before anything touches a device.
// Every violation is a construction error: the case fails immediately, no
// retry.
func (c *Circuit) Validate(reg *gate.Registry) error {
	if c.NumQubits < 1 {
		return fmt.Errorf("circuit needs at least one qubit, got %d", c.NumQubits)
	}
	if len(c.Ops) == 0 {
		return fmt.Errorf("circuit has no operations")
	}
	for i, op := range c.Ops {
		if err := c.validateOp(i, op, reg); err != nil {
			return err
		}
	}
	return nil
}

func (c *Circuit) validateOp(i int, op Operation, reg *gate.Registry) error {
	switch op.Kind {
	case BasisPrep, StatePrep:
		if i != 0 {
			return fmt.Errorf("op %d: %s must be the first operation", i, op.Kind)
		}
	}
	switch op.Kind {
	case BasisPrep:
		if len(op.Bits) != c.NumQubits {
			return fmt.Errorf("op %d: basis prep has %d bit(s) for %d qubit(s)",
				i, len(op.Bits), c.NumQubits)
		}
		for w, b := range op.Bits {
			if b != 0 && b != 1 {
				return fmt.Errorf("op %d: bit for wire %d is %d, must be 0 or 1", i, w, b)
			}
		}
	case StatePrep:
		if _, err := qstate.NewFromAmplitudes(op.Amplitudes); err != nil {
			return fmt.Errorf("op %d: %s", i, err)
		}
		if len(op.Amplitudes) != 1<<uint(c.NumQubits) {
			return fmt.Errorf("op %d: state of length %d does not cover %d qubit(s)",
				i, len(op.Amplitudes), c.NumQubits)
		}
	case GateOp:
		g, err := lookupWithAdjoint(reg, op.Gate)
		if err != nil {
			return fmt.Errorf("op %d: %s", i, err)
		}
		if len(op.Wires) != g.NumWires {
			return fmt.Errorf("op %d: gate %s acts on %d wire(s), got %d",
				i, op.Gate, g.NumWires, len(op.Wires))
		}
		if len(op.Params) != g.NumParams {
			return fmt.Errorf("op %d: gate %s takes %d parameter(s), got %d",
				i, op.Gate, g.NumParams, len(op.Params))
		}
		if err := c.validateWires(i, op.Wires); err != nil {
			return err
		}
	case UnitaryOp:
		r, cols := op.Matrix.Dims()
		if r != cols {
			return fmt.Errorf("op %d: unitary is %dx%d, must be square", i, r, cols)
		}
		n, err := gate.WiresFromDim(r)
		if err != nil {
			return fmt.Errorf("op %d: %s", i, err)
		}
		if n != len(op.Wires) {
			return fmt.Errorf("op %d: %dx%d unitary acts on %d wire(s), got %d",
				i, r, r, n, len(op.Wires))
		}
		if !gate.IsUnitary(op.Matrix) {
			return fmt.Errorf("op %d: matrix is not unitary", i)
		}
		if err := c.validateWires(i, op.Wires); err != nil {
			return err
		}
	default:
		return fmt.Errorf("op %d: unknown operation kind %d", i, op.Kind)
	}
	return nil
}

func (c *Circuit) validateWires(i int, wires []int) error {
	seen := map[int]struct{}{}
	for _, w := range wires {
		if w < 0 || w >= c.NumQubits {
			return fmt.Errorf("op %d: wire %d is out of range for %d qubit(s)",
				i, w, c.NumQubits)
		}
		if _, ok := seen[w]; ok {
			return fmt.Errorf("op %d: wire %d is listed twice", i, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// Run evolves the all-zero state through the circuit and returns the final
// state vector. Matrices come from the registry, so the result is the exact
// arithmetic a correct device has to reproduce.
func (c *Circuit) Run(reg *gate.Registry) (qstate.Vector, error) {
	v := qstate.NewZero(c.NumQubits)
	for i, op := range c.Ops {
		next, err := c.applyOp(v, op, reg)
		if err != nil {
			return nil, fmt.Errorf("op %d: %s", i, err)
		}
		v = next
	}
	return v, nil
}

func (c *Circuit) applyOp(v qstate.Vector, op Operation, reg *gate.Registry) (qstate.Vector, error) {
	switch op.Kind {
	case BasisPrep:
		index, err := common.BasisIndex(op.Bits)
		if err != nil {
			return nil, err
		}
		return qstate.NewBasis(c.NumQubits, index)
	case StatePrep:
		return qstate.NewFromAmplitudes(op.Amplitudes)
	case GateOp:
		g, err := lookupWithAdjoint(reg, op.Gate)
		if err != nil {
			return nil, err
		}
		m, err := g.Matrix(op.Params...)
		if err != nil {
			return nil, err
		}
		if err := qstate.ApplyMatrix(v, m, op.Wires); err != nil {
			return nil, err
		}
		return v, nil
	case UnitaryOp:
		if err := qstate.ApplyMatrix(v, op.Matrix, op.Wires); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown operation kind %d", op.Kind)
	}
}

// GateNames lists the registry names used by the circuit, adjoints
// included, for capability checks.
func (c *Circuit) GateNames() []string {
	names := []string{}
	for _, op := range c.Ops {
		if op.Kind == GateOp {
			names = append(names, op.Gate)
		}
	}
	return names
}

// lookupWithAdjoint resolves Adjoint(X) names against the base registry.
func lookupWithAdjoint(reg *gate.Registry, name string) (gate.Gate, error) {
	if base, ok := adjointBase(name); ok {
		g, err := reg.Lookup(base)
		if err != nil {
			return gate.Gate{}, err
		}
		return g.Adjoint(), nil
	}
	return reg.Lookup(name)
}

func adjointBase(name string) (string, bool) {
	const prefix, suffix = "Adjoint(", ")"
	if len(name) > len(prefix)+len(suffix) &&
		name[:len(prefix)] == prefix && name[len(name)-1:] == suffix {
		return name[len(prefix) : len(name)-1], true
	}
	return "", false
}

// ResolveGate returns the effective gate descriptor for a gate op,
// following adjoint names.
func ResolveGate(reg *gate.Registry, op Operation) (gate.Gate, error) {
	if op.Kind != GateOp {
		return gate.Gate{}, fmt.Errorf("operation %s carries no gate", op.Kind)
	}
	return lookupWithAdjoint(reg, op.Gate)
}
