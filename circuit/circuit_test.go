//go:build unit
// +build unit

package circuit

import (
	"math"
	"testing"

	"github.com/qonform-team/qonform/gate"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestValidateAcceptsWellFormedCircuit(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	tests := []struct {
		name    string
		circuit *Circuit
	}{
		{
			name:    "basis prep and gate",
			circuit: New(2).PrepareBasis(1, 0).Apply("CNOT", 0, 1),
		},
		{
			name:    "state prep and parametric gate",
			circuit: New(1).PrepareState([]complex128{inv, inv}).ApplyParam("RX", []float64{0.5432}, 0),
		},
		{
			name:    "adjoint gate",
			circuit: New(1).Apply("Adjoint(S)", 0),
		},
		{
			name:    "three-angle rotation",
			circuit: New(1).ApplyParam("Rot", []float64{0.542, 1.3432, -0.654}, 0),
		},
		{
			name:    "raw unitary",
			circuit: New(2).ApplyUnitary(gate.Identity(4), 0, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, tt.circuit.Validate(gate.DefaultRegistry()))
		})
	}
}

func TestValidateRejectsMalformedCircuit(t *testing.T) {
	tests := []struct {
		name    string
		circuit *Circuit
		errIn   string
	}{
		{
			name:    "no qubits",
			circuit: New(0).Apply("PauliX", 0),
			errIn:   "needs at least one qubit",
		},
		{
			name:    "no operations",
			circuit: New(1),
			errIn:   "no operations",
		},
		{
			name:    "unknown gate",
			circuit: New(1).Apply("Nonsense", 0),
			errIn:   "not registered",
		},
		{
			name:    "prep not first",
			circuit: New(1).Apply("PauliX", 0).PrepareBasis(0),
			errIn:   "must be the first operation",
		},
		{
			name:    "basis bits do not cover register",
			circuit: New(3).PrepareBasis(0, 1),
			errIn:   "basis prep has 2 bit(s) for 3 qubit(s)",
		},
		{
			name:    "basis bit out of range",
			circuit: New(2).PrepareBasis(0, 2),
			errIn:   "must be 0 or 1",
		},
		{
			name:    "unnormalized state",
			circuit: New(1).PrepareState([]complex128{1, 1}),
			errIn:   "must be normalized",
		},
		{
			name:    "state too short for register",
			circuit: New(2).PrepareState([]complex128{1, 0}),
			errIn:   "does not cover 2 qubit(s)",
		},
		{
			name:    "wire out of range",
			circuit: New(1).Apply("PauliX", 1),
			errIn:   "out of range",
		},
		{
			name:    "duplicate wires",
			circuit: New(2).Apply("CNOT", 0, 0),
			errIn:   "listed twice",
		},
		{
			name:    "wrong wire arity",
			circuit: New(2).Apply("CNOT", 0),
			errIn:   "acts on 2 wire(s), got 1",
		},
		{
			name:    "wrong param arity",
			circuit: New(1).ApplyParam("RX", []float64{0.1, 0.2}, 0),
			errIn:   "takes 1 parameter(s), got 2",
		},
		{
			name:    "non-unitary matrix",
			circuit: New(1).ApplyUnitary(mat.NewCDense(2, 2, []complex128{1, 0, 0, 2}), 0),
			errIn:   "not unitary",
		},
		{
			name:    "unitary wire count mismatch",
			circuit: New(2).ApplyUnitary(gate.Identity(4), 0),
			errIn:   "acts on 2 wire(s), got 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.circuit.Validate(gate.DefaultRegistry())
			assert.NotNil(t, err)
			assert.Contains(t, err.Error(), tt.errIn)
		})
	}
}

func TestGateNames(t *testing.T) {
	c := New(2).PrepareBasis(0, 0).Apply("Hadamard", 0).Apply("CNOT", 0, 1)
	assert.Equal(t, []string{"Hadamard", "CNOT"}, c.GateNames())
}

func TestResolveGateFollowsAdjointNames(t *testing.T) {
	c := New(1).Apply("Adjoint(S)", 0)
	g, err := ResolveGate(gate.DefaultRegistry(), c.Ops[0])
	assert.Nil(t, err)
	assert.Equal(t, "Adjoint(S)", g.Name)

	m, err := g.Matrix()
	assert.Nil(t, err)
	assert.Equal(t, complex128(-1i), m.At(1, 1))
}

func TestResolveGateRejectsNonGateOps(t *testing.T) {
	c := New(1).PrepareBasis(0)
	_, err := ResolveGate(gate.DefaultRegistry(), c.Ops[0])
	assert.NotNil(t, err)
}
