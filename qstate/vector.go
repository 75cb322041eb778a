// Package qstate holds dense state vectors and the amplitude arithmetic the
// simulator and the oracle share. Wire 0 is the most significant bit of a
// basis index: bits (0,0,1,0) over four wires address index 2.
package qstate

import (
	"fmt"
	"math"
	"math/cmplx"
)

// NormTol bounds the deviation from unit norm accepted for prepared states.
const NormTol = 1e-9

type Vector []complex128

// NewZero prepares |0...0>.
func NewZero(numQubits int) Vector {
	v := make(Vector, 1<<uint(numQubits))
	v[0] = 1
	return v
}

func NewBasis(numQubits, index int) (Vector, error) {
	dim := 1 << uint(numQubits)
	if index < 0 || index >= dim {
		return nil, fmt.Errorf("basis index %d is out of range for %d qubit(s)", index, numQubits)
	}
	v := make(Vector, dim)
	v[index] = 1
	return v, nil
}

// NewFromAmplitudes copies an arbitrary prepared state, rejecting vectors
// whose length is not a power of two or whose norm is off unit.
func NewFromAmplitudes(amps []complex128) (Vector, error) {
	n, err := numQubitsForDim(len(amps))
	if err != nil {
		return nil, err
	}
	v := make(Vector, len(amps))
	copy(v, amps)
	if norm := v.Norm(); math.Abs(norm-1) > NormTol {
		return nil, fmt.Errorf("state over %d qubit(s) has norm %g, must be normalized", n, norm)
	}
	return v, nil
}

func (v Vector) NumQubits() int {
	n, err := numQubitsForDim(len(v))
	if err != nil {
		return 0
	}
	return n
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// Probabilities returns the squared magnitude of every amplitude.
func (v Vector) Probabilities() []float64 {
	probs := make([]float64, len(v))
	for i, a := range v {
		m := cmplx.Abs(a)
		probs[i] = m * m
	}
	return probs
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func numQubitsForDim(dim int) (int, error) {
	if dim < 2 {
		return 0, fmt.Errorf("state length %d is too small", dim)
	}
	n := 0
	for d := dim; d > 1; d >>= 1 {
		if d&1 != 0 {
			return 0, fmt.Errorf("state length %d is not a power of two", dim)
		}
		n++
	}
	return n, nil
}
