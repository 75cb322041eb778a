//go:build unit
// +build unit

package qstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewZero(t *testing.T) {
	v := NewZero(3)
	assert.Len(t, v, 8)
	assert.Equal(t, complex128(1), v[0])
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
}

func TestNewBasis(t *testing.T) {
	tests := []struct {
		name      string
		numQubits int
		index     int
		wantError bool
	}{
		{
			name:      "index 2 over 4 qubits",
			numQubits: 4,
			index:     2,
		},
		{
			name:      "last index",
			numQubits: 2,
			index:     3,
		},
		{
			name:      "index out of range",
			numQubits: 2,
			index:     4,
			wantError: true,
		},
		{
			name:      "negative index",
			numQubits: 1,
			index:     -1,
			wantError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewBasis(tt.numQubits, tt.index)
			if tt.wantError {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			probs := v.Probabilities()
			for i, p := range probs {
				if i == tt.index {
					assert.InDelta(t, 1.0, p, 1e-12)
				} else {
					assert.InDelta(t, 0.0, p, 1e-12)
				}
			}
		})
	}
}

func TestNewFromAmplitudes(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	v, err := NewFromAmplitudes([]complex128{inv, 0, 0, inv})
	assert.Nil(t, err)
	assert.Equal(t, 2, v.NumQubits())
}

func TestNewFromAmplitudesRejectsUnnormalized(t *testing.T) {
	_, err := NewFromAmplitudes([]complex128{1, 1})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "must be normalized")
}

func TestNewFromAmplitudesRejectsOddLength(t *testing.T) {
	_, err := NewFromAmplitudes([]complex128{1, 0, 0})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "not a power of two")
}

func TestNewFromAmplitudesCopies(t *testing.T) {
	amps := []complex128{1, 0}
	v, err := NewFromAmplitudes(amps)
	assert.Nil(t, err)
	amps[0] = 0
	assert.Equal(t, complex128(1), v[0])
}

func TestProbabilitiesSumToOne(t *testing.T) {
	s := NewSource(DefaultSeed)
	v := s.RandomState(3)
	sum := 0.0
	for _, p := range v.Probabilities() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}
