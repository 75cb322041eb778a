package qstate

import (
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DefaultSeed is the suite-wide seed. Every run draws the same states and
// unitaries so failures reproduce exactly.
const DefaultSeed int64 = 42

type Source struct {
	rng *rand.Rand
}

func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// RandomState draws a normalized state: uniform real and imaginary parts,
// scaled to unit norm.
func (s *Source) RandomState(numQubits int) Vector {
	dim := 1 << uint(numQubits)
	v := make(Vector, dim)
	for i := range v {
		v[i] = complex(s.rng.Float64(), s.rng.Float64())
	}
	norm := complex(v.Norm(), 0)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// SampleIndex draws one basis-state index from a probability vector.
func (s *Source) SampleIndex(probs []float64) int {
	r := s.rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return i
		}
	}
	// probs may sum to slightly less than 1 due to rounding
	return len(probs) - 1
}

// RandomUnitary draws a Haar-like unitary: complex Gaussian columns made
// orthonormal by Gram-Schmidt.
func (s *Source) RandomUnitary(dim int) *mat.CDense {
	cols := make([][]complex128, dim)
	for j := 0; j < dim; j++ {
		col := make([]complex128, dim)
		for i := 0; i < dim; i++ {
			col[i] = complex(s.rng.NormFloat64(), s.rng.NormFloat64())
		}
		for _, prev := range cols[:j] {
			var overlap complex128
			for i := 0; i < dim; i++ {
				overlap += cmplx.Conj(prev[i]) * col[i]
			}
			for i := 0; i < dim; i++ {
				col[i] -= overlap * prev[i]
			}
		}
		norm := complex(Vector(col).Norm(), 0)
		for i := 0; i < dim; i++ {
			col[i] /= norm
		}
		cols[j] = col
	}
	u := mat.NewCDense(dim, dim, nil)
	for j, col := range cols {
		for i, a := range col {
			u.Set(i, j, a)
		}
	}
	return u
}
