package gate

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// UnitarityTol bounds |U†U - I| elementwise when checking matrices. Loose
// enough for matrices published to eight decimal places.
const UnitarityTol = 1e-7

func Identity(dim int) *mat.CDense {
	m := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func Dagger(m *mat.CDense) *mat.CDense {
	r, c := m.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplx.Conj(m.At(i, j)))
		}
	}
	return out
}

// Kron is the Kronecker product. gonum has no complex Kronecker, so the
// loops are spelled out.
func Kron(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewCDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			av := a.At(i, j)
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, av*b.At(k, l))
				}
			}
		}
	}
	return out
}

// Mul is the complex matrix product. mat.CDense carries no Mul of its own,
// so the loops are spelled out like Kron's.
func Mul(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(fmt.Sprintf("matrix dimensions %dx%d and %dx%d do not chain", ar, ac, br, bc))
	}
	out := mat.NewCDense(ar, bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var sum complex128
			for k := 0; k < ac; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

func IsUnitary(m *mat.CDense) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	return mat.CEqualApprox(Mul(Dagger(m), m), Identity(r), UnitarityTol)
}

// MulVec applies m to a state vector and returns a fresh vector.
func MulVec(m *mat.CDense, v []complex128) ([]complex128, error) {
	r, c := m.Dims()
	if c != len(v) {
		return nil, fmt.Errorf("matrix is %dx%d but vector length is %d", r, c, len(v))
	}
	out := make([]complex128, r)
	for i := 0; i < r; i++ {
		var sum complex128
		for j := 0; j < c; j++ {
			sum += m.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out, nil
}
