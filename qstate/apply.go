package qstate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ApplyMatrix applies a 2^k x 2^k matrix to the listed wires of v in place.
// The first listed wire is the most significant bit of the matrix index.
// Amplitudes are updated by gathering each wire-subset block, multiplying,
// and scattering the block back.
func ApplyMatrix(v Vector, m *mat.CDense, wires []int) error {
	n := v.NumQubits()
	if n == 0 {
		return fmt.Errorf("state length %d is not a valid register", len(v))
	}
	r, c := m.Dims()
	if r != c {
		return fmt.Errorf("matrix is %dx%d, must be square", r, c)
	}
	k := len(wires)
	if r != 1<<uint(k) {
		return fmt.Errorf("matrix of dimension %d does not act on %d wire(s)", r, k)
	}
	pos, mask, err := wireBits(wires, n)
	if err != nil {
		return err
	}

	dim := len(v)
	blockDim := 1 << uint(k)
	block := make([]complex128, blockDim)
	for base := 0; base < dim; base++ {
		if base&mask != 0 {
			continue
		}
		for l := 0; l < blockDim; l++ {
			block[l] = v[spreadIndex(base, l, pos)]
		}
		for l := 0; l < blockDim; l++ {
			var sum complex128
			for t := 0; t < blockDim; t++ {
				sum += m.At(l, t) * block[t]
			}
			v[spreadIndex(base, l, pos)] = sum
		}
	}
	return nil
}

// wireBits maps wires to register bit positions (wire 0 is bit n-1) and
// returns the combined mask.
func wireBits(wires []int, n int) ([]int, int, error) {
	pos := make([]int, len(wires))
	mask := 0
	for i, w := range wires {
		if w < 0 || w >= n {
			return nil, 0, fmt.Errorf("wire %d is out of range for %d qubit(s)", w, n)
		}
		p := n - 1 - w
		if mask&(1<<uint(p)) != 0 {
			return nil, 0, fmt.Errorf("wire %d is listed twice", w)
		}
		pos[i] = p
		mask |= 1 << uint(p)
	}
	return pos, mask, nil
}

// spreadIndex plants the bits of local block index l at the wire positions
// on top of base.
func spreadIndex(base, l int, pos []int) int {
	idx := base
	k := len(pos)
	for j := 0; j < k; j++ {
		if l&(1<<uint(k-1-j)) != 0 {
			idx |= 1 << uint(pos[j])
		}
	}
	return idx
}
