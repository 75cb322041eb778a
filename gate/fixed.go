package gate

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

func fixed(name string, numWires int, data []complex128) Gate {
	dim := 1 << uint(numWires)
	m := mat.NewCDense(dim, dim, data)
	return Gate{
		Name:     name,
		NumWires: numWires,
		matrixFn: func([]float64) *mat.CDense { return m },
	}
}

func PauliX() Gate {
	return fixed("PauliX", 1, []complex128{
		0, 1,
		1, 0,
	})
}

func PauliY() Gate {
	return fixed("PauliY", 1, []complex128{
		0, -1i,
		1i, 0,
	})
}

func PauliZ() Gate {
	return fixed("PauliZ", 1, []complex128{
		1, 0,
		0, -1,
	})
}

func Hadamard() Gate {
	h := complex(1/math.Sqrt2, 0)
	return fixed("Hadamard", 1, []complex128{
		h, h,
		h, -h,
	})
}

func S() Gate {
	return fixed("S", 1, []complex128{
		1, 0,
		0, 1i,
	})
}

func SX() Gate {
	p := complex(0.5, 0.5)
	q := complex(0.5, -0.5)
	return fixed("SX", 1, []complex128{
		p, q,
		q, p,
	})
}

func T() Gate {
	return fixed("T", 1, []complex128{
		1, 0,
		0, cmplx.Exp(1i * math.Pi / 4),
	})
}

func CNOT() Gate {
	return fixed("CNOT", 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	})
}

func CY() Gate {
	return fixed("CY", 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, -1i,
		0, 0, 1i, 0,
	})
}

func CZ() Gate {
	return fixed("CZ", 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	})
}

func SWAP() Gate {
	return fixed("SWAP", 2, []complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	})
}

func ISWAP() Gate {
	return fixed("ISWAP", 2, []complex128{
		1, 0, 0, 0,
		0, 0, 1i, 0,
		0, 1i, 0, 0,
		0, 0, 0, 1,
	})
}

func CSWAP() Gate {
	return fixed("CSWAP", 3, []complex128{
		1, 0, 0, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0, 0, 0,
		0, 0, 0, 1, 0, 0, 0, 0,
		0, 0, 0, 0, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 1,
	})
}

func Toffoli() Gate {
	return fixed("Toffoli", 3, []complex128{
		1, 0, 0, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0, 0, 0,
		0, 0, 0, 1, 0, 0, 0, 0,
		0, 0, 0, 0, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 0, 0, 0, 0, 1, 0,
	})
}

// SingleQubit lists the non-parametric single-qubit gates.
func SingleQubit() []Gate {
	return []Gate{PauliX(), PauliY(), PauliZ(), Hadamard(), S(), SX(), T()}
}

// SingleQubitAdjoint lists the gates whose adjoints are exercised
// separately against devices.
func SingleQubitAdjoint() []Gate {
	return []Gate{S(), T()}
}

func TwoQubit() []Gate {
	return []Gate{CNOT(), CY(), CZ(), SWAP(), ISWAP()}
}

func ThreeQubit() []Gate {
	return []Gate{CSWAP(), Toffoli()}
}
