package gate

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

func oneParam(name string, numWires int, fn func(phi float64) []complex128) Gate {
	dim := 1 << uint(numWires)
	return Gate{
		Name:      name,
		NumWires:  numWires,
		NumParams: 1,
		matrixFn: func(params []float64) *mat.CDense {
			return mat.NewCDense(dim, dim, fn(params[0]))
		},
	}
}

func PhaseShift() Gate {
	return oneParam("PhaseShift", 1, func(phi float64) []complex128 {
		return []complex128{
			1, 0,
			0, cmplx.Exp(complex(0, phi)),
		}
	})
}

func RX() Gate {
	return oneParam("RX", 1, func(theta float64) []complex128 {
		c := complex(math.Cos(theta/2), 0)
		is := complex(0, math.Sin(theta/2))
		return []complex128{
			c, -is,
			-is, c,
		}
	})
}

func RY() Gate {
	return oneParam("RY", 1, func(theta float64) []complex128 {
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return []complex128{
			c, -s,
			s, c,
		}
	})
}

func RZ() Gate {
	return oneParam("RZ", 1, func(theta float64) []complex128 {
		return []complex128{
			cmplx.Exp(complex(0, -theta/2)), 0,
			0, cmplx.Exp(complex(0, theta/2)),
		}
	})
}

// Rot is the three-angle rotation RZ(omega)·RY(theta)·RZ(phi).
func Rot() Gate {
	return Gate{
		Name:      "Rot",
		NumWires:  1,
		NumParams: 3,
		matrixFn: func(params []float64) *mat.CDense {
			phi, theta, omega := params[0], params[1], params[2]
			c := complex(math.Cos(theta/2), 0)
			s := complex(math.Sin(theta/2), 0)
			return mat.NewCDense(2, 2, []complex128{
				cmplx.Exp(complex(0, -(phi+omega)/2)) * c, -cmplx.Exp(complex(0, (phi-omega)/2)) * s,
				cmplx.Exp(complex(0, -(phi-omega)/2)) * s, cmplx.Exp(complex(0, (phi+omega)/2)) * c,
			})
		},
	}
}

func CPhaseShift() Gate {
	return oneParam("CPhaseShift", 2, func(phi float64) []complex128 {
		return []complex128{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, cmplx.Exp(complex(0, phi)),
		}
	})
}

func CPhaseShift00() Gate {
	return oneParam("CPhaseShift00", 2, func(phi float64) []complex128 {
		return []complex128{
			cmplx.Exp(complex(0, phi)), 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
	})
}

func CPhaseShift01() Gate {
	return oneParam("CPhaseShift01", 2, func(phi float64) []complex128 {
		return []complex128{
			1, 0, 0, 0,
			0, cmplx.Exp(complex(0, phi)), 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
	})
}

func CPhaseShift10() Gate {
	return oneParam("CPhaseShift10", 2, func(phi float64) []complex128 {
		return []complex128{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, cmplx.Exp(complex(0, phi)), 0,
			0, 0, 0, 1,
		}
	})
}

func PSWAP() Gate {
	return oneParam("PSWAP", 2, func(phi float64) []complex128 {
		e := cmplx.Exp(complex(0, phi))
		return []complex128{
			1, 0, 0, 0,
			0, 0, e, 0,
			0, e, 0, 0,
			0, 0, 0, 1,
		}
	})
}

func XX() Gate {
	return oneParam("XX", 2, func(phi float64) []complex128 {
		c := complex(math.Cos(phi/2), 0)
		is := complex(0, math.Sin(phi/2))
		return []complex128{
			c, 0, 0, -is,
			0, c, -is, 0,
			0, -is, c, 0,
			-is, 0, 0, c,
		}
	})
}

func XY() Gate {
	return oneParam("XY", 2, func(phi float64) []complex128 {
		c := complex(math.Cos(phi/2), 0)
		is := complex(0, math.Sin(phi/2))
		return []complex128{
			1, 0, 0, 0,
			0, c, is, 0,
			0, is, c, 0,
			0, 0, 0, 1,
		}
	})
}

func YY() Gate {
	return oneParam("YY", 2, func(phi float64) []complex128 {
		c := complex(math.Cos(phi/2), 0)
		is := complex(0, math.Sin(phi/2))
		return []complex128{
			c, 0, 0, is,
			0, c, -is, 0,
			0, -is, c, 0,
			is, 0, 0, c,
		}
	})
}

func ZZ() Gate {
	return oneParam("ZZ", 2, func(phi float64) []complex128 {
		pos := cmplx.Exp(complex(0, phi/2))
		neg := cmplx.Exp(complex(0, -phi/2))
		return []complex128{
			neg, 0, 0, 0,
			0, pos, 0, 0,
			0, 0, pos, 0,
			0, 0, 0, neg,
		}
	})
}

// SingleQubitParam lists the one-angle single-qubit rotations.
func SingleQubitParam() []Gate {
	return []Gate{PhaseShift(), RX(), RY(), RZ()}
}

func TwoQubitParam() []Gate {
	return []Gate{
		CPhaseShift(), CPhaseShift00(), CPhaseShift01(), CPhaseShift10(),
		PSWAP(), XX(), XY(), YY(), ZZ(),
	}
}
