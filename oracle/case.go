package oracle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qonform-team/qonform/circuit"
	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/gate"
	"github.com/qonform-team/qonform/qstate"
	"gonum.org/v1/gonum/mat"
)

// thetas are the angles every one-angle parametric gate is probed with.
var thetas = []float64{0.5432, -0.232}

// rotAngles feed the three-angle rotation probe.
var rotAngles = []float64{0.542, 1.3432, -0.654}

// basisBits is the basis-state initialization probe: the expected
// distribution is one-hot at the index the bits spell out.
var basisBits = []int{0, 0, 1, 0}

// Case is one conformance probe: a prepared state, at most one operation
// under test and the wires it acts on.
type Case struct {
	Name          string
	GateName      string
	Params        []float64
	Wires         []int
	NumQubits     int
	Bits          []int
	Amplitudes    qstate.Vector
	Unitary       *mat.CDense
	ExpectFailure bool
}

// Circuit assembles the probe circuit of the case.
func (c *Case) Circuit() *circuit.Circuit {
	circ := circuit.New(c.NumQubits)
	if len(c.Bits) > 0 {
		circ.PrepareBasis(c.Bits...)
	}
	if len(c.Amplitudes) > 0 {
		circ.PrepareState(c.Amplitudes)
	}
	if c.Unitary != nil {
		circ.ApplyUnitary(c.Unitary, c.Wires...)
	} else if c.GateName != "" {
		circ.ApplyParam(c.GateName, c.Params, c.Wires...)
	}
	return circ
}

// ToCaseData opens the bookkeeping record of the case.
func (c *Case) ToCaseData(shots int) *core.CaseData {
	cd := core.NewCaseData()
	cd.ID = uuid.NewString()
	cd.Name = c.Name
	cd.GateName = c.GateName
	cd.Params = c.Params
	cd.Wires = c.Wires
	cd.NumQubits = c.NumQubits
	cd.Shots = shots
	cd.ExpectFailure = c.ExpectFailure
	return cd
}

// Cases enumerates the whole conformance suite. Prepared states are drawn
// from the source, so the same seed reproduces the same suite.
func Cases(source *qstate.Source) []*Case {
	cases := []*Case{}
	cases = append(cases, BasisStateCases()...)
	cases = append(cases, StateVectorCases(source)...)
	cases = append(cases, SingleQubitCases(source)...)
	cases = append(cases, SingleQubitParamCases(source)...)
	cases = append(cases, TwoQubitCases(source)...)
	cases = append(cases, TwoQubitParamCases(source)...)
	cases = append(cases, ThreeQubitCases(source)...)
	cases = append(cases, UnitaryCases(source)...)
	cases = append(cases, RotationCases(source)...)
	return cases
}

// BasisStateCases probe computational basis initialization.
func BasisStateCases() []*Case {
	return []*Case{
		{
			Name:      fmt.Sprintf("BasisState(%s)", joinInts(basisBits)),
			NumQubits: len(basisBits),
			Bits:      basisBits,
		},
	}
}

// StateVectorCases probe arbitrary state preparation with no gate on top.
func StateVectorCases(source *qstate.Source) []*Case {
	return []*Case{
		{
			Name:       "QubitStateVector(1q)",
			NumQubits:  1,
			Amplitudes: source.RandomState(1),
		},
	}
}

// SingleQubitCases probe the non-parametric single-qubit set. The adjoints
// of the phase gates are enumerated as well and expected to fail: devices
// modeled here do not implement them.
func SingleQubitCases(source *qstate.Source) []*Case {
	cases := []*Case{}
	for _, g := range gate.SingleQubit() {
		cases = append(cases, gateCase(g.Name, nil, 1, source))
	}
	for _, g := range gate.SingleQubitAdjoint() {
		c := gateCase(gate.AdjointName(g.Name), nil, 1, source)
		c.ExpectFailure = true
		cases = append(cases, c)
	}
	return cases
}

func SingleQubitParamCases(source *qstate.Source) []*Case {
	cases := []*Case{}
	for _, g := range gate.SingleQubitParam() {
		for _, theta := range thetas {
			cases = append(cases, gateCase(g.Name, []float64{theta}, 1, source))
		}
	}
	return cases
}

func TwoQubitCases(source *qstate.Source) []*Case {
	cases := []*Case{}
	for _, g := range gate.TwoQubit() {
		cases = append(cases, gateCase(g.Name, nil, 2, source))
	}
	return cases
}

func TwoQubitParamCases(source *qstate.Source) []*Case {
	cases := []*Case{}
	for _, g := range gate.TwoQubitParam() {
		for _, theta := range thetas {
			cases = append(cases, gateCase(g.Name, []float64{theta}, 2, source))
		}
	}
	return cases
}

func ThreeQubitCases(source *qstate.Source) []*Case {
	cases := []*Case{}
	for _, g := range gate.ThreeQubit() {
		cases = append(cases, gateCase(g.Name, nil, 3, source))
	}
	return cases
}

// UnitaryCases inject raw matrices; the wire count is derived from the
// matrix dimension.
func UnitaryCases(source *qstate.Source) []*Case {
	cases := []*Case{}
	for _, u := range []*mat.CDense{unitary2x2(), unitary4x4()} {
		dim, _ := u.Dims()
		n, err := gate.WiresFromDim(dim)
		if err != nil {
			panic(err)
		}
		cases = append(cases, &Case{
			Name:       fmt.Sprintf("QubitUnitary(%dx%d)", dim, dim),
			Wires:      allWires(n),
			NumQubits:  n,
			Amplitudes: source.RandomState(n),
			Unitary:    u,
		})
	}
	return cases
}

func RotationCases(source *qstate.Source) []*Case {
	return []*Case{gateCase("Rot", rotAngles, 1, source)}
}

func gateCase(name string, params []float64, numQubits int, source *qstate.Source) *Case {
	return &Case{
		Name:       caseName(name, params),
		GateName:   name,
		Params:     params,
		Wires:      allWires(numQubits),
		NumQubits:  numQubits,
		Amplitudes: source.RandomState(numQubits),
	}
}

func caseName(gateName string, params []float64) string {
	if len(params) == 0 {
		return gateName
	}
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return fmt.Sprintf("%s(%s)", gateName, strings.Join(args, ","))
}

func allWires(n int) []int {
	wires := make([]int, n)
	for i := range wires {
		wires[i] = i
	}
	return wires
}

func joinInts(bits []int) string {
	parts := make([]string, len(bits))
	for i, b := range bits {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, ",")
}

// unitary2x2 is a dense single-qubit unitary published to eight decimal
// places.
func unitary2x2() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{
		0.83645892 - 0.40533293i, -0.20215326 + 0.30850569i,
		-0.23889780 - 0.28101519i, -0.88031770 - 0.29832709i,
	})
}

// unitary4x4 is a real orthogonal two-qubit matrix, 1/√3 off the diagonal.
func unitary4x4() *mat.CDense {
	s := complex(1/math.Sqrt(3), 0)
	data := []complex128{
		0, 1, 1, 1,
		1, 0, 1, -1,
		1, -1, 0, 1,
		1, 1, -1, 0,
	}
	for i := range data {
		data[i] *= s
	}
	return mat.NewCDense(4, 4, data)
}
