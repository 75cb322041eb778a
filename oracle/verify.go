package oracle

import (
	"errors"
	"fmt"

	"github.com/qonform-team/qonform/circuit"
	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/gate"
)

// caseInRun pairs the bookkeeping record of a case with its materialized
// circuit and the reference answer.
type caseInRun struct {
	data     *core.CaseData
	circuit  *circuit.Circuit
	expected core.ProbVector
}

// newCaseInRun materializes a case. A case whose reference answer cannot be
// computed fails fast: it comes back already finished and must not reach a
// device.
func newCaseInRun(c *Case, shots int, reg *gate.Registry) *caseInRun {
	cd := c.ToCaseData(shots)
	circ := c.Circuit()
	if qasm, err := circ.ToQASM(); err == nil {
		cd.QASM = qasm
	}
	cir := &caseInRun{data: cd, circuit: circ}
	expected, err := ExpectedProbabilities(circ, reg)
	if err != nil {
		settleFailure(cd, fmt.Errorf("construction error: %s", err))
		return cir
	}
	cd.Expected = expected
	cir.expected = expected
	return cir
}

// Verify runs one case against a device and settles its final status.
//
// A case that expects failure follows xfail semantics: any failure turns
// into XFAILED and a pass into XPASSED. An unexpected pass counts against
// the suite, because it means the record of the device's capabilities is
// stale.
func Verify(cir *caseInRun, d core.Device, tol core.Tolerance) {
	cd := cir.data
	if err := d.Validate(cir.circuit); err != nil {
		if errors.Is(err, core.ErrUnsupportedOperation) {
			settleFailure(cd, fmt.Errorf("capability gap: %s", err))
			return
		}
		settleFailure(cd, fmt.Errorf("construction error: %s", err))
		return
	}
	result, err := d.Execute(cir.circuit)
	if err != nil {
		settleFailure(cd, fmt.Errorf("execution error: %s", err))
		return
	}
	cd.Result = result
	cd.Observed = result.Probabilities
	if err := Compare(cir.expected, result.Probabilities, tol); err != nil {
		settleFailure(cd, err)
		return
	}
	if cd.ExpectFailure {
		cd.Finish(core.XPASSED, "expected a failure but the case passed")
		return
	}
	cd.Finish(core.PASSED, "")
}

// settleFailure folds the failure expectation into the verdict.
func settleFailure(cd *core.CaseData, err error) {
	if cd.ExpectFailure {
		cd.Finish(core.XFAILED, err.Error())
		return
	}
	cd.SetFailure(err)
}
