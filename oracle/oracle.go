// Package oracle checks a device against exact gate semantics. Every case
// prepares a state, applies one operation and measures the probabilities
// over all wires; the device's answer has to match the matrix arithmetic
// elementwise within the configured tolerance.
package oracle

import (
	"fmt"

	"github.com/qonform-team/qonform/circuit"
	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/gate"
	"go.uber.org/multierr"
)

// ExpectedProbabilities is the reference side of a case: the elementwise
// |M·ψ|² of the circuit, computed from registry matrices with no device
// involved.
func ExpectedProbabilities(c *circuit.Circuit, reg *gate.Registry) (core.ProbVector, error) {
	v, err := c.Run(reg)
	if err != nil {
		return nil, err
	}
	return core.ProbVector(v.Probabilities()), nil
}

// Compare checks the observed probabilities elementwise against the
// expected ones. Every index outside the tolerance is collected, not just
// the first one.
func Compare(expected, observed core.ProbVector, tol core.Tolerance) error {
	if len(expected) != len(observed) {
		return fmt.Errorf("probability vectors differ in length. expected:%d observed:%d",
			len(expected), len(observed))
	}
	var merr error
	for i := range expected {
		if !tol.Allows(expected[i], observed[i]) {
			merr = multierr.Append(merr, fmt.Errorf(
				"index %d: expected %g, observed %g", i, expected[i], observed[i]))
		}
	}
	if merr != nil {
		return fmt.Errorf("probabilities mismatch with tolerance %s. expected:%s observed:%s reason:%s",
			tol, expected, observed, merr)
	}
	return nil
}
