// Package device provides the reference device under test: an exact
// state-vector simulator scoped to one circuit at a time. A fresh simulator
// is handed out per case so that no state leaks between cases.
package device

import (
	"fmt"
	"time"

	"github.com/qonform-team/qonform/circuit"
	"github.com/qonform-team/qonform/common"
	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/gate"
	"github.com/qonform-team/qonform/qstate"
	"go.uber.org/zap"
)

type LocalSimulator struct {
	setting   *DeviceSetting
	registry  *gate.Registry
	source    *qstate.Source
	numQubits int
	shots     int
}

func (d *LocalSimulator) Setup(conf *core.Conf) error {
	zap.L().Debug("Setting up local simulator")
	ds, err := LoadDeviceSetting(conf.DeviceSettingPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to load a device setting. Reason:%s", err))
		return err
	}
	d.setting = ds
	d.registry = gate.DefaultRegistry()
	d.source = qstate.NewSource(conf.Seed)
	d.numQubits = ds.MaxQubits
	d.shots = conf.Shots
	return nil
}

func (d *LocalSimulator) Validate(c *circuit.Circuit) error {
	if c == nil {
		msg := "no input circuit"
		zap.L().Info(msg)
		return fmt.Errorf(msg)
	}
	if err := c.Validate(d.registry); err != nil {
		zap.L().Info(err.Error())
		return err
	}
	if c.NumQubits > d.numQubits {
		msg := fmt.Sprintf("too many qubits in the circuit. The device only has %d qubit(s)", d.numQubits)
		zap.L().Info(msg)
		return fmt.Errorf(msg)
	}
	if d.shots > d.setting.MaxShots {
		msg := fmt.Sprintf("%d shot(s) requested but the device caps at %d", d.shots, d.setting.MaxShots)
		zap.L().Info(msg)
		return fmt.Errorf(msg)
	}
	if err := validateGates(c, d.setting.GateSupport); err != nil {
		zap.L().Info(err.Error())
		return err
	}
	return nil
}

// Execute evolves the zero state through the circuit and measures the
// probabilities over all wires. When shots are requested, counts are sampled
// from the exact distribution and the reported probabilities are the sampled
// frequencies, the way a hardware backend reports them.
func (d *LocalSimulator) Execute(c *circuit.Circuit) (*core.ExecutionResult, error) {
	started := time.Now()
	v, err := c.Run(d.registry)
	if err != nil {
		zap.L().Info(fmt.Sprintf("failed to run circuit/reason:%s", err))
		return nil, err
	}
	r := core.NewExecutionResult()
	exact := core.ProbVector(v.Probabilities())
	r.Shots = d.shots
	if d.shots > 0 {
		r.Counts = d.sampleCounts(exact, c.NumQubits)
		r.Probabilities = r.Counts.ToProbVector(c.NumQubits, d.shots)
	} else {
		r.Probabilities = exact
	}
	r.ExecutionTime = time.Since(started)
	return r, nil
}

func (d *LocalSimulator) sampleCounts(probs core.ProbVector, numQubits int) core.Counts {
	counts := make(core.Counts)
	for i := 0; i < d.shots; i++ {
		index := d.source.SampleIndex(probs)
		counts[common.BitString(index, numQubits)]++
	}
	return counts
}

func (d *LocalSimulator) GetDeviceInfo() *core.DeviceInfo {
	return &core.DeviceInfo{
		DeviceName:     d.setting.DeviceName,
		ProviderName:   d.setting.ProviderName,
		Type:           d.setting.DeviceType,
		Status:         core.Available,
		MaxQubits:      d.setting.MaxQubits,
		MaxShots:       d.setting.MaxShots,
		SupportedGates: d.setting.GateSupport.Supported(knownGateNames(d.registry)),
	}
}

// knownGateNames lists every registered gate and its adjoint.
func knownGateNames(reg *gate.Registry) []string {
	names := reg.Names()
	all := make([]string, 0, 2*len(names))
	all = append(all, names...)
	for _, n := range names {
		all = append(all, gate.AdjointName(n))
	}
	return all
}

func validateGates(c *circuit.Circuit, gs *GateSupport) error {
	errFunc := func(gateName string) error {
		return fmt.Errorf("%w/gate:%s", core.ErrUnsupportedOperation, gateName)
	}
	for _, n := range c.GateNames() {
		if gs.AllowList.Enabled {
			if !common.ContainsGateName(n, gateNames(gs.AllowList.Gates)) {
				zap.L().Info(fmt.Sprintf("[AllowList] gate:%s is filtered", n))
				return errFunc(n)
			}
		}
		if gs.DenyList.Enabled {
			if common.ContainsGateName(n, gateNames(gs.DenyList.Gates)) {
				zap.L().Info(fmt.Sprintf("[DenyList] gate:%s is filtered", n))
				return errFunc(n)
			}
		}
	}
	return nil
}
