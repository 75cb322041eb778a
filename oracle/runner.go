package oracle

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/gate"
	"github.com/qonform-team/qonform/qstate"
	"go.uber.org/zap"
)

// SuiteRunner drives a whole conformance run: it enumerates the cases,
// queues them and verifies them one by one, each on a device of its own.
type SuiteRunner struct {
	conf      *core.Conf
	queue     *caseQueue
	registry  *gate.Registry
	tolerance core.ToleranceSetting
}

func (s *SuiteRunner) Setup(conf *core.Conf) error {
	s.conf = conf
	s.queue = &caseQueue{}
	if err := s.queue.Setup(conf); err != nil {
		return err
	}
	s.registry = gate.DefaultRegistry()
	s.tolerance = core.ToleranceFromComponentSetting()
	return nil
}

func (s *SuiteRunner) Run() (*core.SuiteReport, error) {
	sc := core.GetSystemComponents()
	if sc == nil {
		return nil, fmt.Errorf("system components are not set up")
	}
	report := core.NewSuiteReport()
	report.RunID = uuid.NewString()
	if info := sc.GetDeviceInfo(); info != nil {
		report.DeviceName = info.DeviceName
	}
	tol := s.tolerance.ForShots(s.conf.Shots)
	zap.L().Info(fmt.Sprintf("Starting run %s with tolerance %s", report.RunID, tol))

	for _, c := range Cases(qstate.NewSource(s.conf.Seed)) {
		cir := newCaseInRun(c, s.conf.Shots, s.registry)
		s.record(cir.data)
		if cir.data.IsFinished() { // failed fast during construction
			report.AddCase(cir.data)
			continue
		}
		if err := s.queue.Enqueue(cir); err != nil {
			settleFailure(cir.data, err)
			s.record(cir.data)
			report.AddCase(cir.data)
		}
	}

	for {
		cir, err := s.queue.Dequeue(false)
		if err != nil {
			break // queue drained
		}
		s.process(cir, tol)
		report.AddCase(cir.data)
	}
	report.Ended = strfmt.DateTime(time.Now())
	zap.L().Info(fmt.Sprintf("Finished run %s. total:%d passed:%d failed:%d xfailed:%d xpassed:%d",
		report.RunID, report.Total, report.Passed, report.Failed, report.XFailed, report.XPassed))
	return report, nil
}

// process verifies one case on a fresh device.
func (s *SuiteRunner) process(cir *caseInRun, tol core.Tolerance) {
	cd := cir.data
	cd.Status = core.RUNNING
	s.record(cd)
	zap.L().Debug(fmt.Sprintf("processing case:%s", cd.Name))
	d, err := s.newDevice(cd.NumQubits)
	if err != nil {
		settleFailure(cd, fmt.Errorf("construction error: %s", err))
		s.record(cd)
		return
	}
	Verify(cir, d, tol)
	zap.L().Debug(fmt.Sprintf("finished to process case(%s), status:%s", cd.ID, cd.Status))
	s.record(cd)
}

func (s *SuiteRunner) newDevice(numQubits int) (core.Device, error) {
	var d core.Device
	err := core.GetSystemComponents().Invoke(
		func(f core.DeviceFactory) error {
			var newErr error
			d, newErr = f.NewDevice(numQubits)
			return newErr
		})
	return d, err
}

// record pushes a snapshot of the case into the record channel.
func (s *SuiteRunner) record(cd *core.CaseData) {
	sc := core.GetSystemComponents()
	if sc == nil || sc.RecordChan == nil {
		return
	}
	sc.RecordChan <- cd.Clone()
}

func (s *SuiteRunner) GetCurrentQueueSize() int {
	return s.queue.GetCurrentSize()
}
