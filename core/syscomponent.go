package core

import (
	"errors"
	"fmt"

	"github.com/qonform-team/qonform/circuit"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

var systemComponents *SystemComponents

// ErrUnsupportedOperation marks a capability gap of the device under test:
// the circuit is well formed but contains an operation the device does not
// implement. Cases that hit it on purpose are expected failures, not bugs.
var ErrUnsupportedOperation = errors.New("unsupported operation")

type RecordChan chan *CaseData

type Channels struct {
	RecordChan
	// when more channel is needed, add here
}

func NewChannels() *Channels {
	return &Channels{
		RecordChan: make(RecordChan),
	}
}

func (c *Channels) Close() {
	close(c.RecordChan)
}

func (c *Channels) Check() error {
	if c.RecordChan == nil {
		return fmt.Errorf("RecordChan is nil")
	}
	return nil
}

type DeviceStatus int

const (
	Available DeviceStatus = iota
	Unavailable
)

func (ds DeviceStatus) String() string {
	switch ds {
	case Available:
		return "Available"
	case Unavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}

type DeviceInfo struct {
	DeviceName     string       `json:"device_name"`
	ProviderName   string       `json:"provider_name"`
	Type           string       `json:"type"`
	Status         DeviceStatus `json:"status"`
	MaxQubits      int          `json:"max_qubits"`
	MaxShots       int          `json:"max_shots"`
	SupportedGates []string     `json:"supported_gates"`
}

// Device is the device under test. Execute runs a validated circuit and
// measures the probabilities over all of its wires.
type Device interface {
	Setup(*Conf) error
	Execute(*circuit.Circuit) (*ExecutionResult, error)
	Validate(*circuit.Circuit) error
	GetDeviceInfo() *DeviceInfo
}

// DeviceFactory hands out a fresh device per case so that no state leaks
// from one case into the next.
type DeviceFactory interface {
	Setup(*Conf) error
	NewDevice(numQubits int) (Device, error)
	GetDeviceInfo() *DeviceInfo
}

type Runner interface {
	Setup(*Conf) error
	Run() (*SuiteReport, error)
	// Queue Data Access
	GetCurrentQueueSize() int
}

type Recorder interface {
	Setup(RecordChan, *Conf) error
	Insert(*CaseData) error
	Get(string) (*CaseData, error)
	Update(*CaseData) error
	Delete(string) error
	All() []*CaseData
}

type SystemComponents struct {
	*dig.Container
	*Channels
}

func NewSystemComponents(con *dig.Container) *SystemComponents {
	return &SystemComponents{
		con,
		NewChannels(),
	}
}

func GetSystemComponents() *SystemComponents {
	return systemComponents
}

func (s *SystemComponents) Setup(conf *Conf) error {
	recordChan := s.RecordChan

	zap.L().Debug("Setting up device factory")
	var err error
	err = s.Invoke(
		func(f DeviceFactory) error {
			return f.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up runner")
	err = s.Invoke(
		func(r Runner) error {
			return r.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up recorder")
	err = s.Invoke(
		func(rec Recorder) error {
			return rec.Setup(recordChan, conf)
		})
	if err != nil {
		return err
	}
	systemComponents = s
	return nil
}

func (s *SystemComponents) TearDown() {
	s.Channels.Close()
}

func (s *SystemComponents) RunSuite() (*SuiteReport, error) {
	var report *SuiteReport
	err := s.Container.Invoke(
		func(r Runner) error {
			var runErr error
			report, runErr = r.Run()
			return runErr
		})
	return report, err
}

func (s *SystemComponents) GetDeviceInfo() *DeviceInfo {
	var deviceInfo *DeviceInfo
	s.Invoke(
		func(f DeviceFactory) error {
			deviceInfo = f.GetDeviceInfo()
			return nil
		})
	return deviceInfo
}

func (s *SystemComponents) GetCurrentQueueSize() int {
	var size int
	s.Invoke(
		func(r Runner) {
			size = r.GetCurrentQueueSize()
		})
	return size
}
