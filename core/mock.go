package core

import (
	"fmt"

	"github.com/qonform-team/qonform/circuit"
	"go.uber.org/dig"
)

const MockMaxQubits int = 10
const MockMaxShots int = 10000

type UnimplementedDevice struct{}

func (u *UnimplementedDevice) Setup(*Conf) error {
	return nil
}

func (u *UnimplementedDevice) Execute(*circuit.Circuit) (*ExecutionResult, error) {
	return NewExecutionResult(), nil
}

func (u *UnimplementedDevice) Validate(*circuit.Circuit) error {
	return nil
}

func (u *UnimplementedDevice) GetDeviceInfo() *DeviceInfo {
	return &DeviceInfo{
		DeviceName:   "unimplementedDevice",
		ProviderName: "qonform",
		Type:         "simulator",
		Status:       Available,
		MaxQubits:    MockMaxQubits,
		MaxShots:     MockMaxShots,
	}
}

type unsupportedGateDeviceForTest struct {
	UnimplementedDevice
}

func (unsupportedGateDeviceForTest) Validate(c *circuit.Circuit) error {
	return fmt.Errorf("%w: every gate", ErrUnsupportedOperation)
}

type unimplementedDeviceFactory struct{}

func (u *unimplementedDeviceFactory) Setup(*Conf) error {
	return nil
}

func (u *unimplementedDeviceFactory) NewDevice(numQubits int) (Device, error) {
	return &UnimplementedDevice{}, nil
}

func (u *unimplementedDeviceFactory) GetDeviceInfo() *DeviceInfo {
	return (&UnimplementedDevice{}).GetDeviceInfo()
}

type fixedDeviceFactoryForTest struct {
	device Device
}

func (f *fixedDeviceFactoryForTest) Setup(*Conf) error {
	return nil
}

func (f *fixedDeviceFactoryForTest) NewDevice(numQubits int) (Device, error) {
	return f.device, nil
}

func (f *fixedDeviceFactoryForTest) GetDeviceInfo() *DeviceInfo {
	return f.device.GetDeviceInfo()
}

type unimplementedRunner struct{}

func (u *unimplementedRunner) Setup(*Conf) error          { return nil }
func (u *unimplementedRunner) Run() (*SuiteReport, error) { return NewSuiteReport(), nil }
func (u *unimplementedRunner) GetCurrentQueueSize() int   { return 0 }

type unimplementedRecorder struct{}

func (u *unimplementedRecorder) Setup(RecordChan, *Conf) error { return nil }
func (u *unimplementedRecorder) Insert(*CaseData) error        { return nil }
func (u *unimplementedRecorder) Get(caseID string) (*CaseData, error) {
	return &CaseData{}, nil
}
func (u *unimplementedRecorder) Update(*CaseData) error { return nil }
func (u *unimplementedRecorder) Delete(string) error    { return nil }
func (u *unimplementedRecorder) All() []*CaseData       { return nil }

func SCWithUnimplementedContainer() *SystemComponents {
	c := dig.New()
	c.Provide(func() DeviceFactory { return &unimplementedDeviceFactory{} })
	c.Provide(func() Runner { return &unimplementedRunner{} })
	c.Provide(func() Recorder { return &unimplementedRecorder{} })
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}

func SCWithDeviceFactoryContainer(f DeviceFactory) *SystemComponents {
	c := dig.New()
	c.Provide(func() DeviceFactory { return f })
	c.Provide(func() Runner { return &unimplementedRunner{} })
	c.Provide(func() Recorder { return &MemoryRecorder{} })
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}

func SCWithDeviceContainer(d Device) *SystemComponents {
	return SCWithDeviceFactoryContainer(&fixedDeviceFactoryForTest{device: d})
}

func SCWithUnsupportedGateDeviceContainer() *SystemComponents {
	return SCWithDeviceContainer(&unsupportedGateDeviceForTest{})
}
