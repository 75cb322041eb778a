package device

import (
	"fmt"

	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/gate"
	"github.com/qonform-team/qonform/qstate"
	"go.uber.org/zap"
)

// Factory builds one simulator per case. Every device starts from the same
// seed, so a case produces the same counts no matter where it sits in the
// suite.
type Factory struct {
	conf    *core.Conf
	setting *DeviceSetting
}

func (f *Factory) Setup(conf *core.Conf) error {
	zap.L().Debug("Setting up local simulator factory")
	ds, err := LoadDeviceSetting(conf.DeviceSettingPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to load a device setting. Reason:%s", err))
		return err
	}
	f.conf = conf
	f.setting = ds
	return nil
}

func (f *Factory) NewDevice(numQubits int) (core.Device, error) {
	if numQubits < 1 {
		return nil, fmt.Errorf("device needs at least one qubit, got %d", numQubits)
	}
	if numQubits > f.setting.MaxQubits {
		return nil, fmt.Errorf("device with %d qubit(s) requested but the setting caps at %d",
			numQubits, f.setting.MaxQubits)
	}
	return &LocalSimulator{
		setting:   f.setting,
		registry:  gate.DefaultRegistry(),
		source:    qstate.NewSource(f.conf.Seed),
		numQubits: numQubits,
		shots:     f.conf.Shots,
	}, nil
}

func (f *Factory) GetDeviceInfo() *core.DeviceInfo {
	return &core.DeviceInfo{
		DeviceName:     f.setting.DeviceName,
		ProviderName:   f.setting.ProviderName,
		Type:           f.setting.DeviceType,
		Status:         core.Available,
		MaxQubits:      f.setting.MaxQubits,
		MaxShots:       f.setting.MaxShots,
		SupportedGates: f.setting.GateSupport.Supported(knownGateNames(gate.DefaultRegistry())),
	}
}
