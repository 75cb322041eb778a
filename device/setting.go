package device

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/qonform-team/qonform/common"
	"github.com/qonform-team/qonform/gate"
	"go.uber.org/zap"
)

const DefaultDeviceName = "local-simulator"
const DefaultDeviceType = "simulator"
const DefaultProviderName = "qonform"
const DefaultMaxQubits = 10
const DefaultMaxShots = 100000

type DeviceSetting struct {
	DeviceName   string       `toml:"device_name"`
	DeviceType   string       `toml:"device_type"`
	ProviderName string       `toml:"provider_name"`
	MaxQubits    int          `toml:"max_qubits"`
	MaxShots     int          `toml:"max_shots"`
	GateSupport  *GateSupport `toml:"gate_support"`
}

type GateSupport struct {
	AllowList *GateFilter `toml:"allow_list"`
	DenyList  *GateFilter `toml:"deny_list"`
}

type GateFilter struct {
	Enabled bool
	Gates   []*GateType `toml:"gates"`
}

type GateType struct {
	Name string
}

func (g *GateType) String() string {
	return g.Name
}

func LoadDeviceSetting(path string) (*DeviceSetting, error) {
	blob, assetErr := common.ReadFile(path)
	ds := NewDeviceSetting()
	if assetErr != nil {
		zap.L().Info(fmt.Sprintf("Failed to read file:%s Reason:%s", path, assetErr))
		return ds, nil
	}
	if _, err := toml.Decode(blob, ds); err != nil {
		zap.L().Error(fmt.Sprintf("failed to decode blob:%s", blob))
		return &DeviceSetting{}, err
	}
	return ds, nil
}

func NewDeviceSetting() *DeviceSetting {
	return &DeviceSetting{
		DeviceName:   DefaultDeviceName,
		DeviceType:   DefaultDeviceType,
		ProviderName: DefaultProviderName,
		MaxQubits:    DefaultMaxQubits,
		MaxShots:     DefaultMaxShots,
		GateSupport:  NewGateSupport(),
	}
}

// NewGateSupport denies the inverse phase gates. The simulated device mirrors
// hardware that ships s and t but not si and ti, which is what the adjoint
// cases of the suite probe for.
func NewGateSupport() *GateSupport {
	return &GateSupport{
		AllowList: &GateFilter{},
		DenyList: &GateFilter{
			Enabled: true,
			Gates: []*GateType{
				{Name: gate.AdjointName("S")},
				{Name: gate.AdjointName("T")},
			},
		},
	}
}

func NewGateSupportWithAllowList(f *GateFilter) *GateSupport {
	return &GateSupport{
		AllowList: f,
		DenyList:  &GateFilter{},
	}
}

func NewGateSupportWithDenyList(f *GateFilter) *GateSupport {
	return &GateSupport{
		AllowList: &GateFilter{},
		DenyList:  f,
	}
}

func (g *GateSupport) Allows(gateName string) bool {
	if g.AllowList.Enabled && !common.ContainsGateName(gateName, gateNames(g.AllowList.Gates)) {
		return false
	}
	if g.DenyList.Enabled && common.ContainsGateName(gateName, gateNames(g.DenyList.Gates)) {
		return false
	}
	return true
}

// Supported filters a list of gate names down to the ones the device accepts.
func (g *GateSupport) Supported(all []string) []string {
	supported := []string{}
	for _, n := range all {
		if g.Allows(n) {
			supported = append(supported, n)
		}
	}
	return supported
}

func gateNames(list []*GateType) []string {
	names := []string{}
	for _, gt := range list {
		names = append(names, gt.Name)
	}
	return names
}
