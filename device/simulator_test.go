//go:build unit
// +build unit

package device

import (
	"math"
	"testing"

	"github.com/qonform-team/qonform/circuit"
	"github.com/qonform-team/qonform/common"
	"github.com/qonform-team/qonform/core"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func testConf(t *testing.T, shots int) *core.Conf {
	t.Helper()
	dsPath, err := common.GetAssetAbsPath("unit_test_device_setting.toml")
	if err != nil {
		t.Fatal(err)
	}
	return &core.Conf{
		DeviceSettingPath: dsPath,
		Shots:             shots,
		Seed:              42,
	}
}

func bellCircuit() *circuit.Circuit {
	return circuit.New(2).Apply("Hadamard", 0).Apply("CNOT", 0, 1)
}

func TestLocalSimulatorExecute(t *testing.T) {
	d := &LocalSimulator{}
	assert.Nil(t, d.Setup(testConf(t, 0)))

	c := bellCircuit()
	assert.Nil(t, d.Validate(c))

	r, err := d.Execute(c)
	assert.Nil(t, err)
	assert.Len(t, r.Probabilities, 4)
	for i, want := range []float64{0.5, 0, 0, 0.5} {
		assert.InDelta(t, want, r.Probabilities[i], 1e-12)
	}
	assert.Empty(t, r.Counts)
	assert.Equal(t, 0, r.Shots)
}

func TestLocalSimulatorExecutePreparations(t *testing.T) {
	d := &LocalSimulator{}
	assert.Nil(t, d.Setup(testConf(t, 0)))

	t.Run("basis preparation", func(t *testing.T) {
		c := circuit.New(4).PrepareBasis(0, 0, 1, 0)
		assert.Nil(t, d.Validate(c))
		r, err := d.Execute(c)
		assert.Nil(t, err)
		assert.Len(t, r.Probabilities, 16)
		for i, p := range r.Probabilities {
			want := 0.0
			if i == 2 {
				want = 1.0
			}
			assert.InDelta(t, want, p, 1e-12)
		}
	})

	t.Run("state preparation", func(t *testing.T) {
		amp := complex(1/math.Sqrt2, 0)
		c := circuit.New(1).PrepareState([]complex128{amp, amp * 1i})
		assert.Nil(t, d.Validate(c))
		r, err := d.Execute(c)
		assert.Nil(t, err)
		assert.InDelta(t, 0.5, r.Probabilities[0], 1e-12)
		assert.InDelta(t, 0.5, r.Probabilities[1], 1e-12)
	})

	t.Run("raw unitary", func(t *testing.T) {
		u := mat.NewCDense(2, 2, []complex128{0, 1, 1, 0})
		c := circuit.New(1).ApplyUnitary(u, 0)
		assert.Nil(t, d.Validate(c))
		r, err := d.Execute(c)
		assert.Nil(t, err)
		assert.InDelta(t, 0.0, r.Probabilities[0], 1e-12)
		assert.InDelta(t, 1.0, r.Probabilities[1], 1e-12)
	})
}

func TestLocalSimulatorValidate(t *testing.T) {
	tests := []struct {
		name      string
		circ      *circuit.Circuit
		wantError string
	}{
		{
			name: "well-formed circuit passes",
			circ: bellCircuit(),
		},
		{
			name:      "nil circuit",
			circ:      nil,
			wantError: "no input circuit",
		},
		{
			name:      "unknown gate",
			circ:      circuit.New(1).Apply("Teleport", 0),
			wantError: "is not registered",
		},
		{
			name:      "gate outside the allow list",
			circ:      circuit.New(1).Apply("PauliY", 0),
			wantError: "unsupported operation",
		},
		{
			name:      "too many qubits",
			circ:      circuit.New(7).Apply("PauliX", 0),
			wantError: "too many qubits",
		},
	}
	d := &LocalSimulator{}
	assert.Nil(t, d.Setup(testConf(t, 0)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Validate(tt.circ)
			if tt.wantError == "" {
				assert.Nil(t, err)
				return
			}
			assert.NotNil(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestLocalSimulatorValidateShotsCap(t *testing.T) {
	d := &LocalSimulator{}
	assert.Nil(t, d.Setup(testConf(t, 20000)))
	err := d.Validate(bellCircuit())
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "caps at")
}

func TestLocalSimulatorRejectsDeniedAdjoint(t *testing.T) {
	d := &LocalSimulator{}
	conf := &core.Conf{DeviceSettingPath: "no_such_device_setting.toml", Seed: 42}
	assert.Nil(t, d.Setup(conf))

	err := d.Validate(circuit.New(1).Apply("Adjoint(S)", 0))
	assert.ErrorIs(t, err, core.ErrUnsupportedOperation)
	assert.ErrorIs(t, d.Validate(circuit.New(1).Apply("Adjoint(T)", 0)), core.ErrUnsupportedOperation)

	assert.Nil(t, d.Validate(circuit.New(1).Apply("S", 0)))
	assert.Nil(t, d.Validate(circuit.New(1).Apply("T", 0)))
}

func TestLocalSimulatorSampling(t *testing.T) {
	d := &LocalSimulator{}
	assert.Nil(t, d.Setup(testConf(t, 1000)))

	r, err := d.Execute(bellCircuit())
	assert.Nil(t, err)
	assert.Equal(t, 1000, r.Shots)

	total := uint32(0)
	for bits, n := range r.Counts {
		assert.Contains(t, []string{"00", "11"}, bits)
		total += n
	}
	assert.Equal(t, uint32(1000), total)

	// reported probabilities are the sampled frequencies
	assert.InDelta(t, 0.5, r.Probabilities[0], 0.1)
	assert.InDelta(t, 0.0, r.Probabilities[1], 1e-12)
	assert.InDelta(t, 0.0, r.Probabilities[2], 1e-12)
	assert.InDelta(t, 0.5, r.Probabilities[3], 0.1)

	fresh := &LocalSimulator{}
	assert.Nil(t, fresh.Setup(testConf(t, 1000)))
	r2, err := fresh.Execute(bellCircuit())
	assert.Nil(t, err)
	assert.Equal(t, r.Counts, r2.Counts)
}

func TestLocalSimulatorGetDeviceInfo(t *testing.T) {
	d := &LocalSimulator{}
	assert.Nil(t, d.Setup(testConf(t, 0)))

	info := d.GetDeviceInfo()
	assert.Equal(t, "unit-test-simulator", info.DeviceName)
	assert.Equal(t, "qonform", info.ProviderName)
	assert.Equal(t, core.Available, info.Status)
	assert.Equal(t, 6, info.MaxQubits)
	assert.ElementsMatch(t, []string{"PauliX", "Hadamard", "CNOT"}, info.SupportedGates)
}
