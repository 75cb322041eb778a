//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemComponentsSetup(t *testing.T) {
	s := SCWithUnimplementedContainer()
	assert.NotNil(t, s)
	assert.Nil(t, s.Channels.Check())
	assert.Equal(t, s, GetSystemComponents())
	assert.Equal(t, 0, s.GetCurrentQueueSize())
}

func TestSystemComponentsGetDeviceInfo(t *testing.T) {
	s := SCWithUnimplementedContainer()
	info := s.GetDeviceInfo()
	assert.Equal(t, "unimplementedDevice", info.DeviceName)
	assert.Equal(t, MockMaxQubits, info.MaxQubits)
	assert.Equal(t, MockMaxShots, info.MaxShots)
	assert.Equal(t, "Available", info.Status.String())
}

func TestChannelsCheck(t *testing.T) {
	c := NewChannels()
	assert.Nil(t, c.Check())

	broken := &Channels{}
	assert.EqualError(t, broken.Check(), "RecordChan is nil")
}

func TestUnsupportedGateDeviceValidate(t *testing.T) {
	s := SCWithUnsupportedGateDeviceContainer()
	var validateErr error
	s.Invoke(func(f DeviceFactory) error {
		d, err := f.NewDevice(1)
		assert.Nil(t, err)
		validateErr = d.Validate(nil)
		return nil
	})
	assert.ErrorIs(t, validateErr, ErrUnsupportedOperation)
}
