//go:build unit
// +build unit

package oracle

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/qonform-team/qonform/common"
	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/device"
	"github.com/stretchr/testify/assert"
	"go.uber.org/dig"
)

func setUpSuiteComponents(t *testing.T, conf *core.Conf) *core.SystemComponents {
	t.Helper()
	core.ResetSetting()
	c := dig.New()
	assert.Nil(t, c.Provide(func() core.DeviceFactory { return &device.Factory{} }))
	assert.Nil(t, c.Provide(func() core.Runner { return &SuiteRunner{} }))
	assert.Nil(t, c.Provide(func() core.Recorder { return &core.MemoryRecorder{} }))
	s := core.NewSystemComponents(c)
	assert.Nil(t, s.Setup(conf))
	return s
}

func suiteConf() *core.Conf {
	return &core.Conf{
		DeviceSettingPath: "no_such_device_setting.toml",
		Seed:              42,
		QueueMaxSize:      100,
	}
}

func caseReportByName(report *core.SuiteReport, name string) *core.CaseReport {
	for _, cr := range report.Cases {
		if cr.Name == name {
			return cr
		}
	}
	return nil
}

func TestSuiteRunnerAnalyticRun(t *testing.T) {
	s := setUpSuiteComponents(t, suiteConf())
	defer s.TearDown()

	report, err := s.RunSuite()
	assert.Nil(t, err)
	assert.NotNil(t, report)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "local-simulator", report.DeviceName)
	assert.Equal(t, 47, report.Total)
	assert.Equal(t, 45, report.Passed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 2, report.XFailed)
	assert.Equal(t, 0, report.XPassed)
	assert.True(t, report.Clean())
	assert.Len(t, report.Cases, 47)
	assert.False(t, time.Time(report.Ended).IsZero())
	assert.Equal(t, 0, s.GetCurrentQueueSize())

	xfailed := caseReportByName(report, "Adjoint(T)")
	assert.NotNil(t, xfailed)
	assert.Equal(t, "xfailed", xfailed.Status)
	assert.Contains(t, xfailed.Message, "capability gap")
}

func TestSuiteRunnerSampledRun(t *testing.T) {
	conf := suiteConf()
	conf.Shots = 8192
	s := setUpSuiteComponents(t, conf)
	defer s.TearDown()

	report, err := s.RunSuite()
	assert.Nil(t, err)
	assert.Equal(t, 47, report.Total)
	assert.Equal(t, 45, report.Passed)
	assert.Equal(t, 2, report.XFailed)
	assert.True(t, report.Clean())
}

func TestSuiteRunnerRecordsEveryCase(t *testing.T) {
	s := setUpSuiteComponents(t, suiteConf())
	defer s.TearDown()

	_, err := s.RunSuite()
	assert.Nil(t, err)

	var recorder core.Recorder
	assert.Nil(t, s.Invoke(func(r core.Recorder) { recorder = r }))
	assert.Eventually(t, func() bool {
		cases := recorder.All()
		if len(cases) != 47 {
			return false
		}
		for _, cd := range cases {
			if !cd.IsFinished() {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)
}

func TestSuiteRunnerAgainstRestrictiveDevice(t *testing.T) {
	dsPath, err := common.GetAssetAbsPath("unit_test_device_setting.toml")
	assert.Nil(t, err)
	conf := suiteConf()
	conf.DeviceSettingPath = dsPath
	s := setUpSuiteComponents(t, conf)
	defer s.TearDown()

	report, err := s.RunSuite()
	assert.Nil(t, err)
	assert.Equal(t, 47, report.Total)
	assert.Equal(t, 7, report.Passed)
	assert.Equal(t, 38, report.Failed)
	assert.Equal(t, 2, report.XFailed)
	assert.Equal(t, 0, report.XPassed)
	assert.False(t, report.Clean())

	failed := caseReportByName(report, "SWAP")
	assert.NotNil(t, failed)
	assert.Equal(t, "failed", failed.Status)
	assert.Contains(t, failed.Message, "capability gap")
}

func TestSuiteRunnerFlagsUnexpectedPass(t *testing.T) {
	settingPath := filepath.Join(t.TempDir(), "device_setting.toml")
	assert.Nil(t, os.WriteFile(settingPath, []byte(heredoc.Doc(`
		device_name = "permissive-simulator"

		[gate_support.deny_list]
		enabled = false
	`)), 0644))
	conf := suiteConf()
	conf.DeviceSettingPath = settingPath
	s := setUpSuiteComponents(t, conf)
	defer s.TearDown()

	report, err := s.RunSuite()
	assert.Nil(t, err)
	assert.Equal(t, "permissive-simulator", report.DeviceName)
	assert.Equal(t, 45, report.Passed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.XFailed)
	assert.Equal(t, 2, report.XPassed)
	assert.False(t, report.Clean())

	xpassed := caseReportByName(report, "Adjoint(S)")
	assert.NotNil(t, xpassed)
	assert.Equal(t, "xpassed", xpassed.Status)
	assert.NotEmpty(t, xpassed.Observed)
}
