package core

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const ToleranceSettingName = "tolerance"

// Tolerance bounds the elementwise distance between an expected and an
// observed probability. A probability pair is close enough when
// |observed-expected| <= Abs + Rel*|expected|.
type Tolerance struct {
	Abs float64 `toml:"abs" json:"abs"`
	Rel float64 `toml:"rel" json:"rel"`
}

func (t Tolerance) Allows(expected, observed float64) bool {
	return math.Abs(observed-expected) <= t.Abs+t.Rel*math.Abs(expected)
}

func (t Tolerance) String() string {
	st, err := jsonIter.Marshal(t)
	if err != nil {
		zap.L().Error("Failed to marshal core.Tolerance")
		return ""
	}
	return string(st)
}

// ToleranceSetting holds one tolerance per execution mode. The same pair is
// applied to every case of a run, whatever the gate under test is.
type ToleranceSetting struct {
	Analytic Tolerance `toml:"analytic" json:"analytic"`
	Sampled  Tolerance `toml:"sampled" json:"sampled"`
}

func NewToleranceSetting() ToleranceSetting {
	return ToleranceSetting{
		Analytic: Tolerance{Abs: 0.01, Rel: 0.0},
		Sampled:  Tolerance{Abs: 0.05, Rel: 0.1},
	}
}

func (ts ToleranceSetting) ForShots(shots int) Tolerance {
	if shots == 0 {
		return ts.Analytic
	}
	return ts.Sampled
}

func ToleranceFromComponentSetting() ToleranceSetting {
	ts := NewToleranceSetting()
	s, ok := GetComponentSetting(ToleranceSettingName)
	if !ok {
		zap.L().Debug("tolerance setting is not found. Using the default setting")
		return ts
	}
	zap.L().Debug(fmt.Sprintf("tolerance setting:%v", s))
	// TODO: too adhoc. fix this
	mapped, ok := s.(map[string]interface{})
	if !ok {
		zap.L().Error(fmt.Sprintf("failed to cast tolerance setting:%v. Using the default setting", s))
		return ts
	}
	if analytic, ok := mapped["analytic"].(map[string]interface{}); ok {
		ts.Analytic = toleranceFromMap(analytic, ts.Analytic)
	}
	if sampled, ok := mapped["sampled"].(map[string]interface{}); ok {
		ts.Sampled = toleranceFromMap(sampled, ts.Sampled)
	}
	return ts
}

func toleranceFromMap(m map[string]interface{}, def Tolerance) Tolerance {
	t := def
	if v, ok := m["abs"].(float64); ok {
		t.Abs = v
	}
	if v, ok := m["rel"].(float64); ok {
		t.Rel = v
	}
	return t
}
