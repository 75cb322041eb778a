//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
)

func TestToleranceAllows(t *testing.T) {
	tests := []struct {
		name      string
		tolerance Tolerance
		expected  float64
		observed  float64
		want      bool
	}{
		{
			name:      "exact match",
			tolerance: Tolerance{Abs: 0.01, Rel: 0.0},
			expected:  0.5,
			observed:  0.5,
			want:      true,
		},
		{
			name:      "within absolute tolerance",
			tolerance: Tolerance{Abs: 0.01, Rel: 0.0},
			expected:  0.5,
			observed:  0.509,
			want:      true,
		},
		{
			name:      "outside absolute tolerance",
			tolerance: Tolerance{Abs: 0.01, Rel: 0.0},
			expected:  0.5,
			observed:  0.52,
			want:      false,
		},
		{
			name:      "relative tolerance widens the bound",
			tolerance: Tolerance{Abs: 0.05, Rel: 0.1},
			expected:  0.5,
			observed:  0.58,
			want:      true,
		},
		{
			name:      "relative tolerance does not help near zero",
			tolerance: Tolerance{Abs: 0.05, Rel: 0.1},
			expected:  0.0,
			observed:  0.06,
			want:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tolerance.Allows(tt.expected, tt.observed))
		})
	}
}

func TestToleranceSettingForShots(t *testing.T) {
	ts := NewToleranceSetting()
	assert.Equal(t, ts.Analytic, ts.ForShots(0))
	assert.Equal(t, ts.Sampled, ts.ForShots(1000))
}

func TestToleranceFromComponentSetting(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ToleranceSetting
	}{
		{
			name: "no setting falls back to the default",
			in:   "",
			want: NewToleranceSetting(),
		},
		{
			name: "analytic section overrides the default",
			in: heredoc.Doc(`
				[com.tolerance.analytic]
				abs = 0.001
			`),
			want: ToleranceSetting{
				Analytic: Tolerance{Abs: 0.001, Rel: 0.0},
				Sampled:  Tolerance{Abs: 0.05, Rel: 0.1},
			},
		},
		{
			name: "both sections overridden",
			in: heredoc.Doc(`
				[com.tolerance.analytic]
				abs = 0.002
				rel = 0.01

				[com.tolerance.sampled]
				abs = 0.1
				rel = 0.2
			`),
			want: ToleranceSetting{
				Analytic: Tolerance{Abs: 0.002, Rel: 0.01},
				Sampled:  Tolerance{Abs: 0.1, Rel: 0.2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetSetting()
			assert.Nil(t, globalSetting.parseSetting(tt.in))
			assert.Equal(t, tt.want, ToleranceFromComponentSetting())
		})
	}
}
