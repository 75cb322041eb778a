//go:build unit
// +build unit

package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
)

func TestParseRunGroupSettings(t *testing.T) {
	im := &ImplMaps{
		PeriodicTaskImplMap: PeriodicTaskImplMap{
			"metrics_log": &DefaultTaskImpl{},
		},
	}
	tests := []struct {
		name      string
		settings  map[string]interface{}
		wantError string
	}{
		{
			name: "known task",
			settings: map[string]interface{}{
				"periodic_tasks": map[string]interface{}{
					"metrics_log": map[string]interface{}{},
				},
			},
		},
		{
			name: "unknown group",
			settings: map[string]interface{}{
				"background_jobs": map[string]interface{}{},
			},
			wantError: "Unknown run group type",
		},
		{
			name: "unknown task",
			settings: map[string]interface{}{
				"periodic_tasks": map[string]interface{}{
					"missing_task": map[string]interface{}{},
				},
			},
			wantError: "failed to find missing_task implementation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rgm, err := parseRunGroupSettings(tt.settings, im)
			if tt.wantError != "" {
				assert.NotNil(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			assert.Nil(t, err)
			assert.Len(t, rgm.PeriodicTasks, 1)
			assert.NotNil(t, rgm.PeriodicTasks["metrics_log"].PeriodicTaskImpl)
		})
	}
}

func TestNewRunContextWithSettingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setting.toml")
	in := heredoc.Doc(`
		[run_group.periodic_tasks.metrics_log]
		period = 1000000000
	`)
	assert.Nil(t, os.WriteFile(path, []byte(in), 0644))

	im := &ImplMaps{
		PeriodicTaskImplMap: PeriodicTaskImplMap{
			"metrics_log": &DefaultTaskImpl{},
		},
	}
	rc, err := NewRunContextWithSettingPath(path, im)
	assert.Nil(t, err)
	task, ok := rc.RunGroupMaps.PeriodicTasks["metrics_log"]
	assert.True(t, ok)
	assert.Equal(t, time.Second, task.Period)
	assert.NotNil(t, task.PeriodicTaskImpl)
}
