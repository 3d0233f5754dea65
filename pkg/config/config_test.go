package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/semaforo/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	f, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg, err := f.Resolve(day)
	require.NoError(t, err)
	assert.Equal(t, "RRRR", cfg.Signals.String())
	assert.Equal(t, 300, cfg.RedGreen)
	assert.Equal(t, 30, cfg.Yellow)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), cfg.Start)
	assert.Equal(t, 30*time.Minute, cfg.Window())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semaforo.yaml")
	content := []byte(`
state: rrgg
red_green: 270
yellow: "20"
start: "08:00"
end: "08:45"
time_layout: "15:04:05"
serve:
  addr: ":9090"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	f, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", f.Serve.Addr)
	assert.Equal(t, "15:04:05", f.TimeLayout)
	require.NotNil(t, f.Start)
	assert.Equal(t, config.Clock{Hour: 8}, *f.Start)

	cfg, err := f.Resolve(day)
	require.NoError(t, err)
	assert.Equal(t, "RRGG", cfg.Signals.String())
	assert.Equal(t, 270, cfg.RedGreen)
	assert.Equal(t, 20, cfg.Yellow)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), cfg.Start)
	assert.Equal(t, 45*time.Minute, cfg.Window())
}

func TestParse_StartOnlyUsesDefaultWindow(t *testing.T) {
	f, err := config.Parse([]byte(`start: "10:00"`))
	require.NoError(t, err)

	cfg, err := f.Resolve(day)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Window())
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "state: [",
		"unknown key":  "colour: red",
		"bad clock":    `start: "25:00"`,
		"bad duration": "red_green: soon",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	f, err := config.Parse([]byte(`state: RRXG`))
	require.NoError(t, err)
	_, err = f.Resolve(day)
	assert.Error(t, err)

	f, err = config.Parse([]byte(`red_green: -10`))
	require.NoError(t, err)
	_, err = f.Resolve(day)
	assert.Error(t, err)
}

func TestDecode_ClockMap(t *testing.T) {
	f, err := config.Decode(map[string]any{"end": map[string]any{"hour": 11, "minute": 15}})
	require.NoError(t, err)
	require.NotNil(t, f.End)
	assert.Equal(t, "11:15", f.End.String())
}
