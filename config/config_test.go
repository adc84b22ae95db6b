package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIni(t *testing.T, body string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "planner.ini")
	require.NoError(t, os.WriteFile(fname, []byte(body), 0644))
	return fname
}

func TestFromIni(t *testing.T) {
	cfg, err := FromIni(writeIni(t, `
[IO]
input = maps/room.yaml
saveResult = true
outputDir = out
plot = true

[Parameters]
method = afm2
fsmSweepCountLim = 20
awayFromBoundary = true
endRow = 10
endCol = 12
startRow = 3
startCol = 4
stepSize = 2
heading = 1.5
theta = -0.5
radius = 3

[MQTT]
broker = tcp://localhost:1883
`))
	require.NoError(t, err)

	assert.Equal(t, IO{Input: "maps/room.yaml", SaveResult: true, OutputDir: "out", Plot: true}, cfg.IO)
	p := cfg.Parameters
	assert.Equal(t, "afm2", p.Method)
	assert.Equal(t, 20, p.FsmSweepCountLim)
	assert.True(t, p.AwayFromBoundary)
	assert.Equal(t, [4]int{10, 12, 3, 4}, [4]int{p.EndRow, p.EndCol, p.StartRow, p.StartCol})
	assert.Equal(t, 2, p.StepSize)
	assert.Equal(t, 1.5, p.Heading)
	assert.Equal(t, -0.5, p.Theta)
	assert.Equal(t, 3.0, p.Radius)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "vehicle/path", cfg.MQTT.Topic)
}

func TestFromIniDefaults(t *testing.T) {
	cfg, err := FromIni(writeIni(t, "[IO]\ninput = 0.01\n"))
	require.NoError(t, err)

	assert.Equal(t, "0.01", cfg.IO.Input)
	assert.False(t, cfg.IO.SaveResult)
	assert.Equal(t, 100, cfg.Parameters.FsmSweepCountLim)
	assert.Equal(t, 1000, cfg.Parameters.ParallelThresh)
	assert.Equal(t, runtime.NumCPU(), cfg.Parameters.Workers)
	assert.Equal(t, -1, cfg.Parameters.EndRow)
	assert.Equal(t, 1, cfg.Parameters.StepSize)
	assert.Equal(t, 0.65, cfg.Parameters.OccupiedThresh)
	assert.Equal(t, Log{Level: "info", Dir: "log"}, cfg.Log)
	assert.Empty(t, cfg.MQTT.Broker)
}

func TestFromIniErrors(t *testing.T) {
	_, err := FromIni("planner.yaml")
	assert.ErrorIs(t, err, ErrNotConfigFile)

	_, err = FromIni(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}
