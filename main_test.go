package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fukurin00/eikonal_planner/config"
	grid "github.com/fukurin00/eikonal_planner/routing"
	"github.com/fukurin00/eikonal_planner/vehicle"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, input string) *config.Config {
	t.Helper()
	return &config.Config{
		IO: config.IO{Input: input, OutputDir: t.TempDir()},
		Parameters: config.Parameters{
			Method:           "fmm",
			FsmSweepCountLim: 100,
			AwayFromBoundary: true,
			EndRow:           1,
			EndCol:           1,
			StartRow:         3,
			StartCol:         4,
			StepSize:         1,
			OccupiedThresh:   0.65,
		},
	}
}

func writeMap(t *testing.T) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "room.csv")
	require.NoError(t, os.WriteFile(fname, []byte("1,1,1,1,1,1\n1,1,1,1,1,1\n1,1,0,1,1,1\n1,1,1,1,1,1\n1,1,1,1,1,1\n"), 0644))
	return fname
}

func TestBuildGrid(t *testing.T) {
	cfg := testConfig(t, writeMap(t))
	g, solvePath, err := buildGrid(cfg)
	require.NoError(t, err)
	assert.True(t, solvePath)
	assert.True(t, g.Cell(0, 3).IsObstacle(), "boundary is hardened")
	assert.True(t, g.Cell(2, 2).IsObstacle())
	assert.Equal(t, 0.0, g.Cell(1, 1).ArrivalTime)

	cfg.Parameters.EndRow, cfg.Parameters.EndCol = 0, 0
	_, _, err = buildGrid(cfg)
	assert.ErrorIs(t, err, grid.ErrDestinationObstacle)
}

func TestBuildAnalyticGrid(t *testing.T) {
	g, solvePath, err := buildGrid(testConfig(t, "0.05"))
	require.NoError(t, err)
	assert.False(t, solvePath)
	assert.Equal(t, 20, g.Rows())
	assert.Equal(t, 0.05, g.Delta())

	g, _, err = buildGrid(testConfig(t, "no-such-map"))
	require.NoError(t, err)
	assert.Equal(t, defaultAnalyticDelta, g.Delta())
}

func TestRunApp(t *testing.T) {
	cfg := testConfig(t, writeMap(t))
	cfg.IO.SaveResult = true
	for _, m := range []string{"fmm", "my_afm2"} {
		cfg.Parameters.Method = m
		require.NoError(t, runApp(cfg), m)
		for _, f := range []string{"roomTimeMat_" + m + ".csv", "roomPath_" + m + ".csv"} {
			_, err := os.Stat(filepath.Join(cfg.IO.OutputDir, f))
			assert.NoError(t, err, f)
		}
	}

	cfg.Parameters.Method = "dijkstra"
	assert.ErrorIs(t, runApp(cfg), grid.ErrUnknownMethod)
}

func TestMapName(t *testing.T) {
	assert.Equal(t, "room", mapName("maps/room.yaml"))
	assert.Equal(t, "0", mapName("0.01"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, parseLevel("DEBUG"))
	assert.Equal(t, log.WARN, parseLevel("warn"))
	assert.Equal(t, log.INFO, parseLevel(""))
}

func TestPathMessage(t *testing.T) {
	v := vehicle.NewVehicle("a", [2]int{0, 0}, [2]int{0, 2}, 0, 0, 1)
	v.SetPath([][2]int{{0, 0}, {0, 1}, {0, 2}}, false)
	m := pathMessage(v, 0.5)
	assert.Len(t, m.Poses, 3)
	assert.InDelta(t, 1.0, m.Length(), 1e-12)
	assert.Equal(t, "map", m.Header.Frame_id)
}
