// Package config loads the INI run configuration of the planner.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

var ErrNotConfigFile = errors.New("config: not an .ini configuration file")

// IO selects the map input and the result outputs.
type IO struct {
	Input      string
	SaveResult bool
	OutputDir  string
	Plot       bool
}

// Parameters are the solver and path parameters.
type Parameters struct {
	Method           string
	FsmSweepCountLim int
	ParallelThresh   int
	Workers          int
	AwayFromBoundary bool
	EndRow, EndCol   int
	StartRow         int
	StartCol         int
	StepSize         int
	Heading          float64
	Theta            float64
	Radius           float64
	OccupiedThresh   float64
}

type Log struct {
	Level string
	Dir   string
}

// MQTT is disabled when Broker is empty.
type MQTT struct {
	Broker   string
	Topic    string
	ClientID string
}

type Config struct {
	IO         IO
	Parameters Parameters
	Log        Log
	MQTT       MQTT
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("io.input", "")
	vp.SetDefault("io.saveResult", false)
	vp.SetDefault("io.outputDir", "./")
	vp.SetDefault("io.plot", false)

	vp.SetDefault("parameters.method", "")
	vp.SetDefault("parameters.fsmSweepCountLim", 100)
	vp.SetDefault("parameters.parallelThresh", 1000)
	vp.SetDefault("parameters.workers", runtime.NumCPU())
	vp.SetDefault("parameters.awayFromBoundary", false)
	vp.SetDefault("parameters.endRow", -1)
	vp.SetDefault("parameters.endCol", -1)
	vp.SetDefault("parameters.startRow", -1)
	vp.SetDefault("parameters.startCol", -1)
	vp.SetDefault("parameters.stepSize", 1)
	vp.SetDefault("parameters.heading", 0.0)
	vp.SetDefault("parameters.theta", 0.0)
	vp.SetDefault("parameters.radius", 0.0)
	vp.SetDefault("parameters.occupiedThresh", 0.65)

	vp.SetDefault("log.level", "info")
	vp.SetDefault("log.dir", "log")

	vp.SetDefault("mqtt.broker", "")
	vp.SetDefault("mqtt.topic", "vehicle/path")
	vp.SetDefault("mqtt.clientID", "")
}

// FromIni reads an .ini file. Sections map to the Config fields, keys are
// case-insensitive.
func FromIni(path string) (*Config, error) {
	if !strings.EqualFold(filepath.Ext(path), ".ini") {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigFile, path)
	}

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("ini")
	setDefaults(vp)
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("can not parse configuration file %s: %w", path, err)
	}
	return fromViper(vp), nil
}

func fromViper(vp *viper.Viper) *Config {
	return &Config{
		IO: IO{
			Input:      vp.GetString("io.input"),
			SaveResult: vp.GetBool("io.saveResult"),
			OutputDir:  vp.GetString("io.outputDir"),
			Plot:       vp.GetBool("io.plot"),
		},
		Parameters: Parameters{
			Method:           vp.GetString("parameters.method"),
			FsmSweepCountLim: vp.GetInt("parameters.fsmSweepCountLim"),
			ParallelThresh:   vp.GetInt("parameters.parallelThresh"),
			Workers:          vp.GetInt("parameters.workers"),
			AwayFromBoundary: vp.GetBool("parameters.awayFromBoundary"),
			EndRow:           vp.GetInt("parameters.endRow"),
			EndCol:           vp.GetInt("parameters.endCol"),
			StartRow:         vp.GetInt("parameters.startRow"),
			StartCol:         vp.GetInt("parameters.startCol"),
			StepSize:         vp.GetInt("parameters.stepSize"),
			Heading:          vp.GetFloat64("parameters.heading"),
			Theta:            vp.GetFloat64("parameters.theta"),
			Radius:           vp.GetFloat64("parameters.radius"),
			OccupiedThresh:   vp.GetFloat64("parameters.occupiedThresh"),
		},
		Log: Log{
			Level: vp.GetString("log.level"),
			Dir:   vp.GetString("log.dir"),
		},
		MQTT: MQTT{
			Broker:   vp.GetString("mqtt.broker"),
			Topic:    vp.GetString("mqtt.topic"),
			ClientID: vp.GetString("mqtt.clientID"),
		},
	}
}
