package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fukurin00/eikonal_planner/config"
	"github.com/fukurin00/eikonal_planner/msg"
	"github.com/fukurin00/eikonal_planner/publish"
	grid "github.com/fukurin00/eikonal_planner/routing"
	"github.com/fukurin00/eikonal_planner/vehicle"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const defaultAnalyticDelta float64 = 0.01

var (
	cfgFile = flag.String("config", "", "configuration file (*.ini)")

	logger = log.New("planner")
)

// LoggingSettings sends every package logger to stdout and a dated log file.
func LoggingSettings(c config.Log) (io.Closer, error) {
	now := time.Now()
	dir := filepath.Join(c.Dir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	logfile, err := os.OpenFile(filepath.Join(dir, now.Format("2006-01-02-15")+".log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	out := io.MultiWriter(os.Stdout, logfile)
	lvl := parseLevel(c.Level)
	for _, l := range []*log.Logger{logger, grid.Logger, publish.Logger} {
		l.SetOutput(out)
		l.SetLevel(lvl)
		l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	}
	return logfile, nil
}

func parseLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}

// buildGrid reads the obstacle map named by IO.input. When it cannot be
// opened, the input is the spacing of the analytic speed field and no path
// is planned.
func buildGrid(cfg *config.Config) (g *grid.GridMap, shouldSolvePath bool, err error) {
	p := cfg.Parameters
	if _, statErr := os.Stat(cfg.IO.Input); statErr == nil {
		if g, err = grid.ReadGridMap(cfg.IO.Input, p.OccupiedThresh); err != nil {
			return nil, false, err
		}
		logger.Infof("loaded map %s: %d rows, %d cols", cfg.IO.Input, g.Rows(), g.Cols())

		if p.AwayFromBoundary {
			g.SetBoundary()
		}
		// boundary first, then destination
		if err = g.SetDestination(p.EndRow, p.EndCol); err != nil {
			return nil, false, err
		}
		return g, true, nil
	}

	delta, perr := strconv.ParseFloat(cfg.IO.Input, 64)
	if perr != nil || delta <= 0 || delta >= 1 {
		delta = defaultAnalyticDelta
	}
	logger.Warnf("open file %q failed, solve eikonal equation with precision = %f", cfg.IO.Input, delta)
	return grid.NewAnalyticMap(delta), false, nil
}

func mapName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func saveResults(cfg *config.Config, method grid.Method, g *grid.GridMap, path *grid.Path) error {
	outputDir := cfg.IO.OutputDir
	if err := os.MkdirAll(outputDir, 0751); err != nil {
		return err
	}
	name := mapName(cfg.IO.Input)

	tMatFile := filepath.Join(outputDir, name+"TimeMat_"+method.String()+".csv")
	if err := grid.SaveTimeCsv(tMatFile, g); err != nil {
		return err
	}
	logger.Infof("Time matrix saved in %s", tMatFile)
	if cfg.IO.Plot {
		png := strings.TrimSuffix(tMatFile, ".csv") + ".png"
		if err := grid.SaveHeatMap(png, name+" "+method.String(), g); err != nil {
			logger.Warnf("heatmap: %v", err)
		}
	}

	if path == nil {
		return nil
	}
	pathFile := filepath.Join(outputDir, name+"Path_"+method.String()+".csv")
	if err := grid.SavePathCsv(pathFile, *path); err != nil {
		return err
	}
	logger.Infof("Path saved in %s", pathFile)
	if cfg.IO.Plot {
		png := strings.TrimSuffix(pathFile, ".csv") + ".png"
		if err := grid.PlotPath(png, name+" "+method.String(), g, *path); err != nil {
			logger.Warnf("path plot: %v", err)
		}
	}
	return nil
}

// pathMessage converts the vehicle path to world coordinates and logs its
// extent.
func pathMessage(v *vehicle.Status, delta float64) msg.Path {
	m := msg.NewPath(v.World(delta), "map", time.Now())
	logger.Infof("path message: %d poses, length %f, duration %f seconds, final yaw %f, stamp %f",
		len(m.Poses), m.Length(), m.Duration().Seconds(), m.FinalYaw(), m.Header.Stamp.Float64())
	return m
}

func publishPath(cfg *config.Config, runID string, m msg.Path) {
	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = "planner-" + runID
	}
	pub, err := publish.NewPublisher(cfg.MQTT.Broker, cfg.MQTT.Topic, clientID)
	if err != nil {
		logger.Warn(err)
		return
	}
	defer pub.Close()

	payload, err := m.Payload()
	if err != nil {
		logger.Warn(err)
		return
	}
	if err := pub.Send(payload); err != nil {
		logger.Warn(err)
	}
}

func runApp(cfg *config.Config) error {
	runID := uuid.NewString()
	p := cfg.Parameters

	method, err := grid.ParseMethod(p.Method)
	if err != nil {
		return err
	}
	logger.Infof("start run %s method:%s input:%s", runID, method, cfg.IO.Input)

	g, shouldSolvePath, err := buildGrid(cfg)
	if err != nil {
		return err
	}

	res, err := grid.Solve(g, method, grid.Params{
		LimCount: p.FsmSweepCountLim,
		Thresh:   p.ParallelThresh,
		Workers:  p.Workers,
		Heading:  p.Heading,
		Theta:    p.Theta,
		Radius:   p.Radius,
	})
	if err != nil {
		return err
	}
	logger.Infof("%s cost %f seconds", method, res.Elapsed.Seconds())
	if res.Rounds > 0 {
		logger.Infof("%s swept %d rounds (limit %d)", method, res.Rounds, p.FsmSweepCountLim)
	}
	s := g.Summarize()
	logger.Infof("time field: min %f, max %f, reachable %d, unreachable %d, obstacles %d",
		s.MinTime, s.MaxTime, s.Reachable, s.Unreachable, s.Obstacles)

	var path *grid.Path
	var v *vehicle.Status
	if shouldSolvePath {
		pth, err := grid.GetPath(g, p.StartRow, p.StartCol, p.StepSize)
		if err != nil {
			return err
		}
		path = &pth
		logger.Infof("path has %d cells, length %f, stop: %s", len(pth.Cells), pth.Length(), pth.Stop)

		start, end := [2]int{p.StartRow, p.StartCol}, [2]int{p.EndRow, p.EndCol}
		if ref, cost, ok := grid.ReferencePath(g, start, end); ok {
			logger.Infof("reference path has %d cells, time %f", len(ref), cost)
		} else {
			logger.Warnf("no reference path from %v to %v", start, end)
		}

		// anisotropic methods march from the vehicle at the destination cell
		if method.Anisotropic() {
			v = vehicle.NewVehicle(runID, end, start, p.Heading, p.Theta, p.Radius)
		} else {
			v = vehicle.NewVehicle(runID, start, end, p.Heading, p.Theta, p.Radius)
		}
		v.SetPath(pth.Cells, method.Anisotropic())
		if !v.CheckDest() {
			logger.Warnf("path of vehicle %s does not reach %v", v.Id, v.Dest)
		}
	}

	if cfg.IO.SaveResult {
		if err := saveResults(cfg, method, g, path); err != nil {
			return err
		}
	}

	if v != nil && v.HavePath {
		m := pathMessage(v, g.Delta())
		if cfg.MQTT.Broker != "" {
			publishPath(cfg, runID, m)
		}
	}
	return nil
}

func main() {
	flag.Parse()
	if *cfgFile == "" && flag.NArg() == 1 {
		*cfgFile = flag.Arg(0)
	}
	if *cfgFile == "" {
		fmt.Fprintf(os.Stderr, "Path Planning for 2D map!\n\tUsage: %s -config <*.ini>\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.FromIni(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	closer, err := LoggingSettings(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := runApp(cfg); err != nil {
		if errors.Is(err, grid.ErrDestinationObstacle) || errors.Is(err, grid.ErrUnknownMethod) {
			logger.Errorf("configuration error: %v", err)
		} else {
			logger.Error(err)
		}
		closer.Close()
		os.Exit(1)
	}
}
