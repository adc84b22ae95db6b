package routing

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path"
	"strings"

	ros "github.com/fukurin00/go_ros_msg"
	_ "github.com/jbuchbinder/gopnm"
)

// CloseThreth is the occupancy value from which a map cell is an obstacle. [0,100]
const CloseThreth int8 = 90

type Point struct {
	X float64
	Y float64
}

// MapMeta is an occupancy map with values in [0,100], -1 for unknown.
// Data is row-major with W columns.
type MapMeta struct {
	W      int
	H      int
	Origin Point
	Reso   float64
	Data   []int8
}

func LoadROSMap(grid ros.OccupancyGrid) *MapMeta {
	m := new(MapMeta)
	m.H = int(grid.Info.Height)
	m.W = int(grid.Info.Width)
	m.Origin = Point{X: grid.Info.Origin.Position.X, Y: grid.Info.Origin.Position.Y}
	m.Reso = float64(grid.Info.Resolution)
	m.Data = grid.Data
	return m
}

// ReadROSMapJSON reads an OccupancyGrid message stored as JSON.
func ReadROSMapJSON(filename string) (*MapMeta, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var grid ros.OccupancyGrid
	if err := json.Unmarshal(buf, &grid); err != nil {
		return nil, fmt.Errorf("decode occupancy grid %s: %w", filename, err)
	}
	return LoadROSMap(grid), nil
}

// ReadStaticMapImage reads a map image in ROS map_server format: a yaml file
// naming the image, its resolution and origin.
func ReadStaticMapImage(yamlFile string, closeThreth float64) (*MapMeta, error) {
	mapConfig, err := ReadImageYaml(yamlFile)
	if err != nil {
		return nil, err
	}
	if mapConfig.OccupiedThresh > 0 {
		closeThreth = mapConfig.OccupiedThresh
	}
	m, err := ReadMapImage(path.Join(path.Dir(yamlFile), mapConfig.Image), closeThreth)
	if err != nil {
		return nil, err
	}
	if mapConfig.Resolution > 0 {
		m.Reso = mapConfig.Resolution
	}
	m.Origin = Point{X: mapConfig.Origin[0], Y: mapConfig.Origin[1]}
	return m, nil
}

// ReadMapImage decodes a PGM/PNG map. Pixels darker than closeThreth
// (occupancy (255-v)/255 above it) are occupied. The bottom image row is
// map row 0.
func ReadMapImage(filename string, closeThreth float64) (*MapMeta, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	imData, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode map image %s: %w", filename, err)
	}

	m := &MapMeta{Reso: DefaultDelta}
	bound := imData.Bounds()
	m.W = bound.Dx()
	m.H = bound.Dy()
	m.Data = make([]int8, m.W*m.H)

	open, close := 0, 0
	for j := 0; j < m.H; j++ {
		for i := 0; i < m.W; i++ {
			pixel := color.GrayModel.Convert(imData.At(bound.Min.X+i, bound.Min.Y+j)).(color.Gray).Y
			a := (255.0 - float64(pixel)) / 255.0
			var v int8
			if a > closeThreth {
				v = 100
				close++
			} else {
				open++
			}
			m.Data[i+(m.H-j-1)*m.W] = v
		}
	}
	Logger.Infof("map %s: %dx%d, open: %d, close: %d", filename, m.W, m.H, open, close)
	return m, nil
}

// GridMap builds the grid of the map: occupied cells are obstacles, the
// spacing is the map resolution.
func (m MapMeta) GridMap() (*GridMap, error) {
	if m.W <= 0 || m.H <= 0 {
		return nil, ErrEmptyMap
	}
	if len(m.Data) != m.W*m.H {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrNonRectangular, len(m.Data), m.W, m.H)
	}
	g := NewGridMap(m.H, m.W, m.Reso)
	for i, d := range m.Data {
		if d >= CloseThreth {
			g.cells[i].Velocity = 0
		}
	}
	return g, nil
}

// ReadCSVMap reads a delimited obstacle map: a cell starting with '0' is an
// obstacle, anything else is traversable with DefaultVelocity.
func ReadCSVMap(r io.Reader) (*GridMap, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptyMap
	}

	rows, cols := len(records), len(records[0])
	g := NewGridMap(rows, cols)
	for i, rec := range records {
		if len(rec) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, i, len(rec), cols)
		}
		for j, v := range rec {
			if strings.HasPrefix(strings.TrimSpace(v), "0") {
				g.Cell(i, j).Velocity = 0
			}
		}
	}
	return g, nil
}

// ReadGridMap reads an obstacle map by extension: .csv, .yaml (map_server),
// .json (OccupancyGrid) or an image decodable by image.Decode (.pgm, .png).
func ReadGridMap(filename string, closeThreth float64) (*GridMap, error) {
	var m *MapMeta
	var err error
	switch strings.ToLower(path.Ext(filename)) {
	case ".csv", ".txt":
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSVMap(f)
	case ".yaml", ".yml":
		m, err = ReadStaticMapImage(filename, closeThreth)
	case ".json":
		m, err = ReadROSMapJSON(filename)
	default:
		m, err = ReadMapImage(filename, closeThreth)
	}
	if err != nil {
		return nil, err
	}
	return m.GridMap()
}
