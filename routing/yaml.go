package routing

import (
	"os"

	"gopkg.in/yaml.v2"
)

// MapYaml is the map_server metadata that accompanies a map image.
type MapYaml struct {
	Image          string     `yaml:"image"`
	FreeThresh     float64    `yaml:"free_thresh"`
	OccupiedThresh float64    `yaml:"occupied_thresh"`
	Origin         [3]float64 `yaml:"origin"`
	Resolution     float64    `yaml:"resolution"`
	Negate         float64    `yaml:"negate"`
}

func ReadImageYaml(filename string) (MapYaml, error) {
	data := MapYaml{}
	buf, err := os.ReadFile(filename)
	if err != nil {
		return data, err
	}
	err = yaml.Unmarshal(buf, &data)
	return data, err
}
