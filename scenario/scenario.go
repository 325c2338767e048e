// Package scenario reads and writes YAML problem instances and builds
// the corresponding world and agent lists.
package scenario

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/joonyeolsim/multi-agent-path-finding/core"
)

// Agent pairs one start cell with one goal cell.
type Agent struct {
	Start []int `yaml:"start"`
	Goal  []int `yaml:"goal"`
}

// DynamicObstacle is a cell blocked over an inclusive interval.
// A negative interval end means the cell never frees up.
type DynamicObstacle struct {
	Cell     []int  `yaml:"cell"`
	Interval [2]int `yaml:"interval"`
}

// Scenario is the on-disk problem description.
type Scenario struct {
	Dimension        int               `yaml:"dimension"`
	SpaceLimit       []int             `yaml:"space_limit"`
	StaticObstacles  [][]int           `yaml:"static_obstacles,omitempty"`
	DynamicObstacles []DynamicObstacle `yaml:"dynamic_obstacles,omitempty"`
	Agents           []Agent           `yaml:"agents"`
}

// Parse decodes a YAML scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decoding scenario")
	}
	return &s, nil
}

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	return s, nil
}

// Save writes the scenario as YAML.
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding scenario")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing scenario %s", path)
}

// Build validates the scenario and returns the world plus the start and
// goal lists in agent order. Invalid cells fail with errors wrapping
// core.ErrDimensionMismatch or core.ErrOutOfBounds; a non-positive
// dimension or space limit fails with an error that wraps no sentinel.
func (s *Scenario) Build() (*core.World, []core.Point, []core.Point, error) {
	static := make([]core.Point, len(s.StaticObstacles))
	for i, c := range s.StaticObstacles {
		static[i] = core.Point(c)
	}
	dynamic := make([]core.DynamicObstacle, len(s.DynamicObstacles))
	for i, d := range s.DynamicObstacles {
		dynamic[i] = core.DynamicObstacle{
			Cell:  core.Point(d.Cell),
			Start: d.Interval[0],
			End:   d.Interval[1],
		}
	}

	world, err := core.NewWorld(s.Dimension, s.SpaceLimit, static, dynamic)
	if err != nil {
		return nil, nil, nil, err
	}

	starts := make([]core.Point, len(s.Agents))
	goals := make([]core.Point, len(s.Agents))
	for i, a := range s.Agents {
		starts[i] = core.Point(a.Start)
		goals[i] = core.Point(a.Goal)
		if err := world.ValidatePoint(starts[i]); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "agent %d start", i)
		}
		if err := world.ValidatePoint(goals[i]); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "agent %d goal", i)
		}
	}

	return world, starts, goals, nil
}
