package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/gbpplanner/sdf"
)

// GridSpec is the serialized form of a scenario's signed-distance field:
// one value per grid vertex, indexed [y][x], spaced CellSize apart from
// Origin.
type GridSpec struct {
	Values   [][]float64 `json:"values"`
	CellSize float64     `json:"cell_size"`
	Origin   sdf.Point   `json:"origin"`
}

// RobotSpec describes one robot's starting pose and waypoint route. Robots
// spawn stationary at Start.
type RobotSpec struct {
	Start     sdf.Point   `json:"start"`
	Waypoints []sdf.Point `json:"waypoints"`
}

// Scenario is the persisted world description LoadScenario consumes: the
// obstacle field, the two world radii, and every robot's route.
type Scenario struct {
	Name        string      `json:"name"`
	SDF         GridSpec    `json:"sdf"`
	RobotRadius float64     `json:"robot_radius"`
	GoalRadius  float64     `json:"goal_radius"`
	Robots      []RobotSpec `json:"robots"`
}

// validate enforces the structural minimum a scenario needs to run.
func (s Scenario) validate() error {
	if len(s.Robots) == 0 {
		return fmt.Errorf("%w: no robots", ErrBadScenario)
	}
	for i, r := range s.Robots {
		if len(r.Waypoints) == 0 {
			return fmt.Errorf("%w: robot %d has no waypoints", ErrBadScenario, i)
		}
	}
	if s.RobotRadius <= 0 || s.GoalRadius <= 0 {
		return fmt.Errorf("%w: radii must be positive", ErrBadScenario)
	}
	if len(s.SDF.Values) == 0 {
		return fmt.Errorf("%w: empty sdf grid", ErrBadScenario)
	}

	return nil
}

// ParseScenario decodes a scenario from its JSON form and validates it.
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrBadScenario, err)
	}
	if err := s.validate(); err != nil {
		return Scenario{}, err
	}

	return s, nil
}

// LoadScenarioFile reads and parses one scenario descriptor file.
func LoadScenarioFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("orchestrator: LoadScenarioFile: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("orchestrator: LoadScenarioFile %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return s, nil
}

// ListScenarioFiles returns the scenario names (file stems) of every
// *.json descriptor under dir, sorted.
func ListScenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: ListScenarioFiles: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)

	return names, nil
}

// DumpJSON renders the scenario in its canonical indented JSON form.
func (s Scenario) DumpJSON() ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: Scenario.DumpJSON: %w", err)
	}

	return out, nil
}
