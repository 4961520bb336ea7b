// Package scene loads body layouts from YAML and generates random batches
package scene

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/boxphys/physics"
)

// ErrDuplicateID is returned when two bodies in one scene share a non-zero ID
var ErrDuplicateID = errors.New("duplicate body id")

// Scene is a named list of bodies
// Bodies with ID 0 receive IDs when added to a simulation
type Scene struct {
	Name   string              `yaml:"name"`
	Bodies []physics.RigidBody `yaml:"bodies"`
}

// Parse decodes YAML data and normalizes every body
// Static bodies get infinite mass, dynamic bodies without a mass default to 1
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene parse: %w", err)
	}

	seen := make(map[int]int, len(s.Bodies))
	for i := range s.Bodies {
		b := &s.Bodies[i]
		switch {
		case b.Static:
			b.Mass = math.Inf(1)
		case b.Mass == 0:
			b.Mass = 1
		}

		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("scene body #%d: %w", i, err)
		}
		if b.ID == 0 {
			continue
		}
		if prev, ok := seen[b.ID]; ok {
			return nil, fmt.Errorf("%w: %d at #%d and #%d", ErrDuplicateID, b.ID, prev, i)
		}
		seen[b.ID] = i
	}
	return &s, nil
}

// Load reads and parses a YAML scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene read: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}
