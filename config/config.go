// Package config loads simulation settings from TOML files
// Only keys present in the file override engine defaults; [domain] width and height are required
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/physics"
)

// ErrMissingField reports an absent required key, wrapped with the key path
var ErrMissingField = errors.New("missing required field")

// File mirrors the TOML layout; pointers distinguish absent keys from zero values
type File struct {
	Domain     *DomainSection    `toml:"domain"`
	Physics    PhysicsSection    `toml:"physics"`
	Broadphase BroadphaseSection `toml:"broadphase"`

	// Scene is an optional YAML scene path, relative paths resolve against the working directory
	Scene string `toml:"scene"`
}

// DomainSection is the simulation rectangle
type DomainSection struct {
	X      float64  `toml:"x"`
	Y      float64  `toml:"y"`
	Width  *float64 `toml:"width"`
	Height *float64 `toml:"height"`
}

// PhysicsSection overrides parameter defaults
type PhysicsSection struct {
	Gravity             *float64 `toml:"gravity"`
	Damping             *float64 `toml:"damping"`
	Restitution         *float64 `toml:"restitution"`
	BoundaryRestitution *float64 `toml:"boundary_restitution"`
	RestThreshold       *float64 `toml:"rest_threshold"`
	MaxDeltaTime        *float64 `toml:"max_delta_time"`
}

// BroadphaseSection toggles the spatial hash
type BroadphaseSection struct {
	SpatialHash *bool    `toml:"spatial_hash"`
	CellSize    *float64 `toml:"cell_size"`
}

// Settings is a decoded and validated file
type Settings struct {
	Engine engine.Config
	Scene  string
}

// Parse decodes TOML data, applies it over DefaultConfig and validates the result
func Parse(data []byte) (Settings, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Settings{}, fmt.Errorf("config parse: %w", err)
	}
	return f.Settings()
}

// Load reads and parses path
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config read: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Settings converts the sparse file into a full engine configuration
func (f *File) Settings() (Settings, error) {
	if f.Domain == nil {
		return Settings{}, fmt.Errorf("%w: [domain]", ErrMissingField)
	}
	if f.Domain.Width == nil {
		return Settings{}, fmt.Errorf("%w: domain.width", ErrMissingField)
	}
	if f.Domain.Height == nil {
		return Settings{}, fmt.Errorf("%w: domain.height", ErrMissingField)
	}

	cfg := engine.DefaultConfig(physics.Box(f.Domain.X, f.Domain.Y, *f.Domain.Width, *f.Domain.Height))

	p := f.Physics
	override(&cfg.Gravity, p.Gravity)
	override(&cfg.Damping, p.Damping)
	override(&cfg.Restitution, p.Restitution)
	override(&cfg.BoundaryRestitution, p.BoundaryRestitution)
	override(&cfg.RestThreshold, p.RestThreshold)
	override(&cfg.MaxDeltaTime, p.MaxDeltaTime)

	override(&cfg.SpatialHash.EnableOptimization, f.Broadphase.SpatialHash)
	override(&cfg.SpatialHash.CellSize, f.Broadphase.CellSize)

	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return Settings{Engine: cfg, Scene: f.Scene}, nil
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
