/*package config loads and validates drift run configurations. A run is
described by a YAML file layered over the embedded defaults; any field
the user's file leaves out keeps its default value.*/
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration parameters.
type Config struct {
	// Threads is the number of OS threads to run with. Non-positive
	// values use every core on the node.
	Threads   int             `yaml:"threads"`
	Grid      GridConfig      `yaml:"grid"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Velocity  VelocityConfig  `yaml:"velocity"`
	Particles ParticlesConfig `yaml:"particles"`
	Advect    AdvectConfig    `yaml:"advect"`
	Output    OutputConfig    `yaml:"output"`
}

// GridConfig describes the mesh the velocity fields live on.
type GridConfig struct {
	Dim     int        `yaml:"dim"`
	Cells   [3]int     `yaml:"cells"`
	Origin  [3]float64 `yaml:"origin"`
	Spacing [3]float64 `yaml:"spacing"`
}

// TerrainConfig describes the terrain-fitted vertical coordinate. When
// disabled the mesh is regular and the remaining fields are ignored.
type TerrainConfig struct {
	Enabled bool `yaml:"enabled"`
	// BaseHeight is the elevation of the lowest layer and LayerDepth
	// the nominal spacing between layers.
	BaseHeight float64 `yaml:"base_height"`
	LayerDepth float64 `yaml:"layer_depth"`
	// HillAmplitude and HillWavelength shape the synthetic terrain
	// surface the driver builds: a cosine hill that decays with layer
	// index.
	HillAmplitude  float64 `yaml:"hill_amplitude"`
	HillWavelength float64 `yaml:"hill_wavelength"`
}

// VelocityConfig describes the synthetic velocity field of the run.
type VelocityConfig struct {
	// Kind is "uniform", "rotation", or "shear".
	Kind string `yaml:"kind"`
	// U is the velocity of a uniform field.
	U [3]float64 `yaml:"u"`
	// Omega is the angular frequency of a rotation field and the shear
	// rate of a shear field.
	Omega float64 `yaml:"omega"`
}

// ParticlesConfig describes how tracers are seeded.
type ParticlesConfig struct {
	N    int    `yaml:"n"`
	Seed uint64 `yaml:"seed"`
}

// AdvectConfig describes the time integration of the run.
type AdvectConfig struct {
	// Scheme is "euler" or "midpoint".
	Scheme string  `yaml:"scheme"`
	Dt     float64 `yaml:"dt"`
	Steps  int     `yaml:"steps"`
	// RecordEvery is the number of steps between recorded trajectory
	// frames.
	RecordEvery int `yaml:"record_every"`
}

// OutputConfig describes what the run writes and where.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	CSV      bool   `yaml:"csv"`
	Snapshot bool   `yaml:"snapshot"`
}

// Load returns the run configuration: the embedded defaults with the
// given file, if any, layered on top.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values drift cannot run with.
func (cfg *Config) Validate() error {
	if cfg.Grid.Dim < 1 || cfg.Grid.Dim > 3 {
		return fmt.Errorf("grid.dim is %d, but must be 1, 2, or 3.",
			cfg.Grid.Dim)
	}
	for k := 0; k < cfg.Grid.Dim; k++ {
		if cfg.Grid.Cells[k] < 1 {
			return fmt.Errorf("grid.cells[%d] is %d, but every axis "+
				"needs at least one cell.", k, cfg.Grid.Cells[k])
		}
		if cfg.Grid.Spacing[k] <= 0 {
			return fmt.Errorf("grid.spacing[%d] is %g, but cell sizes "+
				"must be positive.", k, cfg.Grid.Spacing[k])
		}
	}

	if cfg.Terrain.Enabled {
		if cfg.Grid.Dim == 1 {
			return fmt.Errorf("terrain is enabled on a 1-D mesh, but " +
				"terrain-fitted meshes need a vertical axis.")
		}
		if cfg.Terrain.LayerDepth <= 0 {
			return fmt.Errorf("terrain.layer_depth is %g, but layer "+
				"heights must strictly increase.", cfg.Terrain.LayerDepth)
		}
		if cfg.Terrain.HillWavelength <= 0 {
			return fmt.Errorf("terrain.hill_wavelength is %g, but must "+
				"be positive.", cfg.Terrain.HillWavelength)
		}
	}

	switch cfg.Velocity.Kind {
	case "uniform", "rotation", "shear":
	default:
		return fmt.Errorf("velocity.kind is '%s', but the only valid "+
			"kinds are 'uniform', 'rotation', and 'shear'.",
			cfg.Velocity.Kind)
	}

	switch cfg.Advect.Scheme {
	case "euler", "midpoint":
	default:
		return fmt.Errorf("advect.scheme is '%s', but the only valid "+
			"schemes are 'euler' and 'midpoint'.", cfg.Advect.Scheme)
	}
	if cfg.Advect.Dt <= 0 {
		return fmt.Errorf("advect.dt is %g, but must be positive.",
			cfg.Advect.Dt)
	}
	if cfg.Advect.Steps < 1 {
		return fmt.Errorf("advect.steps is %d, but must be at least 1.",
			cfg.Advect.Steps)
	}
	if cfg.Advect.RecordEvery < 1 {
		return fmt.Errorf("advect.record_every is %d, but must be at "+
			"least 1.", cfg.Advect.RecordEvery)
	}

	if cfg.Particles.N < 1 {
		return fmt.Errorf("particles.n is %d, but must be at least 1.",
			cfg.Particles.N)
	}

	return nil
}
