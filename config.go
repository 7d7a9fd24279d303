package skyisle

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// SceneConfig gathers every generator and controller setting of the
// floating island scene. Fields missing from a config file keep their
// default values.
type SceneConfig struct {
	Seed     int64          `toml:"seed"`
	Island   IslandConfig   `toml:"island"`
	Mountain MountainConfig `toml:"mountains"`
	Ocean    OceanConfig    `toml:"ocean"`
	Cloud    CloudConfig    `toml:"clouds"`
	Swarm    SwarmConfig    `toml:"butterflies"`
	Unicorn  UnicornConfig  `toml:"unicorn"`
	Sky      SkyConfig      `toml:"sky"`
	Camera   CameraConfig   `toml:"camera"`
	Bloom    BloomConfig    `toml:"bloom"`
}

// DefaultSceneConfig returns the stock floating island.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Seed:     1,
		Island:   DefaultIslandConfig(),
		Mountain: DefaultMountainConfig(),
		Ocean:    DefaultOceanConfig(),
		Cloud:    DefaultCloudConfig(),
		Swarm:    DefaultSwarmConfig(),
		Unicorn:  DefaultUnicornConfig(),
		Sky:      DefaultSkyConfig(),
		Camera:   DefaultCameraConfig(),
		Bloom:    DefaultBloomConfig(),
	}
}

// ParseSceneConfig decodes TOML data over the defaults. Unknown keys are
// an error so typos do not pass silently.
func ParseSceneConfig(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

// LoadSceneConfig reads and parses the named TOML file from fsys.
func LoadSceneConfig(fsys fs.FS, name string) (SceneConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("load scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// LoadSceneConfigFile reads and parses the TOML file at path. Absolute
// paths and paths that climb out of the working directory are accepted.
func LoadSceneConfigFile(path string) (SceneConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("load scene config: %w", err)
	}
	return LoadSceneConfig(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

// Marshal encodes the config as TOML.
func (c SceneConfig) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode scene config: %w", err)
	}
	return data, nil
}

// Validate rejects settings the generators cannot build from.
func (c SceneConfig) Validate() error {
	switch {
	case c.Unicorn.Trail.Capacity <= 0:
		return fmt.Errorf("scene config: unicorn.trail.capacity must be positive, got %d", c.Unicorn.Trail.Capacity)
	case c.Unicorn.Flight.MaxSpeed <= 0:
		return fmt.Errorf("scene config: unicorn.flight.max_speed must be positive, got %g", c.Unicorn.Flight.MaxSpeed)
	case c.Unicorn.Flight.Bounds.Empty():
		return fmt.Errorf("scene config: unicorn.flight.bounds min %v exceeds max %v",
			c.Unicorn.Flight.Bounds.Min, c.Unicorn.Flight.Bounds.Max)
	case c.Swarm.Bounds.Empty():
		return fmt.Errorf("scene config: butterflies.bounds min %v exceeds max %v",
			c.Swarm.Bounds.Min, c.Swarm.Bounds.Max)
	case c.Ocean.SegmentsX <= 0 || c.Ocean.SegmentsZ <= 0:
		return fmt.Errorf("scene config: ocean segments must be positive")
	case c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance:
		return fmt.Errorf("scene config: camera distance limits [%g, %g] are invalid",
			c.Camera.MinDistance, c.Camera.MaxDistance)
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return fmt.Errorf("scene config: camera near/far [%g, %g] are invalid", c.Camera.Near, c.Camera.Far)
	}
	return nil
}
