// Package config loads the renderer's tunable parameters from a YAML file,
// falling back to the built-in defaults for anything the file omits or when
// no file is given at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Camera holds the parameters of the built-in Full/Sampling camera driver.
type Camera struct {
	RaytraceRecurse     int `yaml:"raytrace_recurse"`
	NumCameraRaySamples int `yaml:"num_camera_ray_samples"`
}

// PhotonMapping holds the two-pass photon map's tunables.
type PhotonMapping struct {
	RecurseApproximateThreshold int     `yaml:"recurse_approximate_threshold"`
	PhotonRecurse               int     `yaml:"photon_recurse"`
	NumPhotons                  int     `yaml:"num_photons"`
	PhotonSearchRadius          float64 `yaml:"photon_search_radius"`
	PhotonSearchCount           int     `yaml:"photon_search_count"`
	UseShadowEstimation         bool    `yaml:"use_shadow_estimation"`
}

// Materials holds shading-kernel tunables.
type Materials struct {
	ShadowDistanceLimit float64 `yaml:"shadow_distance_limit"`
}

// Objects holds geometry-kernel tolerances.
type Objects struct {
	RoundingError   float64 `yaml:"rounding_error"`
	PolymeshEpsilon float64 `yaml:"polymesh_epsilon"`
}

// Sampler holds the multi-jittered sampler's tunables.
type Sampler struct {
	NumSets int `yaml:"num_sets"`
}

// Framebuffer holds the output image's dimensions and their hard ceiling.
type Framebuffer struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// CornellBox holds the dimensions of the built-in Cornell box demo scene.
type CornellBox struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
	Height float64 `yaml:"height"`
}

// Config is the full, structured configuration record. Every field has a
// default (see Default()), so a Config is always usable even when loaded
// from an empty or partial file.
type Config struct {
	Camera        Camera        `yaml:"camera"`
	PhotonMapping PhotonMapping `yaml:"photon_mapping"`
	Materials     Materials     `yaml:"materials"`
	Objects       Objects       `yaml:"objects"`
	Sampler       Sampler       `yaml:"sampler"`
	Framebuffer   Framebuffer   `yaml:"framebuffer"`
	CornellBox    CornellBox    `yaml:"cornell_box"`
}

// Default returns the built-in configuration record.
func Default() Config {
	return Config{
		Camera: Camera{
			RaytraceRecurse:     5,
			NumCameraRaySamples: 16,
		},
		PhotonMapping: PhotonMapping{
			RecurseApproximateThreshold: 2,
			PhotonRecurse:               3,
			NumPhotons:                  202500,
			PhotonSearchRadius:          5.0,
			PhotonSearchCount:           100,
			UseShadowEstimation:         false,
		},
		Materials: Materials{
			ShadowDistanceLimit: 50.0,
		},
		Objects: Objects{
			RoundingError:   0.001,
			PolymeshEpsilon: 1e-6,
		},
		Sampler: Sampler{
			NumSets: 4,
		},
		Framebuffer: Framebuffer{
			Width:     512,
			Height:    512,
			MaxWidth:  2048,
			MaxHeight: 2048,
		},
		CornellBox: CornellBox{
			Width:  100,
			Length: 150,
			Height: 90,
		},
	}
}

// Load reads a YAML configuration record from path. A missing file is not
// an error: Load returns the defaults unchanged. An unreadable file or
// malformed YAML is reported as an error, returned together with Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return cfg, nil
}
