// Package config loads the service configuration file and the geofences it references.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"kuanb/gosm-geofence/geom"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Geofences    []Geofence `yaml:"geofences" validate:"dive"`
	OSM          *OSM       `yaml:"osm,omitempty"`
	MaxBodyBytes int64      `yaml:"max_body_bytes,omitempty" validate:"gte=0"`
}

// Geofence is a named polygon, read from a GeoJSON file or listed inline.
type Geofence struct {
	Name        string            `yaml:"name" validate:"required"`
	File        string            `yaml:"file,omitempty" validate:"required_without=Coordinates,excluded_with=Coordinates"`
	Coordinates []geom.Coordinate `yaml:"coordinates,omitempty" validate:"omitempty,min=3"`
}

// OSM points at an OpenStreetMap PBF extract to serve POIs and areas from.
type OSM struct {
	File    string `yaml:"file" validate:"required"`
	POITag  string `yaml:"poi_tag,omitempty"`
	AreaTag string `yaml:"area_tag,omitempty"`
}

// DefaultMaxBodyBytes limits request bodies when the config does not.
const DefaultMaxBodyBytes = 8 << 20

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &cfg, nil
}

// Validate checks the structural rules of the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Geofences))
	for _, g := range c.Geofences {
		if _, ok := seen[g.Name]; ok {
			return fmt.Errorf("duplicate geofence name %q", g.Name)
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}

// LoadGeofences resolves every configured geofence to validated vertices.
// Relative file paths are resolved against baseDir.
func (c *Config) LoadGeofences(baseDir string) (map[string][]geom.Coordinate, error) {
	geofences := make(map[string][]geom.Coordinate, len(c.Geofences))
	for _, g := range c.Geofences {
		vertices, err := g.load(baseDir)
		if err != nil {
			return nil, fmt.Errorf("geofence %q: %w", g.Name, err)
		}
		geofences[g.Name] = vertices
	}
	return geofences, nil
}

func (g Geofence) load(baseDir string) ([]geom.Coordinate, error) {
	if len(g.Coordinates) > 0 {
		if err := geom.ValidatePolygon(g.Coordinates, "coordinates"); err != nil {
			return nil, err
		}
		return g.Coordinates, nil
	}

	path := g.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return geom.PolygonFromGeoJSON(data)
}
