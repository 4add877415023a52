package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/table-reservation-web/internal/floorplan"
)

// Site describes the restaurant as shown on the pages.
type Site struct {
	Name   string
	Layout floorplan.Layout
}

type siteFile struct {
	Name      string     `yaml:"name"`
	FloorPlan [][]string `yaml:"floor_plan"`
}

// DefaultSite is used when no site file is configured.
func DefaultSite() Site {
	return Site{Name: "Table Reservations", Layout: floorplan.DefaultLayout}
}

// LoadSite reads the YAML site file at path.  Environment variables in the
// file are expanded before parsing.  An empty path yields DefaultSite; a
// file without floor_plan keeps the default layout.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return site, fmt.Errorf("read site file: %w", err)
	}
	var f siteFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return site, fmt.Errorf("parse site file %s: %w", path, err)
	}
	if f.Name != "" {
		site.Name = f.Name
	}
	if len(f.FloorPlan) > 0 {
		layout, err := floorplan.LayoutFromRows(f.FloorPlan)
		if err != nil {
			return site, fmt.Errorf("site file %s: %w", path, err)
		}
		site.Layout = layout
	}
	return site, nil
}
