/*
Copyright © 2026 the TopoCorr authors.
This file is part of TopoCorr.

TopoCorr is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

TopoCorr is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with TopoCorr.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package topocorrutil holds configuration handling and diagnostic
// reporting for topographic correction runs, so that embedding
// programs can configure the engine from files and environment
// variables without hand-building a topocorr.Config.
package topocorrutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/topocorr"
	"github.com/spf13/cast"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage string
	defaultVal  interface{}
}

func init() {
	// Options are the configuration options available for a
	// correction run.
	options = []struct {
		name, usage string
		defaultVal  interface{}
	}{
		{
			name: "Correction.Method",
			usage: `
              Correction.Method specifies the topographic correction strategy.
              Valid options are c, minnaert, stat, cosine, and scs.`,
			defaultVal: "c",
		},
		{
			name: "Correction.NStrat",
			usage: `
              Correction.NStrat specifies the number of equal-width illumination
              bins used to stratify the Minnaert regression sample. Values below
              2 disable stratification. It is ignored by the other methods.`,
			defaultVal: 0,
		},
		{
			name: "Correction.IllumFloor",
			usage: `
              Correction.IllumFloor specifies the floor applied to cos(incidence)
              wherever it appears in a denominator. If zero, the engine default
              is used.`,
			defaultVal: 0.0,
		},
		{
			name: "Solar.Elevation",
			usage: `
              Solar.Elevation specifies the solar elevation angle above the
              horizon from the scene metadata.`,
			defaultVal: 0.0,
		},
		{
			name: "Solar.Azimuth",
			usage: `
              Solar.Azimuth specifies the solar azimuth angle, the compass
              bearing from the scene to the sun, from the scene metadata.`,
			defaultVal: 0.0,
		},
		{
			name: "Solar.Units",
			usage: `
              Solar.Units specifies the angle units of Solar.Elevation and
              Solar.Azimuth: "degrees" or "radians".`,
			defaultVal: "degrees",
		},
		{
			name: "Grid.Dx",
			usage: `
              Grid.Dx specifies the cell edge length in the x direction, in the
              units of the grid projection (typically meters).`,
			defaultVal: 0.0,
		},
		{
			name: "Grid.Dy",
			usage: `
              Grid.Dy specifies the cell edge length in the y direction, in the
              units of the grid projection (typically meters).`,
			defaultVal: 0.0,
		},
		{
			name: "Grid.Xo",
			usage: `
              Grid.Xo specifies the X coordinate of the lower-left corner of the
              grid.`,
			defaultVal: 0.0,
		},
		{
			name: "Grid.Yo",
			usage: `
              Grid.Yo specifies the Y coordinate of the lower-left corner of the
              grid.`,
			defaultVal: 0.0,
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("TOPOCORR")
	Cfg.AutomaticEnv()

	for _, option := range options {
		Cfg.SetDefault(option.name, option.defaultVal)
	}
}

// SetConfig finds and reads in the configuration file at cfgpath, if
// there is one.
func SetConfig(cfgpath string) error {
	if cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("topocorr: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// CorrectionConfig unmarshals a viper configuration for a correction
// run.
func CorrectionConfig(cfg *viper.Viper) (topocorr.Config, error) {
	method, err := topocorr.ParseMethod(cfg.GetString("Correction.Method"))
	if err != nil {
		return topocorr.Config{}, err
	}
	nStrat, err := cast.ToIntE(cfg.Get("Correction.NStrat"))
	if err != nil {
		return topocorr.Config{}, fmt.Errorf("topocorr: parsing config variable Correction.NStrat: %v", err)
	}
	if nStrat < 0 {
		return topocorr.Config{}, fmt.Errorf("topocorr: Correction.NStrat must be non-negative but is %d", nStrat)
	}
	floor, err := cast.ToFloat64E(cfg.Get("Correction.IllumFloor"))
	if err != nil {
		return topocorr.Config{}, fmt.Errorf("topocorr: parsing config variable Correction.IllumFloor: %v", err)
	}
	return topocorr.Config{
		Method:     method,
		NStrat:     nStrat,
		IllumFloor: floor,
	}, nil
}

// SolarConfig unmarshals a viper configuration for the scene's solar
// angles, converting from degrees when the configured units call
// for it.
func SolarConfig(cfg *viper.Viper) (topocorr.SolarAngles, error) {
	elev := cfg.GetFloat64("Solar.Elevation")
	az := cfg.GetFloat64("Solar.Azimuth")
	switch units := cfg.GetString("Solar.Units"); units {
	case "degrees":
		return topocorr.SolarAnglesDeg(elev, az), nil
	case "radians":
		return topocorr.SolarAngles{Elevation: elev, Azimuth: az}, nil
	default:
		return topocorr.SolarAngles{}, fmt.Errorf("topocorr: the Solar.Units variable needs to be "+
			"set to either degrees or radians, but is currently set to `%s`", units)
	}
}

// GridConfig unmarshals a viper configuration for the scene grid
// definition with the given cell counts, which come from the rasters
// themselves rather than from configuration.
func GridConfig(cfg *viper.Viper, nx, ny int) (*topocorr.GridDef, error) {
	g := &topocorr.GridDef{
		Nx: nx,
		Ny: ny,
		Dx: cfg.GetFloat64("Grid.Dx"),
		Dy: cfg.GetFloat64("Grid.Dy"),
		Xo: cfg.GetFloat64("Grid.Xo"),
		Yo: cfg.GetFloat64("Grid.Yo"),
	}
	if err := g.Check(); err != nil {
		return nil, err
	}
	return g, nil
}

// LogDiagnostics writes the per-band fitted parameters and clamp
// counts from a correction run to lg.
func LogDiagnostics(lg logrus.FieldLogger, r *topocorr.Result) {
	for _, d := range r.Diagnostics {
		f := logrus.Fields{
			"band":    d.Band,
			"method":  d.Method,
			"clamped": d.Clamped,
		}
		switch d.Method {
		case topocorr.CCorrection:
			f["c"] = d.C
		case topocorr.Minnaert:
			f["k"] = d.K
		case topocorr.Statistical:
			f["a"], f["b"], f["mean"] = d.A, d.B, d.Mean
		}
		if d.Identity {
			lg.WithFields(f).Warn("band returned uncorrected")
			continue
		}
		lg.WithFields(f).Info("band corrected")
	}
}
