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

// Package topocorr performs topographic correction of satellite
// radiance imagery: it adjusts per-pixel radiance so that values read
// as if the surface were flat, compensating for illumination
// differences caused by terrain slope and orientation relative to the
// sun. Slope and aspect are derived from a digital elevation model,
// combined with the scene's solar angles into a per-pixel
// cos(incidence) illumination map, and each radiance band is then
// normalized with one of several correction formulas. All grids are
// github.com/ctessum/sparse dense arrays; loading and saving them is
// the responsibility of the caller.
package topocorr

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// Scene holds the co-registered inputs for one correction run. Every
// grid must match the grid definition; the solar angles apply
// uniformly to the whole scene.
type Scene struct {
	Grid *GridDef

	// Elevation is the digital elevation model [grid projection
	// vertical units, typically meters].
	Elevation *sparse.DenseArray

	// Bands holds the raw radiance grids, one per spectral band.
	Bands []*sparse.DenseArray

	Sun SolarAngles
}

// Result holds the outputs of a correction run. The intermediate
// terrain parameters and illumination map are included for
// diagnostics and for external rendering; all fields are plain grids
// with no behavior attached.
type Result struct {
	// Bands holds the topographically corrected radiance grids, in
	// the same order as the input bands.
	Bands []*sparse.DenseArray

	// Illumination is the per-pixel cos(incidence angle) map.
	Illumination *sparse.DenseArray

	Terrain *Terrain

	// Diagnostics holds the fitted parameters and clamp counts for
	// each band.
	Diagnostics []*BandDiagnostics
}

// Run validates the scene, derives the terrain parameters and
// illumination map, and corrects each band independently using
// parameters fitted from that band alone. Input-validation errors are
// fatal for the whole run; per-pixel illumination singularities are
// floored and counted per band instead.
func (cfg Config) Run(scene *Scene) (*Result, error) {
	if _, err := ParseMethod(string(cfg.Method)); err != nil {
		return nil, err
	}
	if cfg.NStrat < 0 {
		return nil, fmt.Errorf("topocorr: nStrat must be non-negative but is %d", cfg.NStrat)
	}
	if err := scene.Grid.Check(); err != nil {
		return nil, err
	}
	if err := checkCoregistered(scene.Grid, scene.Elevation, "elevation grid"); err != nil {
		return nil, err
	}
	for b, band := range scene.Bands {
		if err := checkCoregistered(scene.Grid, band, fmt.Sprintf("band %d", b)); err != nil {
			return nil, err
		}
	}

	terrain, err := TerrainParams(scene.Elevation, scene.Grid)
	if err != nil {
		return nil, err
	}
	illum := Illumination(terrain, scene.Sun)

	r := &Result{
		Bands:        make([]*sparse.DenseArray, len(scene.Bands)),
		Illumination: illum,
		Terrain:      terrain,
		Diagnostics:  make([]*BandDiagnostics, len(scene.Bands)),
	}
	for b, band := range scene.Bands {
		corrected, diag, err := CorrectBand(b, band, illum, terrain, scene.Sun, cfg)
		if err != nil {
			return nil, err
		}
		r.Bands[b] = corrected
		r.Diagnostics[b] = diag
	}
	return r, nil
}
