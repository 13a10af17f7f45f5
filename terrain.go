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

package topocorr

import (
	"math"

	"github.com/ctessum/sparse"
)

// Terrain holds the slope and aspect grids derived from a digital
// elevation model. Both grids have the same shape as the elevation
// grid they were computed from.
type Terrain struct {
	// Slope is the terrain inclination relative to horizontal
	// [radians]; 0 means flat.
	Slope *sparse.DenseArray

	// Aspect is the compass bearing of the steepest-descent
	// direction, clockwise from north, normalized to [0, 2π)
	// [radians]. Cells with zero gradient are assigned aspect 0
	// (due north); at zero slope the aspect has no effect on the
	// illumination model, so the choice is arbitrary but fixed.
	Aspect *sparse.DenseArray
}

// TerrainParams derives slope and aspect from the elevation grid in
// dem using the cell spacing in g. Interior cells use the Horn (1981)
// 3×3 weighted finite difference; cells on the grid border, where the
// full 3×3 neighborhood does not exist, use central differences where
// both neighbors exist and first-order one-sided differences
// otherwise. On a uniform ramp both stencils recover the exact
// gradient, so border cells lose accuracy only where curvature
// reaches the grid edge.
func TerrainParams(dem *sparse.DenseArray, g *GridDef) (*Terrain, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	if err := checkCoregistered(g, dem, "elevation grid"); err != nil {
		return nil, err
	}
	ny, nx := g.Ny, g.Nx
	t := &Terrain{
		Slope:  sparse.ZerosDense(ny, nx),
		Aspect: sparse.ZerosDense(ny, nx),
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			var gx, gy float64 // elevation gradient east and south
			if j > 0 && j < ny-1 && i > 0 && i < nx-1 {
				gx = ((dem.Get(j-1, i+1) + 2*dem.Get(j, i+1) + dem.Get(j+1, i+1)) -
					(dem.Get(j-1, i-1) + 2*dem.Get(j, i-1) + dem.Get(j+1, i-1))) / (8 * g.Dx)
				gy = ((dem.Get(j+1, i-1) + 2*dem.Get(j+1, i) + dem.Get(j+1, i+1)) -
					(dem.Get(j-1, i-1) + 2*dem.Get(j-1, i) + dem.Get(j-1, i+1))) / (8 * g.Dy)
			} else {
				gx = edgeDiff(dem, j, i, 0, 1, g.Dx)
				gy = edgeDiff(dem, j, i, 1, 0, g.Dy)
			}
			slope := math.Atan(math.Hypot(gx, gy))
			t.Slope.Set(slope, j, i)
			if gx != 0 || gy != 0 {
				// Downslope direction: east component -gx,
				// north component +gy (row index increases southward).
				aspect := math.Atan2(-gx, gy)
				if aspect < 0 {
					aspect += 2 * math.Pi
				}
				t.Aspect.Set(aspect, j, i)
			}
		}
	}
	return t, nil
}

// edgeDiff calculates the elevation gradient at cell (j, i) in the
// direction given by (dj, di) using a central difference if both
// neighbors are inside the grid and a one-sided difference otherwise.
func edgeDiff(dem *sparse.DenseArray, j, i, dj, di int, d float64) float64 {
	ny, nx := dem.Shape[0], dem.Shape[1]
	jm, im := j-dj, i-di
	jp, ip := j+dj, i+di
	mOK := jm >= 0 && jm < ny && im >= 0 && im < nx
	pOK := jp >= 0 && jp < ny && ip >= 0 && ip < nx
	switch {
	case mOK && pOK:
		return (dem.Get(jp, ip) - dem.Get(jm, im)) / (2 * d)
	case pOK:
		return (dem.Get(jp, ip) - dem.Get(j, i)) / d
	case mOK:
		return (dem.Get(j, i) - dem.Get(jm, im)) / d
	default:
		return 0
	}
}
