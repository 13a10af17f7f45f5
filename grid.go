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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// GridDef describes a uniform raster grid. Row 0 is the northern edge
// of the grid and column indices increase eastward, so a grid value at
// index [j, i] is centered at
// (Xo + (i+0.5)*Dx, Yo + (Ny-j-0.5)*Dy) in grid projection coordinates.
type GridDef struct {
	// Nx and Ny are the numbers of columns and rows.
	Nx, Ny int

	// Dx and Dy are the cell edge lengths in the x and y directions,
	// in the units of the grid projection (typically meters).
	Dx, Dy float64

	// Xo and Yo are the coordinates of the lower-left corner.
	Xo, Yo float64
}

// Bounds returns the georeferenced extent of the grid.
func (g *GridDef) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: g.Xo, Y: g.Yo},
		Max: geom.Point{X: g.Xo + float64(g.Nx)*g.Dx, Y: g.Yo + float64(g.Ny)*g.Dy},
	}
}

// Check returns an error if the grid definition cannot support
// terrain analysis: non-positive cell spacing or fewer than
// 2 rows or columns.
func (g *GridDef) Check() error {
	if g.Dx <= 0 || g.Dy <= 0 {
		return &InvalidGridError{Reason: fmt.Sprintf("cell spacing must be positive but is (%g, %g)", g.Dx, g.Dy)}
	}
	if g.Nx < 2 || g.Ny < 2 {
		return &InvalidGridError{Reason: fmt.Sprintf("grid must have at least 2×2 cells but is %d×%d", g.Ny, g.Nx)}
	}
	return nil
}

// gridShape returns the (rows, columns) shape of a 2-dimensional array,
// or an error if the array is not 2-dimensional.
func gridShape(a *sparse.DenseArray, name string) (ny, nx int, err error) {
	if len(a.Shape) != 2 {
		return 0, 0, &InvalidGridError{Reason: fmt.Sprintf("%s must have 2 dimensions but has %d", name, len(a.Shape))}
	}
	return a.Shape[0], a.Shape[1], nil
}

// checkCoregistered ensures that array a matches the grid definition,
// so that it is spatially aligned with every other grid in the scene.
func checkCoregistered(g *GridDef, a *sparse.DenseArray, name string) error {
	ny, nx, err := gridShape(a, name)
	if err != nil {
		return err
	}
	if ny != g.Ny || nx != g.Nx {
		return &InvalidGridError{Reason: fmt.Sprintf("%s is %d×%d but the grid definition is %d×%d",
			name, ny, nx, g.Ny, g.Nx)}
	}
	return nil
}
