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
	"testing"

	"github.com/ctessum/sparse"
)

// testGrid returns a grid definition with 25-unit cells.
func testGrid(ny, nx int) *GridDef {
	return &GridDef{Nx: nx, Ny: ny, Dx: 25, Dy: 25}
}

// rampDEM returns a ny×nx elevation grid that increases by dz per row
// southward.
func rampDEM(ny, nx int, dz float64) *sparse.DenseArray {
	dem := sparse.ZerosDense(ny, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			dem.Set(dz*float64(j), j, i)
		}
	}
	return dem
}

func TestTerrainParamsRamp(t *testing.T) {
	const tolerance = 1.e-10

	// Rows increase by 10 elevation units per 25-unit cell, so the
	// gradient is 0.4 everywhere and downslope faces due north.
	g := testGrid(3, 3)
	dem := rampDEM(3, 3, 10)
	terrain, err := TerrainParams(dem, g)
	if err != nil {
		t.Fatal(err)
	}
	wantSlope := math.Atan(0.4)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			if s := terrain.Slope.Get(j, i); absDifferent(s, wantSlope, tolerance) {
				t.Errorf("slope at (%d, %d): got %g, want %g", j, i, s, wantSlope)
			}
			if a := terrain.Aspect.Get(j, i); absDifferent(a, 0, tolerance) {
				t.Errorf("aspect at (%d, %d): got %g, want 0 (north)", j, i, a)
			}
		}
	}
}

func TestTerrainParamsEastRamp(t *testing.T) {
	const tolerance = 1.e-10

	// Columns increase eastward, so downslope faces due west (3π/2).
	g := testGrid(4, 4)
	dem := sparse.ZerosDense(4, 4)
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			dem.Set(10*float64(i), j, i)
		}
	}
	terrain, err := TerrainParams(dem, g)
	if err != nil {
		t.Fatal(err)
	}
	wantSlope := math.Atan(0.4)
	wantAspect := 3 * math.Pi / 2
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			if s := terrain.Slope.Get(j, i); absDifferent(s, wantSlope, tolerance) {
				t.Errorf("slope at (%d, %d): got %g, want %g", j, i, s, wantSlope)
			}
			if a := terrain.Aspect.Get(j, i); absDifferent(a, wantAspect, tolerance) {
				t.Errorf("aspect at (%d, %d): got %g, want %g (west)", j, i, a, wantAspect)
			}
		}
	}
}

func TestTerrainParamsFlat(t *testing.T) {
	g := testGrid(5, 4)
	dem := sparse.ZerosDense(5, 4)
	for j := 0; j < 5; j++ {
		for i := 0; i < 4; i++ {
			dem.Set(100, j, i)
		}
	}
	terrain, err := TerrainParams(dem, g)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range terrain.Slope.Elements {
		if s != 0 {
			t.Errorf("flat cell %d: slope = %g, want 0", i, s)
		}
		if a := terrain.Aspect.Elements[i]; a != 0 {
			t.Errorf("flat cell %d: aspect = %g, want the north sentinel 0", i, a)
		}
	}
}

func TestTerrainParamsInvalidGrid(t *testing.T) {
	cases := []struct {
		name string
		g    *GridDef
		dem  *sparse.DenseArray
	}{
		{"zero spacing", &GridDef{Nx: 3, Ny: 3, Dx: 0, Dy: 25}, rampDEM(3, 3, 10)},
		{"negative spacing", &GridDef{Nx: 3, Ny: 3, Dx: 25, Dy: -25}, rampDEM(3, 3, 10)},
		{"single row", &GridDef{Nx: 3, Ny: 1, Dx: 25, Dy: 25}, rampDEM(1, 3, 10)},
		{"single column", &GridDef{Nx: 1, Ny: 3, Dx: 25, Dy: 25}, rampDEM(3, 1, 10)},
		{"shape mismatch", testGrid(3, 3), rampDEM(4, 3, 10)},
	}
	for _, c := range cases {
		_, err := TerrainParams(c.dem, c.g)
		if _, ok := err.(*InvalidGridError); !ok {
			t.Errorf("%s: got %v, want InvalidGridError", c.name, err)
		}
	}
}

func absDifferent(a, b, tolerance float64) bool {
	if math.Abs(a-b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}
