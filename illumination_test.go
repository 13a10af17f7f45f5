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

func TestIlluminationFlatTerrain(t *testing.T) {
	const tolerance = 1.e-12

	// With zero slope everywhere the illumination must equal cos(θₛ)
	// uniformly, regardless of aspect.
	terrain := &Terrain{
		Slope:  sparse.ZerosDense(3, 3),
		Aspect: sparse.ZerosDense(3, 3),
	}
	for i := range terrain.Aspect.Elements { // arbitrary aspects
		terrain.Aspect.Elements[i] = math.Mod(float64(i)*1.3, 2*math.Pi)
	}
	sun := SolarAnglesDeg(40, 135)
	want := math.Cos(sun.Zenith())
	illum := Illumination(terrain, sun)
	for i, v := range illum.Elements {
		if absDifferent(v, want, tolerance) {
			t.Errorf("pixel %d: got %g, want cos(zenith) = %g", i, v, want)
		}
	}
}

func TestIlluminationSunFacing(t *testing.T) {
	const tolerance = 1.e-12

	// A pixel tilted toward the sun by exactly the zenith angle has
	// zero incidence angle: cos(γᵢ) = 1.
	sun := SolarAnglesDeg(55, 210)
	terrain := &Terrain{
		Slope:  sparse.ZerosDense(1, 1),
		Aspect: sparse.ZerosDense(1, 1),
	}
	terrain.Slope.Set(sun.Zenith(), 0, 0)
	terrain.Aspect.Set(sun.Azimuth, 0, 0)
	illum := Illumination(terrain, sun)
	if v := illum.Get(0, 0); absDifferent(v, 1, tolerance) {
		t.Errorf("sun-facing pixel: got %g, want 1", v)
	}
}

func TestIlluminationSelfShadowed(t *testing.T) {
	// A steep pixel facing directly away from a low sun must have
	// negative illumination.
	sun := SolarAnglesDeg(10, 90)
	terrain := &Terrain{
		Slope:  sparse.ZerosDense(1, 1),
		Aspect: sparse.ZerosDense(1, 1),
	}
	terrain.Slope.Set(math.Pi/3, 0, 0)
	terrain.Aspect.Set(sun.Azimuth+math.Pi, 0, 0)
	illum := Illumination(terrain, sun)
	if v := illum.Get(0, 0); v >= 0 {
		t.Errorf("self-shadowed pixel: got %g, want a negative value", v)
	}
}

func TestSolarAngles(t *testing.T) {
	const tolerance = 1.e-12
	s := SolarAnglesDeg(30, 180)
	if absDifferent(s.Elevation, math.Pi/6, tolerance) {
		t.Errorf("elevation: got %g, want %g", s.Elevation, math.Pi/6)
	}
	if absDifferent(s.Azimuth, math.Pi, tolerance) {
		t.Errorf("azimuth: got %g, want %g", s.Azimuth, math.Pi)
	}
	if absDifferent(s.Zenith(), math.Pi/3, tolerance) {
		t.Errorf("zenith: got %g, want %g", s.Zenith(), math.Pi/3)
	}
}
