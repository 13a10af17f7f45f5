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

// Illumination calculates the per-pixel cosine of the solar incidence
// angle, the angle between the sun ray and the terrain normal:
//
//	cos(γᵢ) = cos(β)·cos(θₛ) + sin(β)·sin(θₛ)·cos(φₛ − φₙ)
//
// where β is the slope, φₙ the aspect, θₛ the solar zenith angle, and
// φₛ the solar azimuth. The result has one value per pixel in
// [−1, 1]; it is not clamped, so negative and near-zero values remain
// visible to callers as indicators of self-shadowed or grazing
// terrain. Correction formulas that divide by the illumination apply
// their own floor (see Config.IllumFloor).
func Illumination(t *Terrain, sun SolarAngles) *sparse.DenseArray {
	zenith := sun.Zenith()
	cosZ, sinZ := math.Cos(zenith), math.Sin(zenith)
	out := sparse.ZerosDense(t.Slope.Shape...)
	for i, slope := range t.Slope.Elements {
		aspect := t.Aspect.Elements[i]
		out.Elements[i] = math.Cos(slope)*cosZ +
			math.Sin(slope)*sinZ*math.Cos(sun.Azimuth-aspect)
	}
	return out
}
