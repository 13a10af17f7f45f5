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

import "math"

// SolarAngles holds the position of the sun at the time the scene was
// captured. It is taken from scene metadata and applied uniformly
// across the whole scene; computing it from capture time and location
// is the responsibility of the caller.
type SolarAngles struct {
	// Elevation is the angle of the sun above the horizon [radians].
	Elevation float64
	// Azimuth is the compass bearing from the scene to the sun,
	// clockwise from north [radians].
	Azimuth float64
}

// SolarAnglesDeg returns the solar angles corresponding to the given
// elevation and azimuth in degrees, as they typically appear in scene
// metadata files.
func SolarAnglesDeg(elevation, azimuth float64) SolarAngles {
	return SolarAngles{
		Elevation: elevation * math.Pi / 180,
		Azimuth:   azimuth * math.Pi / 180,
	}
}

// Zenith returns the solar zenith angle, the complement of the
// solar elevation [radians].
func (s SolarAngles) Zenith() float64 {
	return math.Pi/2 - s.Elevation
}
