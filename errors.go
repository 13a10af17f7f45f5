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

import "fmt"

// InvalidGridError indicates that an input raster cannot be used:
// its dimensions don't match the rest of the scene, its cell spacing
// is not positive, or it is smaller than 2×2 cells. It is fatal for
// the whole operation; no partial output is returned.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("topocorr: invalid grid: %s", e.Reason)
}

// InsufficientDataError indicates that a per-band regression could not
// be fit because the illumination sample contains fewer than 2 distinct
// values. Band is the index of the offending band.
type InsufficientDataError struct {
	Band int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("topocorr: band %d: cannot fit correction parameters: "+
		"fewer than 2 distinct illumination values", e.Band)
}

// DegenerateParameterError indicates that a fitted parameter is outside
// its physically meaningful range, for example a non-positive Minnaert
// exponent or a near-zero C-correction fit slope. Callers that receive
// it should fall back to identity (no correction) for the band.
type DegenerateParameterError struct {
	Band  int
	Param string
	Value float64
}

func (e *DegenerateParameterError) Error() string {
	return fmt.Sprintf("topocorr: band %d: fitted parameter %s=%g is outside "+
		"its physically meaningful range", e.Band, e.Param, e.Value)
}
