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
	"log"
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Method selects a topographic correction strategy.
type Method string

// Available correction methods.
const (
	// CCorrection is the semi-empirical C-correction of Teillet et al.:
	// L·(cos θₛ + C)/(cos γᵢ + C), with C fitted per band.
	CCorrection Method = "c"
	// Minnaert is the Minnaert correction L·(cos θₛ/cos γᵢ)^k, with the
	// exponent k fitted per band by log-log regression.
	Minnaert Method = "minnaert"
	// Statistical is the statistical-empirical correction
	// L − (A·cos γᵢ + B) + L̄, with A and B fitted per band.
	Statistical Method = "stat"
	// Cosine is the classic cosine correction L·(cos θₛ/cos γᵢ);
	// no fitted parameters.
	Cosine Method = "cosine"
	// SCS is the sun-canopy-sensor correction L·(cos β·cos θₛ/cos γᵢ);
	// no fitted parameters.
	SCS Method = "scs"
)

// ParseMethod returns the Method corresponding to name.
func ParseMethod(name string) (Method, error) {
	switch m := Method(name); m {
	case CCorrection, Minnaert, Statistical, Cosine, SCS:
		return m, nil
	}
	return "", fmt.Errorf("topocorr: '%s' is not a valid correction method; "+
		"valid options are c, minnaert, stat, cosine, and scs", name)
}

const (
	// DefaultIllumFloor is the default floor applied to cos(γᵢ)
	// wherever it appears in a denominator, to keep self-shadowed and
	// grazing pixels from blowing up the correction. Pixels at or
	// below the floor are counted in the band diagnostics.
	DefaultIllumFloor = 0.01

	// flatTolerance is the tolerance used to decide whether a scene
	// is uniformly illuminated at exactly the flat-terrain value
	// cos(θₛ), in which case every correction method is identity by
	// construction and parameter fitting is skipped.
	flatTolerance = 1e-9
)

// Config holds the options for a correction run.
type Config struct {
	// Method is the correction strategy to apply.
	Method Method

	// NStrat is the number of equal-width illumination bins used to
	// stratify the Minnaert regression sample. The regression is fit
	// on the per-bin means of the log-transformed values, which
	// stabilizes the fit when the illumination distribution is
	// skewed. Values below 2 disable stratification. Ignored by the
	// other methods.
	NStrat int

	// IllumFloor is the denominator floor for cos(γᵢ); if zero,
	// DefaultIllumFloor is used.
	IllumFloor float64
}

func (c Config) illumFloor() float64 {
	if c.IllumFloor == 0 {
		return DefaultIllumFloor
	}
	return c.IllumFloor
}

// BandDiagnostics reports the fitted parameters and per-pixel clamp
// count for one corrected band.
type BandDiagnostics struct {
	Band   int
	Method Method

	// C is the fitted C-correction parameter (C-correction only).
	C float64
	// K is the fitted Minnaert exponent (Minnaert only).
	K float64
	// A, B, and Mean are the fitted line and band mean radiance
	// (statistical method only).
	A, B, Mean float64

	// Clamped is the number of pixels whose illumination was at or
	// below the floor during correction.
	Clamped int

	// Identity reports that the band was returned uncorrected, either
	// because the scene is uniformly flat-equivalent or because the
	// fitted parameter was degenerate.
	Identity bool
}

// FitC estimates the C-correction parameter for one band by ordinary
// least squares of L against cos(γᵢ): C = b/m for the fit
// L = m·cos(γᵢ) + b. band is used only for error reporting.
func FitC(band int, L, cosi *sparse.DenseArray) (float64, error) {
	if distinctCount(cosi.Elements, 2) < 2 {
		return 0, &InsufficientDataError{Band: band}
	}
	b, m := stat.LinearRegression(cosi.Elements, L.Elements, nil, false)
	if math.Abs(m) < 1e-12 {
		return 0, &DegenerateParameterError{Band: band, Param: "slope", Value: m}
	}
	return b / m, nil
}

// FitMinnaert estimates the Minnaert exponent k for one band by linear
// regression of log(L) − log(cos θₛ) against log(cos γᵢ). Pixels with
// non-positive radiance or with illumination at or below floor are
// excluded from the sample. If nStrat > 1 the sample is stratified
// into nStrat equal-width illumination bins and the regression is fit
// on the bin means; the estimate depends only on the multiset of
// (illumination, radiance) pairs per bin, not on pixel order.
func FitMinnaert(band int, L, cosi *sparse.DenseArray, cosz float64, nStrat int, floor float64) (float64, error) {
	var x, y []float64
	logCosz := math.Log(cosz)
	for i, c := range cosi.Elements {
		l := L.Elements[i]
		if c <= floor || l <= 0 {
			continue
		}
		x = append(x, math.Log(c))
		y = append(y, math.Log(l)-logCosz)
	}
	if distinctCount(x, 2) < 2 {
		return 0, &InsufficientDataError{Band: band}
	}
	if nStrat > 1 {
		x, y = stratify(x, y, nStrat)
		if distinctCount(x, 2) < 2 {
			return 0, &InsufficientDataError{Band: band}
		}
	}
	_, k := stat.LinearRegression(x, y, nil, false)
	if k <= 0 {
		return 0, &DegenerateParameterError{Band: band, Param: "k", Value: k}
	}
	return k, nil
}

// FitStatistical estimates the statistical-empirical parameters for
// one band: A and B from ordinary least squares of L against cos(γᵢ)
// and the band mean radiance.
func FitStatistical(band int, L, cosi *sparse.DenseArray) (a, b, mean float64, err error) {
	if distinctCount(cosi.Elements, 2) < 2 {
		return 0, 0, 0, &InsufficientDataError{Band: band}
	}
	b, a = stat.LinearRegression(cosi.Elements, L.Elements, nil, false)
	mean = floats.Sum(L.Elements) / float64(len(L.Elements))
	return a, b, mean, nil
}

// stratify bins the sample (x, y) into n equal-width bins over the
// range of x and returns the per-bin means, dropping empty bins.
func stratify(x, y []float64, n int) (xm, ym []float64) {
	lo, hi := floats.Min(x), floats.Max(x)
	width := (hi - lo) / float64(n)
	if width == 0 {
		return x, y
	}
	sumX := make([]float64, n)
	sumY := make([]float64, n)
	count := make([]int, n)
	for i, v := range x {
		b := int((v - lo) / width)
		if b >= n { // v == hi lands in the last bin.
			b = n - 1
		}
		sumX[b] += v
		sumY[b] += y[i]
		count[b]++
	}
	for b := 0; b < n; b++ {
		if count[b] == 0 {
			continue
		}
		xm = append(xm, sumX[b]/float64(count[b]))
		ym = append(ym, sumY[b]/float64(count[b]))
	}
	return xm, ym
}

// distinctCount returns the number of distinct values in vals, up to
// a maximum of limit.
func distinctCount(vals []float64, limit int) int {
	seen := make(map[float64]struct{}, limit)
	for _, v := range vals {
		seen[v] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	return len(seen)
}

// ApplyC applies the C-correction L·(cos θₛ + C)/(cos γᵢ + C) with the
// given fitted parameter, flooring the illumination and returning the
// number of floored pixels.
func ApplyC(L, cosi *sparse.DenseArray, cosz, c, floor float64) (*sparse.DenseArray, int) {
	out := sparse.ZerosDense(L.Shape...)
	clamped := 0
	for i, l := range L.Elements {
		ci := cosi.Elements[i]
		if ci <= floor {
			ci = floor
			clamped++
		}
		den := ci + c
		if math.Abs(den) < floor {
			den = math.Copysign(floor, den)
		}
		out.Elements[i] = l * (cosz + c) / den
	}
	return out, clamped
}

// ApplyMinnaert applies the Minnaert correction L·(cos θₛ/cos γᵢ)^k
// with the given fitted exponent, flooring the illumination and
// returning the number of floored pixels.
func ApplyMinnaert(L, cosi *sparse.DenseArray, cosz, k, floor float64) (*sparse.DenseArray, int) {
	out := sparse.ZerosDense(L.Shape...)
	clamped := 0
	for i, l := range L.Elements {
		ci := cosi.Elements[i]
		if ci <= floor {
			ci = floor
			clamped++
		}
		out.Elements[i] = l * math.Pow(cosz/ci, k)
	}
	return out, clamped
}

// ApplyStatistical applies the statistical-empirical correction
// L − (A·cos γᵢ + B) + mean with the given fitted parameters. It has
// no denominator, so no pixels are floored.
func ApplyStatistical(L, cosi *sparse.DenseArray, a, b, mean float64) *sparse.DenseArray {
	out := sparse.ZerosDense(L.Shape...)
	for i, l := range L.Elements {
		out.Elements[i] = l - (a*cosi.Elements[i] + b) + mean
	}
	return out
}

// ApplyCosine applies the cosine correction L·(cos θₛ/cos γᵢ),
// flooring the illumination and returning the number of floored
// pixels.
func ApplyCosine(L, cosi *sparse.DenseArray, cosz, floor float64) (*sparse.DenseArray, int) {
	out := sparse.ZerosDense(L.Shape...)
	clamped := 0
	for i, l := range L.Elements {
		ci := cosi.Elements[i]
		if ci <= floor {
			ci = floor
			clamped++
		}
		out.Elements[i] = l * cosz / ci
	}
	return out, clamped
}

// ApplySCS applies the sun-canopy-sensor correction
// L·(cos β·cos θₛ/cos γᵢ), flooring the illumination and returning the
// number of floored pixels.
func ApplySCS(L, cosi, slope *sparse.DenseArray, cosz, floor float64) (*sparse.DenseArray, int) {
	out := sparse.ZerosDense(L.Shape...)
	clamped := 0
	for i, l := range L.Elements {
		ci := cosi.Elements[i]
		if ci <= floor {
			ci = floor
			clamped++
		}
		out.Elements[i] = l * math.Cos(slope.Elements[i]) * cosz / ci
	}
	return out, clamped
}

// CorrectBand topographically corrects a single radiance band given
// the illumination map for the scene. The fitted methods (c, minnaert,
// stat) estimate their parameters from this band alone. If the scene
// is uniformly illuminated at the flat-terrain value cos(θₛ), every
// method is identity by construction and the band is returned
// unchanged; if a fitted parameter is degenerate, the band is also
// returned unchanged and a warning is logged.
func CorrectBand(band int, L, cosi *sparse.DenseArray, t *Terrain, sun SolarAngles, cfg Config) (*sparse.DenseArray, *BandDiagnostics, error) {
	if len(L.Shape) != 2 || len(cosi.Shape) != 2 ||
		L.Shape[0] != cosi.Shape[0] || L.Shape[1] != cosi.Shape[1] {
		return nil, nil, &InvalidGridError{Reason: fmt.Sprintf("band %d is %v but the illumination map is %v",
			band, L.Shape, cosi.Shape)}
	}
	diag := &BandDiagnostics{Band: band, Method: cfg.Method}
	cosz := math.Cos(sun.Zenith())
	floor := cfg.illumFloor()

	if isFlatEquivalent(cosi, cosz) {
		diag.Identity = true
		return L.Copy(), diag, nil
	}

	var out *sparse.DenseArray
	switch cfg.Method {
	case CCorrection:
		c, err := FitC(band, L, cosi)
		if err != nil {
			if degenerate(err) {
				return identityFallback(L, diag, err)
			}
			return nil, nil, err
		}
		diag.C = c
		out, diag.Clamped = ApplyC(L, cosi, cosz, c, floor)
	case Minnaert:
		k, err := FitMinnaert(band, L, cosi, cosz, cfg.NStrat, floor)
		if err != nil {
			if degenerate(err) {
				return identityFallback(L, diag, err)
			}
			return nil, nil, err
		}
		diag.K = k
		out, diag.Clamped = ApplyMinnaert(L, cosi, cosz, k, floor)
	case Statistical:
		a, b, mean, err := FitStatistical(band, L, cosi)
		if err != nil {
			return nil, nil, err
		}
		diag.A, diag.B, diag.Mean = a, b, mean
		out = ApplyStatistical(L, cosi, a, b, mean)
	case Cosine:
		out, diag.Clamped = ApplyCosine(L, cosi, cosz, floor)
	case SCS:
		out, diag.Clamped = ApplySCS(L, cosi, t.Slope, cosz, floor)
	default:
		_, err := ParseMethod(string(cfg.Method))
		return nil, nil, err
	}
	return out, diag, nil
}

// isFlatEquivalent reports whether every illumination value equals the
// flat-terrain value cos(θₛ) to within flatTolerance.
func isFlatEquivalent(cosi *sparse.DenseArray, cosz float64) bool {
	for _, v := range cosi.Elements {
		if math.Abs(v-cosz) > flatTolerance {
			return false
		}
	}
	return true
}

func degenerate(err error) bool {
	_, ok := err.(*DegenerateParameterError)
	return ok
}

// identityFallback returns the band unchanged after a degenerate fit,
// logging the reason.
func identityFallback(L *sparse.DenseArray, diag *BandDiagnostics, err error) (*sparse.DenseArray, *BandDiagnostics, error) {
	log.Printf("topocorr: falling back to identity correction: %v", err)
	diag.Identity = true
	return L.Copy(), diag, nil
}
