package geoproj

import "math"

// rotation is the three-axis spherical rotation applied before the raw
// projection: a shift in longitude followed by a rotation about the
// phi and gamma axes.
type rotation struct {
	dLambda              float64
	phiGamma             bool
	cosDPhi, sinDPhi     float64
	cosDGamma, sinDGamma float64
}

func newRotation(dLambda, dPhi, dGamma float64) rotation {
	r := rotation{dLambda: math.Mod(dLambda, tau)}
	if dPhi != 0 || dGamma != 0 {
		r.phiGamma = true
		r.cosDPhi, r.sinDPhi = math.Cos(dPhi), math.Sin(dPhi)
		r.cosDGamma, r.sinDGamma = math.Cos(dGamma), math.Sin(dGamma)
	}
	return r
}

func (r rotation) forward(lambda, phi float64) (float64, float64) {
	lambda = wrapLongitude(lambda + r.dLambda)
	if !r.phiGamma {
		return lambda, phi
	}
	cosPhi := math.Cos(phi)
	x := math.Cos(lambda) * cosPhi
	y := math.Sin(lambda) * cosPhi
	z := math.Sin(phi)
	k := z*r.cosDPhi + x*r.sinDPhi
	return math.Atan2(y*r.cosDGamma-k*r.sinDGamma, x*r.cosDPhi-z*r.sinDPhi),
		asin(k*r.cosDGamma + y*r.sinDGamma)
}

func (r rotation) inverse(lambda, phi float64) (float64, float64) {
	if r.phiGamma {
		cosPhi := math.Cos(phi)
		x := math.Cos(lambda) * cosPhi
		y := math.Sin(lambda) * cosPhi
		z := math.Sin(phi)
		k := z*r.cosDGamma - y*r.sinDGamma
		lambda = math.Atan2(y*r.cosDGamma+z*r.sinDGamma, x*r.cosDPhi+k*r.sinDPhi)
		phi = asin(k*r.cosDPhi - x*r.sinDPhi)
	}
	return wrapLongitude(lambda - r.dLambda), phi
}
