package aprspos

import (
	"math"

	"github.com/golang/geo/s2"
)

// WGS-84 ellipsoid
const (
	wgs84A = 6378137.0
	wgs84B = 6356752.314245
	wgs84F = 1.0 / 298.257223563
)

// VincentyKm computes the ellipsoidal distance between two points in kilometers.
// It returns NaN when the iteration does not converge (nearly antipodal points).
func VincentyKm(p1, p2 s2.LatLng) float64 {
	L := p2.Lng.Radians() - p1.Lng.Radians()
	U1 := math.Atan((1 - wgs84F) * math.Tan(p1.Lat.Radians()))
	U2 := math.Atan((1 - wgs84F) * math.Tan(p2.Lat.Radians()))

	sinU1, cosU1 := math.Sincos(U1)
	sinU2, cosU2 := math.Sincos(U2)

	lambda := L
	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64

	converged := false
	for i := 0; i < 40; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)

		a := cosU2 * sinLambda
		b := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(a*a + b*b)
		if sinSigma == 0 {
			// Coincident points
			return 0
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		cos2SigmaM = 0
		if cosSqAlpha != 0 {
			// Both points on the equator otherwise
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		C := wgs84F / 16 * cosSqAlpha * (4 + wgs84F*(4-3*cosSqAlpha))
		prev := lambda
		lambda = L + (1-C)*wgs84F*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) <= 1e-12 {
			converged = true
			break
		}
	}

	if !converged {
		return math.NaN()
	}

	uSq := cosSqAlpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return wgs84B * A * (sigma - deltaSigma) / 1000
}
