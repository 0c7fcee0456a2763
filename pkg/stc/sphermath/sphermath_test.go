package sphermath

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.9f, want %.9f (tol %g)", name, got, want, tol)
	}
}

func rotate(m Mat3, lon, lat float64) (float64, float64) {
	return ToSpherical(m.Apply(FromSpherical(lon, lat)))
}

func TestSphericalRoundTrip(t *testing.T) {
	points := [][2]float64{{0, 0}, {12, 34}, {359.5, -89}, {180, 45.5}, {270, -0.001}}
	for _, p := range points {
		lon, lat := ToSpherical(FromSpherical(p[0], p[1]))
		assertNear(t, "lon", lon, p[0], 1e-10)
		assertNear(t, "lat", lat, p[1], 1e-10)
	}
}

func TestToSphericalPole(t *testing.T) {
	lon, lat := ToSpherical(Vec3{0, 0, 2})
	if lon != 0 || lat != 90 {
		t.Errorf("ToSpherical(north pole) = (%g, %g), want (0, 90)", lon, lat)
	}
}

func TestNormalizeLon(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-10, 350},
		{360, 0},
		{720.5, 0.5},
		{359.25, 359.25},
		{-360, 0},
	}
	for _, tt := range tests {
		assertNear(t, "NormalizeLon", NormalizeLon(tt.in), tt.want, 1e-12)
	}
}

func TestGalacticReferencePoints(t *testing.T) {
	toICRS := GalacticFromICRS.Transpose()

	lon, lat := rotate(toICRS, 0, 90)
	assertNear(t, "pole RA", lon, 192.85948, 1e-4)
	assertNear(t, "pole Dec", lat, 27.12825, 1e-4)

	lon, lat = rotate(toICRS, 0, 0)
	assertNear(t, "center RA", lon, 266.40499, 1e-4)
	assertNear(t, "center Dec", lat, -28.93617, 1e-4)

	lon, lat = rotate(GalacticFromICRS, 12, 34)
	assertNear(t, "l", lon, 122.11829, 1e-4)
	assertNear(t, "b", lat, -28.86632, 1e-4)
}

func TestPrecessFK5(t *testing.T) {
	lon, lat := rotate(PrecessFK5(2000, 1950), 0, 0)
	assertNear(t, "RA(1950)", lon, 359.35948, 1e-4)
	assertNear(t, "Dec(1950)", lat, -0.27840, 1e-4)

	if !PrecessFK5(2000, 2000).IsIdentity(1e-15) {
		t.Error("precession over zero time should be the identity")
	}
	there, back := PrecessFK5(2000, 1950), PrecessFK5(1950, 2000)
	if !back.Mul(there).IsIdentity(1e-12) {
		t.Error("precessing there and back should be the identity")
	}
}

func TestPrecessFK4(t *testing.T) {
	lon, lat := rotate(PrecessFK4(1900, 1950), 0, 0)
	assertNear(t, "RA(B1950)", lon, 0.06399, 1e-4)
	assertNear(t, "Dec(B1950)", lat, 0.02785, 1e-4)
}

func TestFK4ToFK5(t *testing.T) {
	lon, lat := rotate(FK5FromFK4, 0, 0)
	assertNear(t, "RA(J2000)", lon, 0.64071, 1e-4)
	assertNear(t, "Dec(J2000)", lat, 0.27834, 1e-4)

	if !FK5FromFK4.Inverse().Mul(FK5FromFK4).IsIdentity(1e-12) {
		t.Error("Inverse()·M should be the identity")
	}
}

func TestEpochConversion(t *testing.T) {
	assertNear(t, "B1950 as Julian", BesselianToJulian(1950), 1949.99979, 1e-5)
	for _, b := range []float64{1875, 1950, 2000.5} {
		assertNear(t, "round trip", JulianToBesselian(BesselianToJulian(b)), b, 1e-9)
	}
}

func TestEcliptic(t *testing.T) {
	assertNear(t, "obliquity J2000", MeanObliquity(2000)*radToDeg, 23.4392911, 1e-7)
	lon, lat := rotate(EquatorialToEcliptic(2000), 12, 34)
	assertNear(t, "ecliptic lon", lon, 25.14137, 1e-4)
	assertNear(t, "ecliptic lat", lat, 26.39046, 1e-4)
}

func TestSupergalactic(t *testing.T) {
	m := SupergalacticFromGalactic()
	if !m.Mul(m.Transpose()).IsIdentity(1e-12) {
		t.Error("supergalactic matrix is not orthogonal")
	}
	lon, lat := rotate(m, 47.37, 6.32)
	assertNear(t, "SGB of pole", lat, 90, 1e-9)
	lon, lat = rotate(m.Mul(GalacticFromICRS), 12, 34)
	assertNear(t, "SGL", lon, 329.12353, 1e-4)
	assertNear(t, "SGB", lat, 10.12700, 1e-4)
}

func TestAngularDistance(t *testing.T) {
	assertNear(t, "quarter circle", AngularDistance(0, 0, 90, 0), 90, 1e-12)
	assertNear(t, "pole to equator", AngularDistance(10, 90, 200, 0), 90, 1e-12)
	assertNear(t, "same point", AngularDistance(12, 34, 12, 34), 0, 1e-12)
}
