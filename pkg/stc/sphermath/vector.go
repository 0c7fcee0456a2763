package sphermath

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi

	// arcsecToRad converts arc seconds to radians.
	arcsecToRad = degToRad / 3600
)

// Vec3 is a Cartesian 3-vector.
type Vec3 [3]float64

// Dot returns the scalar product.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the vector product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to length one. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

// FromSpherical converts longitude and latitude in degrees to a unit vector.
func FromSpherical(lon, lat float64) Vec3 {
	l, b := lon*degToRad, lat*degToRad
	cb := math.Cos(b)
	return Vec3{cb * math.Cos(l), cb * math.Sin(l), math.Sin(b)}
}

// ToSpherical converts a vector to longitude in [0, 360) and latitude in
// [-90, 90], both in degrees. At the poles the longitude is 0.
func ToSpherical(v Vec3) (lon, lat float64) {
	u := v.Unit()
	rho := math.Hypot(u[0], u[1])
	lat = math.Atan2(u[2], rho) * radToDeg
	if rho == 0 {
		return 0, lat
	}
	return NormalizeLon(math.Atan2(u[1], u[0]) * radToDeg), lat
}

// NormalizeLon maps a longitude in degrees into [0, 360).
func NormalizeLon(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	if lon >= 360 {
		lon = 0
	}
	return lon
}

// AngularDistance returns the great-circle distance in degrees between two
// points given in degrees.
func AngularDistance(lon1, lat1, lon2, lat2 float64) float64 {
	a, b := FromSpherical(lon1, lat1), FromSpherical(lon2, lat2)
	return math.Atan2(a.Cross(b).Norm(), a.Dot(b)) * radToDeg
}
