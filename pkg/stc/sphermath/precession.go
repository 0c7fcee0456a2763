package sphermath

// Epoch conversion constants (Lieske 1979).
const (
	jdJ2000           = 2451545.0
	julianYear        = 365.25
	jdB1900           = 2415020.31352
	besselianYearDays = 365.242198781
)

// BesselianToJulian converts a Besselian epoch to a Julian epoch.
func BesselianToJulian(b float64) float64 {
	jd := jdB1900 + (b-1900)*besselianYearDays
	return 2000 + (jd-jdJ2000)/julianYear
}

// JulianToBesselian converts a Julian epoch to a Besselian epoch.
func JulianToBesselian(j float64) float64 {
	jd := jdJ2000 + (j-2000)*julianYear
	return 1900 + (jd-jdB1900)/besselianYearDays
}

// PrecessFK5 returns the IAU 1976 precession matrix taking mean equatorial
// coordinates of Julian epoch from to those of Julian epoch to.
func PrecessFK5(from, to float64) Mat3 {
	t0 := (from - 2000) / 100
	t := (to - from) / 100
	tas := t * arcsecToRad

	w := 2306.2181 + (1.39656-0.000139*t0)*t0
	zeta := (w + ((0.30188 - 0.000344*t0) + 0.017998*t) * t) * tas
	z := (w + ((1.09468 + 0.000066*t0) + 0.018203*t) * t) * tas
	theta := ((2004.3109 + (-0.85330-0.000217*t0)*t0) +
		((-0.42665-0.000217*t0)-0.041833*t)*t) * tas

	return RotZ(-z).Mul(RotY(theta)).Mul(RotZ(-zeta))
}

// PrecessFK4 returns Newcomb's precession matrix between two Besselian
// epochs, in the Kinoshita formulation used for the FK4 system.
func PrecessFK4(from, to float64) Mat3 {
	bigT := (from - 1850) / 1000
	t := (to - from) / 1000
	tas := t * arcsecToRad

	w := 2303.5548 + (1.39720+0.000059*bigT)*bigT
	zeta := (w + (0.30242 - 0.000269*bigT + 0.017996*t) * t) * tas
	z := (w + (1.09478 + 0.000387*bigT + 0.018324*t) * t) * tas
	theta := (2005.1125 + (-0.85294-0.000365*bigT)*bigT +
		(-0.42647-0.000365*bigT-0.041802*t)*t) * tas

	return RotZ(-z).Mul(RotY(theta)).Mul(RotZ(-zeta))
}

// MeanObliquity returns the IAU 1980 mean obliquity of the ecliptic in
// radians at the given Julian epoch.
func MeanObliquity(epoch float64) float64 {
	t := (epoch - 2000) / 100
	return (84381.448 + (-46.8150+(-0.00059+0.001813*t)*t)*t) * arcsecToRad
}

// EquatorialToEcliptic returns the matrix taking ICRS (mean J2000 equator)
// vectors to ecliptic coordinates of the given Julian equinox.
func EquatorialToEcliptic(epoch float64) Mat3 {
	return RotX(MeanObliquity(epoch)).Mul(PrecessFK5(2000, epoch))
}
