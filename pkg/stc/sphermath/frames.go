package sphermath

// GalacticFromICRS rotates ICRS vectors into galactic coordinates. The
// matrix realizes the IAU 1958 system through the Hipparcos transfer
// (ESA 1997, vol. 1, sect. 1.5.3).
var GalacticFromICRS = Mat3{
	{-0.0548755604162154, -0.8734370902348850, -0.4838350155487132},
	{+0.4941094278755837, -0.4448296299600112, +0.7469822444972189},
	{-0.8676661490190047, -0.1980763734312015, +0.4559837761750669},
}

// FK5FromFK4 takes FK4 B1950.0 vectors to FK5 J2000.0 (Standish 1982,
// position block of the 6x6 matrix). Elliptic aberration terms are not
// modelled.
var FK5FromFK4 = Mat3{
	{0.9999256782, -0.0111820611, -0.0048579477},
	{0.0111820610, 0.9999374784, -0.0000271765},
	{0.0048579479, -0.0000271474, 0.9999881997},
}

// Supergalactic pole and origin in galactic coordinates (de Vaucouleurs).
const (
	sgPoleL   = 47.37
	sgPoleB   = 6.32
	sgOriginL = 137.37
)

// SupergalacticFromGalactic rotates galactic vectors into supergalactic ones.
func SupergalacticFromGalactic() Mat3 {
	x := FromSpherical(sgOriginL, 0)
	z := FromSpherical(sgPoleL, sgPoleB)
	return FromAxes(x, z.Cross(x), z)
}
