package ast

// DefaultAngularUnit applies when a spherical phrase names no unit.
const DefaultAngularUnit = "deg"

var angularUnits = map[string]float64{
	"deg":    1,
	"rad":    57.29577951308232,
	"arcmin": 1.0 / 60,
	"arcsec": 1.0 / 3600,
	"mas":    1.0 / 3600000,
}

// DegreesPer returns how many degrees one unit of an angular unit is. The
// empty unit is the default, degrees. ok is false for non-angular units.
func DegreesPer(unit string) (factor float64, ok bool) {
	if unit == "" {
		unit = DefaultAngularUnit
	}
	factor, ok = angularUnits[unit]
	return factor, ok
}

// Units accepted per axis, in both notations.
var (
	SpaceUnits    = []string{"deg", "arcmin", "arcsec", "mas", "rad", "m", "mm", "km", "AU", "pc", "kpc", "Mpc", "lyr"}
	TimeUnits     = []string{"s", "d", "a", "yr", "cy"}
	SpectralUnits = []string{"Hz", "kHz", "MHz", "GHz", "THz", "m", "mm", "um", "nm", "Angstrom", "eV", "keV", "MeV"}
	RedshiftUnits = []string{"km/s", "m/s", "nil"}
)
