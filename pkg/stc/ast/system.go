package ast

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Frame is a celestial reference frame.
type Frame string

const (
	FrameICRS          Frame = "ICRS"
	FrameFK4           Frame = "FK4"
	FrameFK5           Frame = "FK5"
	FrameEcliptic      Frame = "ECLIPTIC"
	FrameGalactic      Frame = "GALACTIC"
	FrameSuperGalactic Frame = "SUPER_GALACTIC"
	FrameGeoC          Frame = "GEO_C"
	FrameGeoD          Frame = "GEO_D"
	FrameUnknown       Frame = "UNKNOWNFrame"
)

// Frames lists every frame in the order the STC-S grammar documents them.
var Frames = []Frame{
	FrameICRS, FrameFK4, FrameFK5, FrameEcliptic, FrameGalactic,
	FrameSuperGalactic, FrameGeoC, FrameGeoD, FrameUnknown,
}

// HasEquinox reports whether the frame orientation depends on an equinox.
func (f Frame) HasEquinox() bool {
	return f == FrameFK4 || f == FrameFK5 || f == FrameEcliptic
}

// DefaultEquinox is the equinox assumed when an equinox frame is given without one.
func (f Frame) DefaultEquinox() Equinox {
	switch f {
	case FrameFK4:
		return "B1950.0"
	case FrameFK5, FrameEcliptic:
		return "J2000.0"
	default:
		return ""
	}
}

// LookupFrame resolves an STC-S frame token. Shorthand tokens imply an
// equinox: J2000 is FK5 J2000.0 and B1950 is FK4 B1950.0.
func LookupFrame(token string) (Frame, Equinox, bool) {
	switch token {
	case "J2000":
		return FrameFK5, "J2000.0", true
	case "B1950":
		return FrameFK4, "B1950.0", true
	case "GALACTIC_II":
		return FrameGalactic, "", true
	}
	for _, f := range Frames {
		if string(f) == token {
			return f, "", true
		}
	}
	return "", "", false
}

// RefPos is the location of the observer.
type RefPos string

const (
	RefPosGeocenter      RefPos = "GEOCENTER"
	RefPosBarycenter     RefPos = "BARYCENTER"
	RefPosHeliocenter    RefPos = "HELIOCENTER"
	RefPosTopocenter     RefPos = "TOPOCENTER"
	RefPosGalacticCenter RefPos = "GALACTIC_CENTER"
	RefPosEMBarycenter   RefPos = "EMBARYCENTER"
	RefPosMoon           RefPos = "MOON"
	RefPosLSR            RefPos = "LSR"
	RefPosLSRK           RefPos = "LSRK"
	RefPosLSRD           RefPos = "LSRD"
	RefPosRelocatable    RefPos = "RELOCATABLE"
	RefPosUnknown        RefPos = "UNKNOWNRefPos"
)

// RefPositions lists every reference position.
var RefPositions = []RefPos{
	RefPosGeocenter, RefPosBarycenter, RefPosHeliocenter, RefPosTopocenter,
	RefPosGalacticCenter, RefPosEMBarycenter, RefPosMoon, RefPosLSR,
	RefPosLSRK, RefPosLSRD, RefPosRelocatable, RefPosUnknown,
}

// LookupRefPos resolves a reference position token.
func LookupRefPos(token string) (RefPos, bool) {
	for _, r := range RefPositions {
		if string(r) == token {
			return r, true
		}
	}
	return "", false
}

// Flavor is the geometric representation of coordinate values.
type Flavor string

const (
	FlavorSpherical2 Flavor = "SPHERICAL2"
	FlavorSpherical3 Flavor = "SPHERICAL3"
	FlavorCartesian1 Flavor = "CARTESIAN1"
	FlavorCartesian2 Flavor = "CARTESIAN2"
	FlavorCartesian3 Flavor = "CARTESIAN3"
	FlavorUnitSphere Flavor = "UNITSPHERE"
)

// Flavors lists every coordinate flavor.
var Flavors = []Flavor{
	FlavorSpherical2, FlavorSpherical3, FlavorCartesian1,
	FlavorCartesian2, FlavorCartesian3, FlavorUnitSphere,
}

// Dim returns the number of values one coordinate of this flavor takes.
func (f Flavor) Dim() int {
	switch f {
	case FlavorCartesian1:
		return 1
	case FlavorSpherical2, FlavorCartesian2:
		return 2
	case FlavorSpherical3, FlavorCartesian3, FlavorUnitSphere:
		return 3
	default:
		return 0
	}
}

// LookupFlavor resolves a flavor token.
func LookupFlavor(token string) (Flavor, bool) {
	for _, f := range Flavors {
		if string(f) == token {
			return f, true
		}
	}
	return "", false
}

// Equinox is an epoch such as "J2000.0" or "B1950.0". The empty string means
// no equinox was given.
type Equinox string

var equinoxPattern = regexp.MustCompile(`^[JB][0-9]+(\.[0-9]*)?$`)

// ParseEquinox recognizes an equinox token and returns its canonical form,
// which always carries a fractional part ("J2000" becomes "J2000.0").
func ParseEquinox(token string) (Equinox, bool) {
	if !equinoxPattern.MatchString(token) {
		return "", false
	}
	if !strings.Contains(token, ".") {
		token += ".0"
	} else if strings.HasSuffix(token, ".") {
		token += "0"
	}
	return Equinox(token), true
}

// IsBesselian reports whether the equinox is a Besselian epoch.
func (e Equinox) IsBesselian() bool {
	return strings.HasPrefix(string(e), "B")
}

// Year returns the numeric part of the equinox.
func (e Equinox) Year() (float64, error) {
	if len(e) < 2 {
		return 0, fmt.Errorf("empty equinox")
	}
	return strconv.ParseFloat(string(e[1:]), 64)
}

// CoordSys is the spatial reference system of a Space phrase.
type CoordSys struct {
	Frame   Frame
	Equinox Equinox
	RefPos  RefPos
	Flavor  Flavor
}

// String renders the system the way STC-S writes it, omitting defaults.
func (c CoordSys) String() string {
	parts := []string{string(c.Frame)}
	if c.Equinox != "" {
		parts = append(parts, string(c.Equinox))
	}
	if c.RefPos != "" && c.RefPos != RefPosUnknown {
		parts = append(parts, string(c.RefPos))
	}
	if c.Flavor != "" && c.Flavor != FlavorSpherical2 {
		parts = append(parts, string(c.Flavor))
	}
	return strings.Join(parts, " ")
}
