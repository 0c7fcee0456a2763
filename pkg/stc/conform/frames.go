package conform

import (
	"sync"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/stc/sphermath"
)

type frameKey struct {
	frame   ast.Frame
	equinox ast.Equinox
}

// rotation holds the matrices between one system and ICRS.
type rotation struct {
	toICRS   sphermath.Mat3
	fromICRS sphermath.Mat3
}

var (
	tableOnce sync.Once
	table     map[frameKey]rotation
)

// wellKnown returns the read-only table of systems in common use. It is
// built on first use; systems missing from it are computed per call.
func wellKnown() map[frameKey]rotation {
	tableOnce.Do(func() {
		orthogonal := func(toICRS sphermath.Mat3) rotation {
			return rotation{toICRS: toICRS, fromICRS: toICRS.Transpose()}
		}
		galToICRS := sphermath.GalacticFromICRS.Transpose()
		sgFromICRS := sphermath.SupergalacticFromGalactic().Mul(sphermath.GalacticFromICRS)

		table = map[frameKey]rotation{
			{ast.FrameICRS, ""}:             orthogonal(sphermath.Identity()),
			{ast.FrameGalactic, ""}:         orthogonal(galToICRS),
			{ast.FrameSuperGalactic, ""}:    orthogonal(sgFromICRS.Transpose()),
			{ast.FrameFK5, "J2000.0"}:       orthogonal(sphermath.Identity()),
			{ast.FrameEcliptic, "J2000.0"}:  orthogonal(sphermath.EquatorialToEcliptic(2000).Transpose()),
			{ast.FrameFK4, "B1950.0"}: {
				toICRS:   sphermath.FK5FromFK4,
				fromICRS: sphermath.FK5FromFK4.Inverse(),
			},
		}
	})
	return table
}

func keyFor(cs ast.CoordSys) frameKey {
	eq := cs.Equinox
	if !cs.Frame.HasEquinox() {
		eq = ""
	} else if eq == "" {
		eq = cs.Frame.DefaultEquinox()
	}
	return frameKey{frame: cs.Frame, equinox: eq}
}

// rotationFor returns the matrices between cs and ICRS.
func rotationFor(cs ast.CoordSys) (rotation, error) {
	key := keyFor(cs)
	if r, ok := wellKnown()[key]; ok {
		return r, nil
	}

	switch key.frame {
	case ast.FrameFK5:
		j, err := julianEpoch(key.equinox)
		if err != nil {
			return rotation{}, err
		}
		to := sphermath.PrecessFK5(j, 2000)
		return rotation{toICRS: to, fromICRS: to.Transpose()}, nil

	case ast.FrameFK4:
		b, err := besselianEpoch(key.equinox)
		if err != nil {
			return rotation{}, err
		}
		to := sphermath.FK5FromFK4.Mul(sphermath.PrecessFK4(b, 1950))
		return rotation{toICRS: to, fromICRS: to.Inverse()}, nil

	case ast.FrameEcliptic:
		j, err := julianEpoch(key.equinox)
		if err != nil {
			return rotation{}, err
		}
		from := sphermath.EquatorialToEcliptic(j)
		return rotation{toICRS: from.Transpose(), fromICRS: from}, nil

	case ast.FrameGeoC, ast.FrameGeoD:
		return rotation{}, stcErrors.NotImplemented("conform involving earth-fixed frame %s", key.frame)

	default:
		return rotation{}, stcErrors.NotImplemented("conform involving frame %s", key.frame)
	}
}

func julianEpoch(eq ast.Equinox) (float64, error) {
	year, err := eq.Year()
	if err != nil {
		return 0, &stcErrors.ValueError{Field: "space.equinox", Message: err.Error()}
	}
	if eq.IsBesselian() {
		return sphermath.BesselianToJulian(year), nil
	}
	return year, nil
}

func besselianEpoch(eq ast.Equinox) (float64, error) {
	year, err := eq.Year()
	if err != nil {
		return 0, &stcErrors.ValueError{Field: "space.equinox", Message: err.Error()}
	}
	if eq.IsBesselian() {
		return year, nil
	}
	return sphermath.JulianToBesselian(year), nil
}

// Matrix returns the rotation taking vectors of from into to.
func Matrix(from, to ast.CoordSys) (sphermath.Mat3, error) {
	src, err := rotationFor(from)
	if err != nil {
		return sphermath.Mat3{}, err
	}
	dst, err := rotationFor(to)
	if err != nil {
		return sphermath.Mat3{}, err
	}
	return dst.fromICRS.Mul(src.toICRS), nil
}
