package stcx

import (
	"strconv"
	"sync"

	"mercator-hq/stc/pkg/stc/ast"
)

// handler applies one element to the tree under construction.
type handler func(w *walker, n *Node) error

// regionBuilder turns one region element into a geometry. name is the
// element name after resolving generic Region elements by their xsi:type.
type regionBuilder func(w *walker, n *Node, name string) (ast.Geometry, error)

// elementTables holds the fixed element-to-setter mapping. Elements missing
// from every table are skipped; elements listed in unsupported fail with a
// NotImplementedError.
type elementTables struct {
	system  map[string]handler // children of AstroCoordSystem
	coords  map[string]handler // children of AstroCoords
	area    map[string]handler // children of AstroCoordArea
	regions map[string]regionBuilder

	frames       map[string]ast.Frame
	refPositions map[string]ast.RefPos

	unsupported map[string]string // element local name -> feature
}

// resourceElements open one resource description each.
var resourceElements = map[string]bool{
	"STCResourceProfile": true,
	"STCSpec":            true,
}

var (
	tablesOnce sync.Once
	tables     *elementTables
)

// mapping returns the element tables, building them on first use.
func mapping() *elementTables {
	tablesOnce.Do(func() {
		t := &elementTables{
			system: map[string]handler{
				"TimeFrame":     (*walker).timeFrame,
				"SpaceFrame":    (*walker).spaceFrame,
				"SpectralFrame": (*walker).spectralFrame,
				"RedshiftFrame": (*walker).redshiftFrame,
			},
			coords: map[string]handler{
				"Time":       (*walker).timeCoord,
				"Position2D": (*walker).position2D,
				"Spectral":   (*walker).spectralCoord,
				"Redshift":   (*walker).redshiftCoord,
			},
			area: map[string]handler{
				"TimeInterval":     (*walker).timeInterval,
				"SpectralInterval": (*walker).spectralInterval,
				"RedshiftInterval": (*walker).redshiftInterval,
			},
			regions: map[string]regionBuilder{
				"Circle":       (*walker).circle,
				"Box":          (*walker).box,
				"Polygon":      (*walker).polygon,
				"Convex":       (*walker).convex,
				"Union":        (*walker).compound,
				"Intersection": (*walker).compound,
				"Negation":     (*walker).compound,
				"Region":       (*walker).typedRegion,
			},
			frames: map[string]ast.Frame{
				"ICRS":           ast.FrameICRS,
				"FK4":            ast.FrameFK4,
				"FK5":            ast.FrameFK5,
				"ECLIPTIC":       ast.FrameEcliptic,
				"GALACTIC_II":    ast.FrameGalactic,
				"SUPER_GALACTIC": ast.FrameSuperGalactic,
				"GEO_C":          ast.FrameGeoC,
				"GEO_D":          ast.FrameGeoD,
				"UNKNOWNFrame":   ast.FrameUnknown,
			},
			refPositions: map[string]ast.RefPos{},
			unsupported: map[string]string{
				"Position1D":             "one-dimensional positions",
				"Position3D":             "three-dimensional positions",
				"Velocity1D":             "velocities",
				"Velocity2D":             "velocities",
				"Velocity3D":             "velocities",
				"PositionScalarInterval": "position intervals",
				"Position2VecInterval":   "position intervals",
				"Position3VecInterval":   "position intervals",
				"Sphere":                 "sphere regions",
				"Ellipse":                "ellipse regions",
				"Sector":                 "sector regions",
				"AllSky":                 "all-sky regions",
				"Difference":             "difference regions",
				"GALACTIC_I":             "frame GALACTIC_I",
				"HPR":                    "solar frame HPR",
				"HGS":                    "solar frame HGS",
				"HGC":                    "solar frame HGC",
				"CUSTOM":                 "custom frames",
				"GenericCoordFrame":      "generic coordinate frames",
				"POLAR":                  "POLAR coordinates",
				"CYLINDRICAL":            "CYLINDRICAL coordinates",
				"SmallCircle":            "polygon edges along small circles",
				"PlanetaryEphem":         "planetary ephemerides",
			},
		}
		for _, rp := range ast.RefPositions {
			t.refPositions[string(rp)] = rp
		}
		t.area["Circle"] = (*walker).region
		t.area["Box"] = (*walker).region
		t.area["Polygon"] = (*walker).region
		t.area["Convex"] = (*walker).region
		t.area["Union"] = (*walker).region
		t.area["Intersection"] = (*walker).region
		t.area["Negation"] = (*walker).region
		t.area["Region"] = (*walker).region
		tables = t
	})
	return tables
}

// regionTypes maps xsi:type local parts of generic Region elements.
var regionTypes = map[string]string{
	"circleType":       "Circle",
	"boxType":          "Box",
	"polygonType":      "Polygon",
	"convexType":       "Convex",
	"unionType":        "Union",
	"intersectionType": "Intersection",
	"negationType":     "Negation",
}

// flavorAxes maps flavor elements to their default coord_naxes.
var flavorAxes = map[string]int{
	"SPHERICAL":  2,
	"CARTESIAN":  3,
	"UNITSPHERE": 3,
}

func flavorFromElement(local string, axes int) ast.Flavor {
	switch local {
	case "UNITSPHERE":
		return ast.FlavorUnitSphere
	case "SPHERICAL":
		return ast.Flavor("SPHERICAL" + strconv.Itoa(axes))
	default:
		return ast.Flavor("CARTESIAN" + strconv.Itoa(axes))
	}
}

// flavorElement is the inverse of flavorFromElement.
func flavorElement(f ast.Flavor) (local string, axes int) {
	switch f {
	case ast.FlavorUnitSphere:
		return "UNITSPHERE", 0
	case ast.FlavorSpherical3:
		return "SPHERICAL", 3
	case ast.FlavorSpherical2, "":
		return "SPHERICAL", 2
	default:
		return "CARTESIAN", f.Dim()
	}
}

// frameElement is the inverse of the frames table.
func frameElement(f ast.Frame) string {
	switch f {
	case ast.FrameGalactic:
		return "GALACTIC_II"
	case "":
		return string(ast.FrameUnknown)
	default:
		return string(f)
	}
}
