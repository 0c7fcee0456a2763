// Package stc parses, transforms and serializes astronomical Space-Time
// Coordinate (STC) descriptions.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - ast: the typed tree shared by every other package
// - stcs: the STC-S lexer, parser and emitter
// - stcx: the STC-X walker and the profile and full XML emitters
// - conform: rotation of spatial coordinates between reference systems
// - sphermath: vectors, rotation matrices, precession and frame constants
// - validator: range checks applied after a successful STC-S parse
// - errors: ParseError, XMLError, NotImplementedError and ValueError
//
// # Basic Usage
//
// Conform a position into galactic coordinates:
//
//	src, err := stc.ParseSTCS("Position ICRS 12.0 34.0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dst, err := stc.ParseSTCS("Position GALACTIC")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := stc.ConformSpherical(src, dst)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stc.GetSTCS(out)) // Position GALACTIC 122.118... -28.866...
//
// Every function is pure. Trees passed in are never modified, and the
// returned trees share no memory with their inputs.
package stc
