// Package stcx reads and writes STC-X, the XML serialization of space-time
// coordinates.
//
// The reader walks a decoded element tree with fixed tables that map element
// local names to setters on the tree being built. Each STCResourceProfile or
// STCSpec element yields one tree. Elements outside the tables are skipped;
// elements naming constructs this package does not model (three-dimensional
// positions, velocities, ellipses and the like) fail with a
// NotImplementedError rather than being approximated.
//
// Two writers are provided: Profile, which advertises reference systems only,
// and Emit, which writes coordinates and regions as well and reads back to an
// equal tree.
package stcx
