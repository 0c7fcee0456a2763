// Package sphermath implements the spherical astronomy the conform engine
// needs: unit vectors, 3x3 rotation matrices, epoch conversion, IAU 1976
// (FK5) and Newcomb (FK4) precession, the mean obliquity of the ecliptic
// and the fixed galactic and supergalactic orientations.
//
// Matrices rotate column vectors: v' = M·v. All angles in the API are
// degrees unless a name says otherwise.
package sphermath
