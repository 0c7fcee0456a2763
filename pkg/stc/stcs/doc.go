// Package stcs reads and writes STC-S, the compact textual notation for
// space-time coordinates.
//
// An expression is a sequence of up to four phrases, in this order:
//
//	Time TT TOPOCENTER 2009-03-10T09:56:10 Error 1
//	Circle ICRS BARYCENTER 10.5 -20 0.5 unit deg
//	Spectral BARYCENTER 1420405751.77 unit Hz
//	Redshift BARYCENTER VELOCITY OPTICAL 200 unit km/s
//
// Tokens are separated by whitespace runs; parentheses delimit the children
// of Union, Intersection and Not. Parse errors carry the 0-based byte offset
// of the offending token, or of the position where a missing token was
// expected.
package stcs
