// Command stc parses, profiles and converts IVOA Space-Time Coordinate
// descriptions.
//
// Usage:
//
//	# STC-X resource profile of an STC-S expression
//	stc resprof "Circle ICRS 148.9 69.07 0.2"
//
//	# One STC-S line per resource of an STC-X document
//	stc parsex resources.xml
//
//	# Express a position in another system
//	stc conform "Position ICRS 12 34" "Position GALACTIC"
//
//	# Serve the verbs and a descriptor directory over HTTP
//	stc serve --config stc.yaml
//
//	# List the verbs
//	stc help
package main

func main() {
	Execute()
}
