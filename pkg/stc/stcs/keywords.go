package stcs

import (
	"slices"

	"mercator-hq/stc/pkg/stc/ast"
)

// Phrase keywords, grouped by the axis they introduce.
var (
	timeKeywords = []string{
		string(ast.TimeKindInstant), string(ast.TimeKindInterval),
		string(ast.TimeKindStartTime), string(ast.TimeKindStopTime),
	}
	spaceKeywords = []string{
		string(ast.KindPosition), string(ast.KindCircle), string(ast.KindBox),
		string(ast.KindPolygon), string(ast.KindConvex), string(ast.KindUnion),
		string(ast.KindIntersection), string(ast.KindNot),
	}
	regionKeywords = spaceKeywords[1:]
	spectralKeywords = []string{
		string(ast.SpectralKindValue), string(ast.SpectralKindInterval),
	}
	redshiftKeywords = []string{
		string(ast.RedshiftKindValue), string(ast.RedshiftKindInterval),
	}
	phraseKeywords = slices.Concat(timeKeywords, spaceKeywords, spectralKeywords, redshiftKeywords)
)

// Keywords that may follow the values of a phrase.
const (
	kwUnit       = "unit"
	kwError      = "Error"
	kwResolution = "Resolution"
	kwSize       = "Size"
	kwPixSize    = "PixSize"
)

var trailerKeywords = []string{kwUnit, kwError, kwResolution, kwSize, kwPixSize}

// isKeyword reports whether token is a word the grammar reserves.
func isKeyword(token string) bool {
	return slices.Contains(phraseKeywords, token) || slices.Contains(trailerKeywords, token)
}

func isTimeKeyword(token string) bool     { return slices.Contains(timeKeywords, token) }
func isSpaceKeyword(token string) bool    { return slices.Contains(spaceKeywords, token) }
func isRegionKeyword(token string) bool   { return slices.Contains(regionKeywords, token) }
func isSpectralKeyword(token string) bool { return slices.Contains(spectralKeywords, token) }
func isRedshiftKeyword(token string) bool { return slices.Contains(redshiftKeywords, token) }
