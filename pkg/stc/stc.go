package stc

import (
	"mercator-hq/stc/pkg/stc/ast"
	"mercator-hq/stc/pkg/stc/conform"
	"mercator-hq/stc/pkg/stc/stcs"
	"mercator-hq/stc/pkg/stc/stcx"
)

// ParseSTCS parses and validates one STC-S expression.
func ParseSTCS(text string) (*ast.Tree, error) {
	return stcs.NewParser().Parse(text)
}

// ParseSTCX parses an STC-X document into one tree per resource description.
func ParseSTCX(xmlText string) ([]*ast.Tree, error) {
	return stcx.Parse(xmlText)
}

// GetSTCS renders a tree as a single STC-S line.
func GetSTCS(tree *ast.Tree) string {
	return stcs.Emit(tree)
}

// GetSTCX renders a tree as a complete STC-X document fragment.
func GetSTCX(tree *ast.Tree) (string, error) {
	return stcx.Emit(tree)
}

// GetSTCXProfile renders the reference systems of a tree, without any
// coordinate values, as an STC-X resource profile.
func GetSTCXProfile(tree *ast.Tree) (string, error) {
	return stcx.Profile(tree)
}

// ConformSpherical expresses the spatial coordinates of src in the reference
// system of dst. Only the reference system of dst is used.
func ConformSpherical(src, dst *ast.Tree) (*ast.Tree, error) {
	return conform.Spherical(src, dst)
}
