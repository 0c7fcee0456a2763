package engine

import (
	"fmt"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

// parse turns text in the given notation into trees, consulting the cache
// first. The returned trees are private to the caller.
func (e *Engine) parse(format cache.Format, text string) ([]*ast.Tree, bool, error) {
	key := cache.Fingerprint(format, text)
	if e.cache != nil {
		if trees, ok := e.cache.Get(key); ok {
			return trees, true, nil
		}
	}

	var (
		trees []*ast.Tree
		err   error
	)
	switch format {
	case cache.FormatSTCS:
		var tree *ast.Tree
		tree, err = e.parser.Parse(text)
		if err == nil {
			trees = []*ast.Tree{tree}
		}
	case cache.FormatSTCX:
		trees, err = e.parseSTCX(text)
	default:
		return nil, false, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return nil, false, err
	}

	if e.cache != nil {
		e.cache.Add(key, "", trees)
	}
	return trees, false, nil
}

func (e *Engine) parseSTCX(text string) ([]*ast.Tree, error) {
	if limit := e.config.MaxDocumentBytes; limit > 0 && int64(len(text)) > limit {
		return nil, &stcErrors.XMLError{
			Message: fmt.Sprintf("document of %d bytes exceeds maximum of %d bytes", len(text), limit),
		}
	}

	return e.xparser.Parse(text)
}
