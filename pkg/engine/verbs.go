package engine

import (
	"context"
	"fmt"
	"strings"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/journal"
	"mercator-hq/stc/pkg/stc"
	"mercator-hq/stc/pkg/stc/ast"
	"mercator-hq/stc/pkg/telemetry/tracing"
)

// Verb describes one engine verb for help output.
type Verb struct {
	Name    string
	Usage   string
	Summary string
}

// Verbs lists the verbs in help order.
var Verbs = []Verb{
	{OpResourceProfile, "resprof <stc-s>", "print the STC-X resource profile of an STC-S expression"},
	{OpParseX, "parsex <stc-x>", "print one STC-S line per resource of an STC-X document"},
	{OpConform, "conform <stc-s> <target stc-s>", "express the first expression in the system of the second"},
	{OpHelp, "help", "list the verbs"},
}

// ResourceProfile parses an STC-S expression and returns its STC-X resource
// profile.
func (e *Engine) ResourceProfile(ctx context.Context, stcsText string) (string, error) {
	return e.Profile(ctx, cache.FormatSTCS, stcsText)
}

// Profile is ResourceProfile for input in either notation. An STC-X
// document with several resources yields one profile per resource,
// separated by the marker line.
func (e *Engine) Profile(ctx context.Context, format cache.Format, text string) (string, error) {
	return e.run(ctx, OpResourceProfile, text, func(ctx context.Context, rec *journal.Record) (string, error) {
		trees, err := e.parseFor(ctx, rec, format, text)
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(trees))
		for _, tree := range trees {
			out, err := stc.GetSTCXProfile(tree)
			if err != nil {
				return "", err
			}
			parts = append(parts, out)
		}
		return joinMarked(parts), nil
	})
}

// ParseX parses an STC-X document and returns one STC-S line per resource,
// separated by the marker line.
func (e *Engine) ParseX(ctx context.Context, xmlText string) (string, error) {
	return e.run(ctx, OpParseX, xmlText, func(ctx context.Context, rec *journal.Record) (string, error) {
		trees, err := e.parseFor(ctx, rec, cache.FormatSTCX, xmlText)
		if err != nil {
			return "", err
		}
		lines := make([]string, len(trees))
		for i, tree := range trees {
			lines[i] = stc.GetSTCS(tree)
		}
		return joinMarked(lines), nil
	})
}

// Conform parses two STC-S expressions and returns the first expressed in
// the spatial system of the second.
func (e *Engine) Conform(ctx context.Context, srcSTCS, dstSTCS string) (string, error) {
	return e.ConformDocument(ctx, cache.FormatSTCS, srcSTCS, dstSTCS)
}

// ConformDocument is Conform for a source in either notation. Every tree of
// the source is conformed; results are separated by the marker line.
func (e *Engine) ConformDocument(ctx context.Context, format cache.Format, text, dstSTCS string) (string, error) {
	input := text + "\x00" + dstSTCS
	return e.run(ctx, OpConform, input, func(ctx context.Context, rec *journal.Record) (string, error) {
		src, err := e.parseFor(ctx, rec, format, text)
		if err != nil {
			return "", err
		}
		dsts, _, err := e.parse(cache.FormatSTCS, dstSTCS)
		if err != nil {
			return "", err
		}
		dst := dsts[0]

		rec.SourceSystem = systemOf(src[0])
		rec.TargetSystem = systemOf(dst)
		tracing.SetFrameAttributes(tracing.SpanFromContext(ctx), rec.SourceSystem, rec.TargetSystem)

		lines := make([]string, len(src))
		for i, tree := range src {
			out, err := stc.ConformSpherical(tree, dst)
			if err != nil {
				return "", err
			}
			lines[i] = stc.GetSTCS(out)
		}
		return joinMarked(lines), nil
	})
}

// Help lists the verbs with their one-line descriptions.
func (e *Engine) Help() string {
	width := 0
	for _, v := range Verbs {
		width = max(width, len(v.Usage))
	}
	var b strings.Builder
	b.WriteString("verbs:\n")
	for _, v := range Verbs {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, v.Usage, v.Summary)
	}
	e.metrics.RecordOperation(OpHelp, "", 0)
	return b.String()
}

func (e *Engine) parseFor(ctx context.Context, rec *journal.Record, format cache.Format, text string) ([]*ast.Tree, error) {
	trees, hit, err := e.parse(format, text)
	if err != nil {
		return nil, err
	}
	rec.Trees = len(trees)
	rec.CacheHit = hit
	tracing.SetCacheAttribute(tracing.SpanFromContext(ctx), hit)
	return trees, nil
}

func systemOf(tree *ast.Tree) string {
	if tree == nil || tree.Space == nil {
		return ""
	}
	return tree.Space.CoordSys.String()
}

// joinMarked joins results with the marker on a line of its own.
func joinMarked(parts []string) string {
	return strings.Join(parts, "\n\n"+Marker+"\n\n")
}
