// Package markdown exposes a parsed markdown document as a push stream of
// its top-level blocks, using goldmark for parsing.
package markdown

import (
	"fmt"
	"strings"

	"github.com/fwojciec/push"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is one top-level block of a markdown document.
type Block struct {
	Kind  string // goldmark node kind, e.g. "Heading", "Paragraph", "FencedCodeBlock"
	Level int    // heading level; 0 for other kinds
	Text  string // raw source text of the block
}

// Blocks returns a stream of src's top-level blocks in document order.
// A terminal Result stops the underlying AST walk.
func Blocks(src []byte) push.Stream[Block] {
	return blockStream{src: src}
}

type blockStream struct {
	src []byte
}

// Interface compliance check.
var _ push.Stream[Block] = blockStream{}

func (s blockStream) Connect(sub push.Subscriber[Block]) {
	safe := push.Safe(sub)

	doc := goldmark.DefaultParser().Parse(text.NewReader(s.src))

	stopped := false
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n == doc {
			return ast.WalkContinue, nil
		}
		if n.Parent() != doc {
			return ast.WalkSkipChildren, nil
		}

		b := Block{Kind: n.Kind().String(), Text: blockText(n, s.src)}
		if h, ok := n.(*ast.Heading); ok {
			b.Level = h.Level
		}
		if safe.Next(b).Done {
			stopped = true
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	if stopped {
		return
	}
	if err != nil {
		safe.Throw(fmt.Errorf("markdown: %w", err))
		return
	}
	safe.Return(nil)
}

// blockText reassembles a block's source text from its line segments. Blocks
// without their own lines (lists, blockquotes) gather from their descendants.
func blockText(n ast.Node, src []byte) string {
	var sb strings.Builder
	writeLines(&sb, n, src)
	return strings.TrimRight(sb.String(), "\n")
}

func writeLines(sb *strings.Builder, n ast.Node, src []byte) {
	if n.Type() != ast.TypeBlock {
		return
	}
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(src))
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeLines(sb, c, src)
	}
}
