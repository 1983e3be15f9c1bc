package render

import (
	"bytes"
	"strings"

	"git.sr.ht/~mekyt/latex2mathml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const mathmlNS = "http://www.w3.org/1998/Math/MathML"

// Math renders $...$ and $$...$$ spans plus fenced ```math blocks to
// MathML. Multi-line dollar blocks are not recognized; use a fenced
// math block for those.
var Math = mathExtension{}

type mathExtension struct{}

func (e mathExtension) Extend(markdown goldmark.Markdown) {
	markdown.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&inlineMathParser{}, 150),
		),
		parser.WithASTTransformers(
			util.Prioritized(mathTransformer{}, 100),
		),
	)
	markdown.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(mathRenderer{}, 100),
		),
	)
}

type inlineMathNode struct {
	ast.BaseInline
	expr    []byte
	display bool
}

var inlineMathKind = ast.NewNodeKind("InlineMath")

func (n *inlineMathNode) Kind() ast.NodeKind {
	return inlineMathKind
}

func (n *inlineMathNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type mathBlockNode struct {
	ast.BaseBlock
}

var mathBlockKind = ast.NewNodeKind("MathBlock")

func (n *mathBlockNode) Kind() ast.NodeKind {
	return mathBlockKind
}

func (n *mathBlockNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type inlineMathParser struct{}

var _ parser.InlineParser = (*inlineMathParser)(nil)

func (p *inlineMathParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) == 0 || line[0] != '$' {
		return nil
	}
	openLen := 1
	display := false
	if len(line) > 1 && line[1] == '$' {
		openLen = 2
		display = true
	}
	rest := line[openLen:]
	idx := bytes.Index(rest, line[:openLen])
	if idx <= 0 {
		return nil
	}
	expr := rest[:idx]
	// "$5 and $6" 不是公式
	if trimmed := bytes.TrimSpace(expr); len(trimmed) == 0 || len(trimmed) != len(expr) {
		return nil
	}
	node := &inlineMathNode{
		expr:    append([]byte(nil), expr...),
		display: display,
	}
	block.Advance(openLen + idx + openLen)
	return node
}

type mathTransformer struct{}

var _ parser.ASTTransformer = (*mathTransformer)(nil)

// 把 ```math 围栏块换成数学节点，保留行引用，渲染时再取源码。
func (t mathTransformer) Transform(document *ast.Document, reader text.Reader, _ parser.Context) {
	var nodes []ast.Node
	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !bytes.Equal(fenced.Language(reader.Source()), []byte("math")) {
			return ast.WalkContinue, nil
		}
		nodes = append(nodes, fenced)
		return ast.WalkContinue, nil
	})
	for _, node := range nodes {
		parent := node.Parent()
		if parent != nil {
			block := &mathBlockNode{}
			block.SetLines(node.Lines())
			parent.ReplaceChild(parent, node, block)
		}
	}
}

type mathRenderer struct{}

var _ renderer.NodeRenderer = (*mathRenderer)(nil)

func (r mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(inlineMathKind, func(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		n := node.(*inlineMathNode)
		mode := "inline"
		if n.display {
			mode = "block"
		}
		w.WriteString(latex2mathml.Convert(string(n.expr), mathmlNS, mode, 2))
		return ast.WalkContinue, nil
	})
	reg.Register(mathBlockKind, func(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		n := node.(*mathBlockNode)
		lines := n.Lines()
		var length int
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			length += len(seg.Value(source))
		}
		var b strings.Builder
		b.Grow(length)
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		w.WriteString(latex2mathml.Convert(b.String(), mathmlNS, "block", 2))
		return ast.WalkContinue, nil
	})
}
