package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pkg/errors"
)

// ErrConversion indicates the Markdown converter failed on a document.
var ErrConversion = errors.New("markdown conversion failed")

const extensions = parser.CommonExtensions | parser.AutoHeadingIDs | parser.Footnotes

// MarkdownConverter turns Markdown into an HTML fragment. Fenced code
// blocks are highlighted with chroma.
type MarkdownConverter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func NewMarkdownConverter(styleName string) *MarkdownConverter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &MarkdownConverter{
		formatter: chromahtml.New(chromahtml.TabWidth(4)),
		style:     style,
	}
}

// ToHTML converts src. The gomarkdown parser cannot be reused, so a fresh
// parser and renderer are built for every document. Smartypants stays off:
// curly quotes would change the names inside [[references]].
func (c *MarkdownConverter) ToHTML(src []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = wrapPanic(r)
		}
	}()

	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          html.FootnoteReturnLinks,
		RenderNodeHook: c.renderCodeBlock,
	})
	return markdown.ToHTML(src, p, renderer), nil
}

func wrapPanic(r any) error {
	return errors.Wrapf(ErrConversion, "%v", r)
}

func (c *MarkdownConverter) renderCodeBlock(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	block, ok := node.(*ast.CodeBlock)
	if !ok || !entering || !block.IsFenced {
		return ast.GoToNext, false
	}

	var buf bytes.Buffer
	if err := c.highlight(&buf, string(block.Literal), infoLanguage(block.Info)); err != nil {
		// Unknown language: gomarkdown renders a plain <pre><code>.
		return ast.GoToNext, false
	}
	_, _ = w.Write(buf.Bytes())
	return ast.GoToNext, true
}

func (c *MarkdownConverter) highlight(w io.Writer, source, lang string) error {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		return errors.Errorf("no lexer for %q", lang)
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.formatter.Format(w, c.style, iterator))
}

// infoLanguage extracts the language from a fence info string such as
// "go title=main.go".
func infoLanguage(info []byte) string {
	fields := strings.Fields(string(info))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[0], "language-")
}
