package render

import (
	"html/template"
	"os"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/ZacxDev/go-wiki-site/config"
	"github.com/ZacxDev/go-wiki-site/wiki"
)

// Page is a fully rendered document.
type Page struct {
	HTML       []byte
	Unresolved []string
}

// Renderer converts one document, merges it into the layout and resolves
// its [[references]].
type Renderer struct {
	converter   *MarkdownConverter
	layout      *plush.Template
	websiteName string
	resolver    *wiki.Resolver
}

// Options configures a Renderer.
type Options struct {
	WebsiteName    string
	HighlightStyle string
}

func New(layout *plush.Template, resolver *wiki.Resolver, opts Options) *Renderer {
	name := opts.WebsiteName
	if name == "" {
		name = config.DefaultWebsiteName
	}
	return &Renderer{
		converter:   NewMarkdownConverter(opts.HighlightStyle),
		layout:      layout,
		websiteName: name,
		resolver:    resolver,
	}
}

// LoadTemplate reads and parses the page layout.
func LoadTemplate(path string) (*plush.Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ParseTemplate(string(content))
}

func ParseTemplate(src string) (*plush.Template, error) {
	layout, err := plush.Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing page template")
	}
	return layout, nil
}

// Render produces the final HTML for page id with Markdown source src.
func (r *Renderer) Render(id wiki.PageID, src []byte) (*Page, error) {
	fm, body := SplitFrontMatter(src)

	content, err := r.converter.ToHTML(body)
	if err != nil {
		return nil, errors.Wrapf(err, "converting %s", id)
	}

	title := fm.Title
	if title == "" {
		title = TitleFromName(id.Name())
	}

	ctx := plush.NewContext()
	ctx.Set("title", title)
	ctx.Set("description", fm.Description)
	ctx.Set("WebsiteName", r.websiteName)
	// Already HTML; the layout must not escape it again.
	ctx.Set("content", template.HTML(content))

	pageHTML, err := r.layout.Exec(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "executing template for %s", id)
	}

	resolved, unresolved := r.resolver.Rewrite(pageHTML, wiki.NewRenderContext(id))

	return &Page{
		HTML:       []byte(resolved),
		Unresolved: unresolved,
	}, nil
}
