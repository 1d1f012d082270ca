package wiki

import (
	"fmt"
	"html"
	"log/slog"
	"regexp"

	"github.com/ZacxDev/go-wiki-site/logfields"
)

// referencePattern matches [[Name]] lazily, so two references on one line
// stay two references.
var referencePattern = regexp.MustCompile(`\[\[(.*?)\]\]`)

// RenderContext is the position of the page currently being rendered.
type RenderContext struct {
	// Output is the page's output location relative to the output root.
	Output string
}

// NewRenderContext returns the context for rendering page id.
func NewRenderContext(id PageID) RenderContext {
	return RenderContext{Output: OutputLocation(id)}
}

// Resolver turns logical names into relative links.
type Resolver struct {
	index  *Index
	logger *slog.Logger
}

func NewResolver(index *Index, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{index: index, logger: logger}
}

// Link returns the href for a reference to name from the page in rctx.
// It reports false when no page carries that logical name.
func (r *Resolver) Link(name string, rctx RenderContext) (string, bool) {
	candidates := r.index.Find(name)
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) > 1 {
		r.logger.Debug("Ambiguous reference, using first candidate",
			logfields.Reference(name),
			logfields.Page(rctx.Output),
			logfields.Candidates(pageStrings(candidates)))
	}

	target := OutputLocation(candidates[0])
	link, err := relativeLink(outputDir(rctx.Output), target)
	if err != nil {
		r.logger.Debug("Falling back to root-relative link",
			logfields.Reference(name), logfields.Page(rctx.Output), logfields.Error(err))
		return "/" + target, true
	}
	return link, true
}

// Rewrite replaces every [[Name]] in doc with an anchor to the named page.
// References that do not resolve are left as written and returned.
func (r *Resolver) Rewrite(doc string, rctx RenderContext) (string, []string) {
	var unresolved []string
	out := referencePattern.ReplaceAllStringFunc(doc, func(ref string) string {
		label := ref[2 : len(ref)-2]
		href, ok := r.Link(html.UnescapeString(label), rctx)
		if !ok {
			unresolved = append(unresolved, label)
			r.logger.Warn("No page found for reference",
				logfields.Reference(label), logfields.Page(rctx.Output))
			return ref
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), label)
	})
	return out, unresolved
}

func pageStrings(ids []PageID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
