package wiki

import (
	"path"
	"path/filepath"
	"strings"
)

const htmlExt = ".html"

// PageID is the slash-separated path of a document relative to the pages
// root, extension included, e.g. "blog/post-one.md".
type PageID string

// NewPageID normalizes a path relative to the pages root into a PageID.
func NewPageID(rel string) PageID {
	return PageID(path.Clean(filepath.ToSlash(rel)))
}

// Name returns the logical name of the page: its filename stem.
func (id PageID) Name() string {
	return stem(path.Base(string(id)))
}

// Depth is the number of directories between the pages root and the page.
func (id PageID) Depth() int {
	return strings.Count(string(id), "/")
}

// OutputLocation swaps the markup extension for .html. The result is
// relative to the output root and always uses forward slashes.
func OutputLocation(id PageID) string {
	p := string(id)
	return strings.TrimSuffix(p, path.Ext(p)) + htmlExt
}

func stem(base string) string {
	return strings.TrimSuffix(base, path.Ext(base))
}

// outputDir is the directory a relative link is computed from. Pages at the
// output root live in ".", never in "".
func outputDir(loc string) string {
	dir := path.Dir(filepath.ToSlash(loc))
	if dir == "" {
		return "."
	}
	return dir
}

// relativeLink computes the link from dir to target, both relative to the
// output root. The result always uses forward slashes.
func relativeLink(dir, target string) (string, error) {
	rel, err := filepath.Rel(filepath.FromSlash(dir), filepath.FromSlash(target))
	if err != nil {
		return "", err
	}
	return withRelativePrefix(filepath.ToSlash(rel)), nil
}

// withRelativePrefix prefixes same-directory links with "./". Links whose
// first segment contains a colon get the prefix too, otherwise a URL parser
// reads that segment as a scheme.
func withRelativePrefix(link string) string {
	if strings.HasPrefix(link, "./") || strings.HasPrefix(link, "../") || strings.HasPrefix(link, "/") {
		return link
	}
	first, _, nested := strings.Cut(link, "/")
	if !nested || strings.Contains(first, ":") {
		return "./" + link
	}
	return link
}
