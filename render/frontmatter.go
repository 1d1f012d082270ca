package render

import (
	"bytes"

	"gopkg.in/yaml.v2"
)

// FrontMatter holds the optional YAML header of a document.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

var (
	frontMatterOpen  = []byte("---\n")
	frontMatterClose = []byte("\n---\n")
)

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// Markdown body. Only a block made of known keys that sets at least one of
// them is front matter; anything else stays in the body, where it renders
// as a thematic break followed by ordinary Markdown.
func SplitFrontMatter(src []byte) (FrontMatter, []byte) {
	var fm FrontMatter

	normalized := bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, frontMatterOpen) {
		return fm, src
	}
	rest := normalized[len(frontMatterOpen):]
	end := bytes.Index(rest, frontMatterClose)
	if end < 0 {
		return fm, src
	}

	if err := yaml.UnmarshalStrict(rest[:end], &fm); err != nil {
		return FrontMatter{}, src
	}
	if fm == (FrontMatter{}) {
		return fm, src
	}
	return fm, rest[end+len(frontMatterClose):]
}
