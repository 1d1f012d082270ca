package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageIDName(t *testing.T) {
	tests := []struct {
		id   PageID
		want string
	}{
		{"index.md", "index"},
		{"blog/post-one.md", "post-one"},
		{"a/b/c/archive.tar.md", "archive.tar"},
		{"notes/Q&A.markdown", "Q&A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.Name(), string(tt.id))
	}
}

func TestNewPageIDCleans(t *testing.T) {
	assert.Equal(t, PageID("blog/post.md"), NewPageID("./blog//post.md"))
}

func TestOutputLocation(t *testing.T) {
	assert.Equal(t, "index.html", OutputLocation("index.md"))
	assert.Equal(t, "dir1/dir2/A.html", OutputLocation("dir1/dir2/A.md"))
	assert.Equal(t, "x/notes.html", OutputLocation("x/notes.MD"))
}

func TestOutputDirAtRoot(t *testing.T) {
	assert.Equal(t, ".", outputDir("index.html"))
	assert.Equal(t, ".", outputDir(""))
	assert.Equal(t, "blog", outputDir("blog/post.html"))
}

func TestRelativeLink(t *testing.T) {
	tests := []struct {
		name   string
		dir    string
		target string
		want   string
	}{
		{"parent", "dir1/dir2", "dir1/B.html", "../B.html"},
		{"sibling", "dir1", "dir1/B.html", "./B.html"},
		{"root sibling", ".", "B.html", "./B.html"},
		{"root to nested", ".", "blog/post.html", "blog/post.html"},
		{"divergent", "a/b", "c/d/e.html", "../../c/d/e.html"},
		{"child", "a", "a/b/c.html", "b/c.html"},
		{"colon segment", ".", "x:y/c.html", "./x:y/c.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := relativeLink(tt.dir, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeLinkImpossible(t *testing.T) {
	_, err := relativeLink("..", "a.html")
	assert.Error(t, err)
}
