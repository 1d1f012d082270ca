package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexFindsAnyDepth(t *testing.T) {
	idx := NewIndex([]PageID{
		"index.md",
		"dir1/B.md",
		"dir1/dir2/A.md",
		"deep/x/y/z/leaf.MD",
	})

	assert.Equal(t, []PageID{"dir1/B.md"}, idx.Find("B"))
	assert.Equal(t, []PageID{"dir1/dir2/A.md"}, idx.Find("A"))
	assert.Equal(t, []PageID{"deep/x/y/z/leaf.MD"}, idx.Find("leaf"))
	assert.Equal(t, 4, idx.Len())
}

func TestIndexIsCaseSensitive(t *testing.T) {
	idx := NewIndex([]PageID{"Home.md"})

	_, ok := idx.Lookup("home")
	assert.False(t, ok)
	id, ok := idx.Lookup("Home")
	require.True(t, ok)
	assert.Equal(t, PageID("Home.md"), id)
}

func TestIndexTreatsGlobCharactersLiterally(t *testing.T) {
	idx := NewIndex([]PageID{
		"misc/what[1].md",
		"misc/what1.md",
		"misc/a*b?.md",
		"misc/axb.md",
	})

	assert.Equal(t, []PageID{"misc/what[1].md"}, idx.Find("what[1]"))
	assert.Equal(t, []PageID{"misc/a*b?.md"}, idx.Find("a*b?"))
	assert.Empty(t, idx.Find("a*"))
}

func TestIndexAmbiguousNamesPreferShallowestThenLexical(t *testing.T) {
	idx := NewIndex([]PageID{
		"z/notes/todo.md",
		"b/todo.md",
		"a/todo.md",
		"x/y/todo.md",
	})

	assert.Equal(t, []PageID{"a/todo.md", "b/todo.md", "x/y/todo.md", "z/notes/todo.md"}, idx.Find("todo"))
	id, ok := idx.Lookup("todo")
	require.True(t, ok)
	assert.Equal(t, PageID("a/todo.md"), id)
	assert.Equal(t, []string{"todo"}, idx.Ambiguous())
}

func TestIndexRootBeatsNested(t *testing.T) {
	idx := NewIndex([]PageID{"a/About.md", "About.md"})
	id, _ := idx.Lookup("About")
	assert.Equal(t, PageID("About.md"), id)
}

func TestIndexIgnoresDuplicatesAndEmptyStems(t *testing.T) {
	idx := NewIndex([]PageID{"a.md", "a.md", ".md"})
	assert.Equal(t, []PageID{"a.md"}, idx.Find("a"))
	assert.Equal(t, 1, idx.Len())
}

func TestFindReturnsCopy(t *testing.T) {
	idx := NewIndex([]PageID{"a/x.md", "b/x.md"})
	found := idx.Find("x")
	found[0] = "mutated.md"
	assert.Equal(t, PageID("a/x.md"), idx.Find("x")[0])
}

func TestIsDocument(t *testing.T) {
	exts := []string{".md", ".markdown"}
	assert.True(t, IsDocument("a.md", exts))
	assert.True(t, IsDocument("dir/a.MD", exts))
	assert.True(t, IsDocument("a.markdown", exts))
	assert.False(t, IsDocument("a.mdx", exts))
	assert.False(t, IsDocument("README", exts))
}
