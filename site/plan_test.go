package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/go-wiki-site/wiki"
)

var (
	t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t1.Add(time.Hour)
)

func planOpts() PlanOptions {
	return PlanOptions{MarkdownExts: []string{".md"}}
}

func TestPlanMissingOutputs(t *testing.T) {
	sources := []Entry{
		{Path: "index.md", ModTime: t0},
		{Path: "blog/post.md", ModTime: t0},
		{Path: "img/logo.png", ModTime: t0},
	}

	actions := Plan(sources, Snapshot{}, planOpts())

	require.Len(t, actions, 3)
	assert.Equal(t, Action{Kind: ActionRender, Source: "index.md", Target: "index.html", Page: "index.md", Reason: reasonMissing}, actions[0])
	assert.Equal(t, Action{Kind: ActionRender, Source: "blog/post.md", Target: "blog/post.html", Page: "blog/post.md", Reason: reasonMissing}, actions[1])
	assert.Equal(t, Action{Kind: ActionCopy, Source: "img/logo.png", Target: "img/logo.png", Reason: reasonMissing}, actions[2])
}

func TestPlanStaleness(t *testing.T) {
	sources := []Entry{
		{Path: "fresh.md", ModTime: t0},
		{Path: "same.md", ModTime: t1},
		{Path: "stale.md", ModTime: t2},
		{Path: "asset.css", ModTime: t1},
	}
	outputs := Snapshot{
		"fresh.html": t1,
		"same.html":  t1,
		"stale.html": t1,
		"asset.css":  t1,
	}

	actions := Plan(sources, outputs, planOpts())

	kinds := map[string]ActionKind{}
	for _, a := range actions {
		kinds[a.Source] = a.Kind
	}
	assert.Equal(t, ActionSkip, kinds["fresh.md"])
	assert.Equal(t, ActionSkip, kinds["same.md"])
	assert.Equal(t, ActionRender, kinds["stale.md"])
	assert.Equal(t, ActionSkip, kinds["asset.css"])
	assert.Equal(t, 1, Count(actions, ActionRender))
}

func TestPlanSkippedPagesKeepPageID(t *testing.T) {
	actions := Plan([]Entry{{Path: "a.md", ModTime: t0}}, Snapshot{"a.html": t1}, planOpts())
	require.Len(t, actions, 1)
	assert.Equal(t, ActionSkip, actions[0].Kind)
	assert.Equal(t, wiki.PageID("a.md"), actions[0].Page)
}

func TestPlanForce(t *testing.T) {
	opts := planOpts()
	opts.Force = true

	actions := Plan([]Entry{{Path: "a.md", ModTime: t0}, {Path: "b.txt", ModTime: t0}},
		Snapshot{"a.html": t2, "b.txt": t2}, opts)

	assert.Equal(t, ActionRender, actions[0].Kind)
	assert.Equal(t, ActionCopy, actions[1].Kind)
	assert.Equal(t, reasonForced, actions[0].Reason)
}

func TestPlanTemplateNewerThanPages(t *testing.T) {
	opts := planOpts()
	opts.TemplateModTime = t2

	actions := Plan([]Entry{{Path: "a.md", ModTime: t0}, {Path: "b.txt", ModTime: t0}},
		Snapshot{"a.html": t1, "b.txt": t1}, opts)

	assert.Equal(t, ActionRender, actions[0].Kind)
	assert.Equal(t, reasonTemplate, actions[0].Reason)
	assert.Equal(t, ActionSkip, actions[1].Kind, "assets do not depend on the template")
}

func TestPlanOutputConflicts(t *testing.T) {
	sources := []Entry{
		{Path: "a.html", ModTime: t0},
		{Path: "a.markdown", ModTime: t0},
		{Path: "a.md", ModTime: t0},
	}
	opts := PlanOptions{MarkdownExts: []string{".md", ".markdown"}}

	actions := Plan(sources, Snapshot{}, opts)

	require.Len(t, actions, 3)
	assert.Equal(t, ActionSkip, actions[0].Kind)
	assert.Equal(t, reasonConflict, actions[0].Reason)
	assert.Equal(t, ActionRender, actions[1].Kind)
	assert.Equal(t, ActionSkip, actions[2].Kind)
	assert.Empty(t, actions[2].Page)
}

func TestPlanMarkdownExtensionIgnoresCase(t *testing.T) {
	actions := Plan([]Entry{{Path: "README.MD", ModTime: t0}}, Snapshot{}, planOpts())
	assert.Equal(t, ActionRender, actions[0].Kind)
	assert.Equal(t, "README.html", actions[0].Target)
}

func TestActionKindString(t *testing.T) {
	assert.Equal(t, "render", ActionRender.String())
	assert.Equal(t, "copy", ActionCopy.String())
	assert.Equal(t, "skip", ActionSkip.String())
}
