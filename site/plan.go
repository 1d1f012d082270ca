package site

import (
	"time"

	"github.com/ZacxDev/go-wiki-site/wiki"
)

type ActionKind int

const (
	ActionSkip ActionKind = iota
	ActionRender
	ActionCopy
)

func (k ActionKind) String() string {
	switch k {
	case ActionRender:
		return "render"
	case ActionCopy:
		return "copy"
	default:
		return "skip"
	}
}

// Action is one step of a build. Source is relative to the pages root and
// Target to the output root, both slash-separated.
type Action struct {
	Kind   ActionKind
	Source string
	Target string
	// Page is set for documents, whether or not they are re-rendered.
	Page   wiki.PageID
	Reason string
}

// PlanOptions controls staleness decisions.
type PlanOptions struct {
	MarkdownExts []string
	// Force treats every output as stale.
	Force bool
	// TemplateModTime makes every page older than the template stale.
	TemplateModTime time.Time
}

const (
	reasonMissing  = "missing"
	reasonStale    = "stale"
	reasonForced   = "forced"
	reasonTemplate = "template changed"
	reasonUpToDate = "up to date"
	reasonConflict = "output claimed by a page"
)

// Plan decides, without touching the filesystem, what a build does with
// each source file: documents are rendered, other files copied, and
// anything whose output exists and is not older than its source skipped.
func Plan(sources []Entry, outputs Snapshot, opts PlanOptions) []Action {
	pageTargets := make(map[string]bool)
	for _, src := range sources {
		if wiki.IsDocument(src.Path, opts.MarkdownExts) {
			pageTargets[wiki.OutputLocation(wiki.NewPageID(src.Path))] = true
		}
	}

	claimed := make(map[string]bool, len(sources))
	actions := make([]Action, 0, len(sources))
	for _, src := range sources {
		action := Action{Source: src.Path, Target: src.Path, Kind: ActionCopy}
		isPage := wiki.IsDocument(src.Path, opts.MarkdownExts)
		if isPage {
			action.Page = wiki.NewPageID(src.Path)
			action.Target = wiki.OutputLocation(action.Page)
			action.Kind = ActionRender
		}

		// A rendered page wins over an asset with the same output path, and
		// the first of several pages with one output path wins over the rest.
		if claimed[action.Target] || (!isPage && pageTargets[action.Target]) {
			action.Kind = ActionSkip
			action.Page = ""
			action.Reason = reasonConflict
			actions = append(actions, action)
			continue
		}
		claimed[action.Target] = true

		action.Reason = staleness(src, outputs, action.Target, isPage, opts)
		if action.Reason == reasonUpToDate {
			action.Kind = ActionSkip
		}
		actions = append(actions, action)
	}
	return actions
}

func staleness(src Entry, outputs Snapshot, target string, isPage bool, opts PlanOptions) string {
	if opts.Force {
		return reasonForced
	}
	outTime, ok := outputs[target]
	if !ok {
		return reasonMissing
	}
	if outTime.Before(src.ModTime) {
		return reasonStale
	}
	if isPage && outTime.Before(opts.TemplateModTime) {
		return reasonTemplate
	}
	return reasonUpToDate
}

// Count returns how many actions are of kind k.
func Count(actions []Action, k ActionKind) int {
	n := 0
	for _, a := range actions {
		if a.Kind == k {
			n++
		}
	}
	return n
}
