package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ZacxDev/go-wiki-site/config"
	"github.com/ZacxDev/go-wiki-site/logfields"
	"github.com/ZacxDev/go-wiki-site/render"
	"github.com/ZacxDev/go-wiki-site/utils"
	"github.com/ZacxDev/go-wiki-site/wiki"
)

const sitemapFile = "sitemap.xml"

// Report summarizes one build run.
type Report struct {
	Rendered   int
	Copied     int
	Skipped    int
	Failed     int
	Unresolved int
	Sitemap    bool
	Duration   time.Duration
}

func (r *Report) String() string {
	return fmt.Sprintf("%d rendered, %d copied, %d skipped, %d failed, %d unresolved references",
		r.Rendered, r.Copied, r.Skipped, r.Failed, r.Unresolved)
}

// Builder mirrors the pages tree into the public tree.
type Builder struct {
	site   *config.Site
	logger *slog.Logger

	outMu sync.Mutex
	out   io.Writer
}

func NewBuilder(site *config.Site, out io.Writer, logger *slog.Logger) *Builder {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{site: site, out: out, logger: logger}
}

// Prepare validates the inputs and computes the plan for the next run
// without writing anything.
func (b *Builder) Prepare(force bool) ([]Action, *wiki.Index, error) {
	if err := b.site.Validate(); err != nil {
		return nil, nil, err
	}
	tmplInfo, err := os.Stat(b.site.Template)
	if err != nil {
		return nil, nil, errors.Wrap(config.ErrTemplateMissing, err.Error())
	}

	sources, err := ScanSource(b.site.PagesDir, b.logger)
	if err != nil {
		return nil, nil, err
	}
	outputs, err := ScanOutput(b.site.PublicDir, b.logger)
	if err != nil {
		return nil, nil, err
	}

	var pages []wiki.PageID
	for _, src := range sources {
		if wiki.IsDocument(src.Path, b.site.MarkdownExts) {
			pages = append(pages, wiki.NewPageID(src.Path))
		}
	}
	index := wiki.NewIndex(pages)
	for _, name := range index.Ambiguous() {
		candidates := index.Find(name)
		b.logger.Warn("Logical name used by several pages, references resolve to the first",
			logfields.Reference(name),
			logfields.Count(len(candidates)),
			logfields.Candidates(pageStrings(candidates)))
	}

	actions := Plan(sources, outputs, PlanOptions{
		MarkdownExts:    b.site.MarkdownExts,
		Force:           force,
		TemplateModTime: tmplInfo.ModTime(),
	})
	return actions, index, nil
}

// Run performs one build. Only a missing pages directory or template, or a
// failure to scan the trees, is returned as an error; per-file failures
// are logged and counted in the report.
func (b *Builder) Run(ctx context.Context, force bool) (*Report, error) {
	start := time.Now()

	actions, index, err := b.Prepare(force)
	if err != nil {
		return nil, err
	}
	layout, err := render.LoadTemplate(b.site.Template)
	if os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(config.ErrTemplateMissing, err.Error())
	}
	if err != nil {
		return nil, err
	}
	renderer := render.New(layout, wiki.NewResolver(index, b.logger), render.Options{
		WebsiteName:    b.site.WebsiteName,
		HighlightStyle: b.site.HighlightStyle,
	})

	if err := ensureDir(b.site.PublicDir); err != nil {
		return nil, err
	}

	report := &Report{}
	var mu sync.Mutex
	record := func(fn func(r *Report)) {
		mu.Lock()
		defer mu.Unlock()
		fn(report)
	}

	var g errgroup.Group
	g.SetLimit(max(1, b.site.Workers))
	for _, action := range actions {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			b.execute(renderer, action, record)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}

	if b.site.Origin != "" {
		changed, err := b.writeSitemap(actions)
		if err != nil {
			b.logger.Error("Failed to write sitemap", logfields.Error(err))
			report.Failed++
		}
		report.Sitemap = changed
	}

	report.Duration = time.Since(start)
	b.logger.Debug("Build finished",
		logfields.Count(report.Rendered+report.Copied),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report, nil
}

func (b *Builder) execute(renderer *render.Renderer, action Action, record func(func(*Report))) {
	src := filepath.Join(b.site.PagesDir, filepath.FromSlash(action.Source))
	dst := filepath.Join(b.site.PublicDir, filepath.FromSlash(action.Target))

	switch action.Kind {
	case ActionSkip:
		if action.Reason == reasonConflict {
			b.logger.Warn("Skipping file whose output belongs to another source",
				logfields.Source(action.Source), logfields.Target(action.Target))
		}
		record(func(r *Report) { r.Skipped++ })

	case ActionRender:
		b.progress("Processing Markdown: %s -> %s\n", src, dst)
		unresolved, err := b.renderPage(renderer, action.Page, src, dst)
		if err != nil {
			b.logger.Error("Failed to render page", logfields.Source(src), logfields.Error(err))
			record(func(r *Report) { r.Failed++ })
			return
		}
		record(func(r *Report) {
			r.Rendered++
			r.Unresolved += unresolved
		})

	case ActionCopy:
		b.progress("Copying asset: %s -> %s\n", src, dst)
		if err := copyFile(src, dst); err != nil {
			b.logger.Error("Failed to copy asset", logfields.Source(src), logfields.Error(err))
			record(func(r *Report) { r.Failed++ })
			return
		}
		record(func(r *Report) { r.Copied++ })
	}
}

func (b *Builder) progress(format string, args ...any) {
	b.outMu.Lock()
	defer b.outMu.Unlock()
	fmt.Fprintf(b.out, format, args...)
}

func (b *Builder) renderPage(renderer *render.Renderer, id wiki.PageID, src, dst string) (int, error) {
	content, err := os.ReadFile(src)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	page, err := renderer.Render(id, content)
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(dst, page.HTML, 0644); err != nil {
		return 0, err
	}
	return len(page.Unresolved), nil
}

// writeSitemap regenerates sitemap.xml and reports whether it changed. The
// file is left untouched when its content is the same.
func (b *Builder) writeSitemap(actions []Action) (bool, error) {
	var pages []utils.SitemapPage
	for _, a := range actions {
		if a.Target == sitemapFile && a.Page == "" && a.Reason != reasonConflict {
			b.logger.Warn("Pages tree provides its own sitemap, not generating one")
			return false, nil
		}
		if a.Page == "" {
			continue
		}
		info, err := os.Stat(filepath.Join(b.site.PagesDir, filepath.FromSlash(a.Source)))
		if err != nil {
			continue
		}
		pages = append(pages, utils.SitemapPage{Location: a.Target, ModTime: info.ModTime()})
	}

	content, err := utils.GenerateSitemapContent(b.site.Origin, pages)
	if err != nil {
		return false, errors.WithStack(err)
	}
	path := filepath.Join(b.site.PublicDir, sitemapFile)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	return true, writeFileAtomic(path, content, 0644)
}

func pageStrings(ids []wiki.PageID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
