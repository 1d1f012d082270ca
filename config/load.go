package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	PagesDirName     = "pages"
	PublicDirName    = "public"
	TemplateFileName = "page.html"
	ManifestFileName = "site.yaml"
	EnvFileName      = ".env"

	// WebsiteNameEnv overrides the configured site name.
	WebsiteNameEnv = "WEBSITE_NAME"
	// DefaultWebsiteName is used when no site name is configured anywhere.
	DefaultWebsiteName = "Wiki Site"
	DefaultStyle       = "github"
)

var (
	ErrPagesDirMissing = errors.New("pages directory not found")
	ErrTemplateMissing = errors.New("template file not found")
)

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Defaults returns the configuration used when site.yaml is absent.
func Defaults() Site {
	return Site{
		PagesDir:       PagesDirName,
		PublicDir:      PublicDirName,
		Template:       TemplateFileName,
		WebsiteName:    DefaultWebsiteName,
		MarkdownExts:   []string{".md"},
		HighlightStyle: DefaultStyle,
		Workers:        1,
	}
}

// Load reads site.yaml and .env from baseDir on top of the defaults. The
// site name comes from, in order: the environment, .env, site.yaml, the
// default. Directories in the result are absolute.
func Load(baseDir string, lookup LookupEnv) (*Site, error) {
	site := Defaults()

	data, err := os.ReadFile(filepath.Join(baseDir, ManifestFileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &site); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", ManifestFileName)
		}
	case !os.IsNotExist(err):
		return nil, errors.WithStack(err)
	}

	dotenv, err := godotenv.Read(filepath.Join(baseDir, EnvFileName))
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrapf(err, "reading %s", EnvFileName)
	}
	if name, ok := dotenv[WebsiteNameEnv]; ok && name != "" {
		site.WebsiteName = name
	}
	if lookup != nil {
		if name, ok := lookup(WebsiteNameEnv); ok && name != "" {
			site.WebsiteName = name
		}
	}

	site.normalize(baseDir)
	return &site, nil
}

func (s *Site) normalize(baseDir string) {
	defaults := Defaults()
	if s.PagesDir == "" {
		s.PagesDir = defaults.PagesDir
	}
	if s.PublicDir == "" {
		s.PublicDir = defaults.PublicDir
	}
	if s.Template == "" {
		s.Template = defaults.Template
	}
	if s.WebsiteName == "" {
		s.WebsiteName = defaults.WebsiteName
	}
	if s.HighlightStyle == "" {
		s.HighlightStyle = defaults.HighlightStyle
	}
	if s.Workers < 1 {
		s.Workers = 1
	}

	s.PagesDir = resolve(baseDir, s.PagesDir)
	s.PublicDir = resolve(baseDir, s.PublicDir)
	s.Template = resolve(baseDir, s.Template)

	exts := make([]string, 0, len(s.MarkdownExts))
	for _, ext := range s.MarkdownExts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = defaults.MarkdownExts
	}
	s.MarkdownExts = exts
	s.Origin = strings.TrimSuffix(s.Origin, "/")
}

// Validate checks the inputs a build cannot run without.
func (s *Site) Validate() error {
	info, err := os.Stat(s.PagesDir)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(ErrPagesDirMissing, "create a %q directory and add your content", s.PagesDir)
	}
	info, err = os.Stat(s.Template)
	if err != nil || info.IsDir() {
		return errors.Wrapf(ErrTemplateMissing, "expected the page template at %q", s.Template)
	}
	return nil
}

// BaseDir is the directory holding the running executable; the pages
// directory and template are discovered relative to it.
func BaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.WithStack(err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return filepath.Dir(exe), nil
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
