package config

// config/yaml.go

// Site is the build configuration. Every field is optional in site.yaml;
// relative directories are resolved against the site root.
type Site struct {
	PagesDir       string   `yaml:"pages_dir"`
	PublicDir      string   `yaml:"public_dir"`
	Template       string   `yaml:"template"`
	WebsiteName    string   `yaml:"website_name"`
	MarkdownExts   []string `yaml:"markdown_extensions"`
	HighlightStyle string   `yaml:"highlight_style"`
	Origin         string   `yaml:"origin"`
	Workers        int      `yaml:"workers"`
}
