package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/go-wiki-site/config"
)

var (
	rootDir  string
	siteName string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "wikisite",
	Short: "wikisite - build a cross-linked static site from Markdown pages",
	Long: `wikisite renders every Markdown page under pages/ into public/, copies all
other files unchanged, and turns [[Page Name]] references into relative links.

Without a subcommand it runs a build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Site directory holding pages/, public/ and page.html (default: the executable's directory)")
	rootCmd.PersistentFlags().StringVar(&siteName, "site-name", "", "Site name passed to the template (overrides "+config.WebsiteNameEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics")
	addBuildFlags(rootCmd)
}

// loadSite resolves the configuration for the site root. The process
// environment is only read here; everything downstream gets explicit values.
func loadSite(cmd *cobra.Command) (*config.Site, error) {
	base := rootDir
	if base == "" {
		var err error
		base, err = config.BaseDir()
		if err != nil {
			return nil, err
		}
	}

	site, err := config.Load(base, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if siteName != "" {
		site.WebsiteName = siteName
	}
	if cmd.Flags().Changed("workers") {
		site.Workers = workers
		if workers < 1 {
			site.Workers = runtime.GOMAXPROCS(0)
		}
	}
	return site, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
