package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/go-wiki-site/config"
	"github.com/ZacxDev/go-wiki-site/site"
)

var (
	force   bool
	workers int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site into the public directory",
	RunE:  runBuild,
}

func init() {
	addBuildFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate every output, even when it is up to date")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Files processed in parallel (0 uses every CPU)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	s, err := loadSite(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printHeader(out, s)

	builder := site.NewBuilder(s, out, newLogger())
	report, err := builder.Run(context.Background(), force)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("-", 30))
	fmt.Fprintf(out, "Site generation complete: %s\n", report)
	fmt.Fprintf(out, "\nSite generation took %.4f seconds.\n", time.Since(start).Seconds())
	return nil
}

func printHeader(out io.Writer, s *config.Site) {
	fmt.Fprintln(out, "Wiki Static Site Generator")
	fmt.Fprintf(out, "Source (Pages) Directory: %s\n", s.PagesDir)
	fmt.Fprintf(out, "Output (Public) Directory: %s\n", s.PublicDir)
	fmt.Fprintf(out, "Using Template: %s\n", s.Template)
	fmt.Fprintln(out, strings.Repeat("-", 30))
}
