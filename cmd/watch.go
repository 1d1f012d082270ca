package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/go-wiki-site/logfields"
	"github.com/ZacxDev/go-wiki-site/site"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build the site, then rebuild whenever pages or the template change",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSite(cmd)
		if err != nil {
			return err
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		logger := newLogger()
		printHeader(out, s)

		builder := site.NewBuilder(s, out, logger)
		report, err := builder.Run(ctx, force)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Initial build: %s (%s)\n", report, report.Duration.Round(time.Millisecond))

		watcher, err := site.NewWatcher(builder, debounce)
		if err != nil {
			return err
		}
		watcher.OnBuild = func(report *site.Report, err error) {
			if err != nil {
				logger.Error("Rebuild failed", logfields.Error(err))
				return
			}
			fmt.Fprintf(out, "Rebuilt: %s (%s)\n", report, report.Duration.Round(time.Millisecond))
		}
		return watcher.Run(ctx)
	},
}

func init() {
	addBuildFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", 300*time.Millisecond, "Quiet period before a rebuild starts")
	rootCmd.AddCommand(watchCmd)
}
