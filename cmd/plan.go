package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/go-wiki-site/site"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a build would render, copy and skip without writing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSite(cmd)
		if err != nil {
			return err
		}

		actions, _, err := site.NewBuilder(s, nil, newLogger()).Prepare(force)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, a := range actions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Kind, a.Source, a.Target, a.Reason)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d to render, %d to copy, %d to skip\n",
			site.Count(actions, site.ActionRender),
			site.Count(actions, site.ActionCopy),
			site.Count(actions, site.ActionSkip))
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVarP(&force, "force", "f", false, "Plan as if every output were stale")
	rootCmd.AddCommand(planCmd)
}
