package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/variants/merge"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <classes...>",
		Short: "Merge utility classes, later conflicting classes win",
		Example: `  variants merge "px-2 py-1" "p-3"
  variants merge "bg-red-500 hover:bg-red-600 bg-blue-500" --conflicts`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: configured,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMerger()
			if err != nil {
				return err
			}
			if m == nil {
				m = merge.Default()
			}

			classes := strings.Join(args, " ")
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, m.Merge(classes))

			if conflicts, _ := cmd.Flags().GetBool("conflicts"); conflicts {
				for _, c := range m.Conflicts(classes) {
					fmt.Fprintf(w, "  %s overridden by %s\n", c.Class, c.Winner)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("conflicts", false, "List the classes that were dropped and what replaced them")
	return cmd
}
