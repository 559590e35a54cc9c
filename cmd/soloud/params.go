// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/soloud"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List the parameters of every filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bass, err := soloud.NewBassboostFilter()
			if err != nil {
				return err
			}
			defer bass.Close()
			echo, err := soloud.NewEchoFilter()
			if err != nil {
				return err
			}
			defer echo.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILTER\tINDEX\tNAME\tTYPE\tMIN\tMAX")
			for _, f := range []struct {
				name   string
				filter soloud.Filter
			}{
				{"bassboost", bass},
				{"echo", echo},
			} {
				for _, p := range soloud.Params(f.filter) {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%g\t%g\n", f.name, p.Index, p.Name, p.Type, p.Min, p.Max)
				}
			}
			return tw.Flush()
		},
	}
}
