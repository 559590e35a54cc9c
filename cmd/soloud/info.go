// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/soloud"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Print the duration of audio files",
		Long: `Load each file through a streaming source and print its duration.
The first failure stops the command; the exit status tells its class
(3 io, 4 encoding, 5 engine, 6 unknown).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := soloud.NewWavStream()
			if err != nil {
				return err
			}
			defer stream.Close()

			for _, path := range args {
				if err := stream.Load(path); err != nil {
					a.log.Debug("load failed", "path", path, "err", err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.3fs\n", path, stream.Length())
			}
			return nil
		},
	}
}
