package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferryfs/ferry/internal/config"
	"github.com/ferryfs/ferry/internal/location"
	"github.com/ferryfs/ferry/internal/ui"
	"github.com/ferryfs/ferry/ops"
)

func newSizeCmd(cfg config.Config) *cobra.Command {
	var bytesOnly bool
	cmd := &cobra.Command{
		Use:   "du <path>...",
		Short: "Report the total size of files and directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			locs := make([]location.Location, 0, len(args))
			for _, arg := range args {
				locs = append(locs, location.Parse(arg))
			}
			for _, loc := range locs[1:] {
				if !sameEndpoint(loc, locs[0]) {
					return errors.New("all paths must be on the same host")
				}
			}

			b, closeBackend, err := backendFor(ctx, locs[0], cfg)
			if err != nil {
				return err
			}
			defer closeBackend()

			paths := make([]string, len(locs))
			for i, loc := range locs {
				paths[i] = loc.Path
			}

			total, err := ops.TotalSize(ctx, b, paths)
			if err != nil {
				return err
			}
			if bytesOnly {
				fmt.Fprintf(os.Stdout, "%d\n", total)
				return nil
			}
			fmt.Fprintf(os.Stdout, "%s\n", ui.FormatBytes(total))
			return nil
		},
	}
	cmd.Flags().BoolVar(&bytesOnly, "bytes", false, "print the raw byte count")
	return cmd
}
