package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ferryfs/ferry/internal/config"
	"github.com/ferryfs/ferry/internal/location"
	"github.com/ferryfs/ferry/ops"
)

func newRemoveCmd(cfg config.Config) *cobra.Command {
	var trash bool
	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Recursively delete files and directories",
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

			useTrash := trash
			if !cmd.Flags().Changed("trash") && cfg.Defaults.Trash != nil {
				useTrash = *cfg.Defaults.Trash
			}
			if useTrash {
				slog.Debug("moving to trash", "paths", paths)
				return b.Trash(ctx, paths)
			}
			return ops.RemoveAll(ctx, b, paths)
		},
	}
	cmd.Flags().BoolVar(&trash, "trash", false, "move to the trash instead of deleting")
	return cmd
}
