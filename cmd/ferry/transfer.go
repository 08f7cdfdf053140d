package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferryfs/ferry"
	"github.com/ferryfs/ferry/internal/config"
	"github.com/ferryfs/ferry/internal/location"
	"github.com/ferryfs/ferry/internal/ui"
	"github.com/ferryfs/ferry/ops"
)

type transferFlags struct {
	overwrite    bool
	skipExisting bool
}

func newCopyCmd(cfg config.Config, quiet *bool) *cobra.Command {
	var flags transferFlags
	cmd := &cobra.Command{
		Use:   "cp <source>... <destination>",
		Short: "Recursively copy files and directories",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd, cfg, args, false, flags, *quiet)
		},
	}
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "overwrite existing destination entries")
	cmd.Flags().BoolVar(&flags.skipExisting, "skip-existing", false, "skip entries that already exist at the destination")
	return cmd
}

func newMoveCmd(cfg config.Config, quiet *bool) *cobra.Command {
	var flags transferFlags
	cmd := &cobra.Command{
		Use:   "mv <source>... <destination>",
		Short: "Recursively move files and directories",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd, cfg, args, true, flags, *quiet)
		},
	}
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "overwrite existing destination entries")
	cmd.Flags().BoolVar(&flags.skipExisting, "skip-existing", false, "skip entries that already exist at the destination")
	return cmd
}

func runTransfer(cmd *cobra.Command, cfg config.Config, args []string, move bool, flags transferFlags, quiet bool) error {
	ctx := cmd.Context()

	srcLocs := make([]location.Location, 0, len(args)-1)
	for _, arg := range args[:len(args)-1] {
		srcLocs = append(srcLocs, location.Parse(arg))
	}
	dstLoc := location.Parse(args[len(args)-1])

	// All sources ride one connection.
	for _, loc := range srcLocs[1:] {
		if !sameEndpoint(loc, srcLocs[0]) {
			return errors.New("all sources must be on the same host")
		}
	}

	src, closeSrc, err := backendFor(ctx, srcLocs[0], cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	var dst ferry.FSBackend
	same := sameEndpoint(srcLocs[0], dstLoc)
	if same {
		dst = src
	} else {
		var closeDst func()
		dst, closeDst, err = backendFor(ctx, dstLoc, cfg)
		if err != nil {
			return err
		}
		defer closeDst()
	}

	paths := make([]string, len(srcLocs))
	for i, loc := range srcLocs {
		paths[i] = loc.Path
	}

	handler := progressHandler(conflictPolicy(cfg, flags), quiet)
	if !quiet {
		defer fmt.Fprintln(os.Stderr)
	}

	switch {
	case same && move:
		return ops.MoveWithProgress(ctx, src, paths, dstLoc.Path, handler)
	case same:
		return ops.CopyWithProgress(ctx, src, paths, dstLoc.Path, handler)
	case move:
		return ops.MoveBetweenWithProgress(ctx, src, dst, paths, dstLoc.Path, handler)
	default:
		return ops.CopyBetweenWithProgress(ctx, src, dst, paths, dstLoc.Path, handler)
	}
}

// conflictPolicy resolves the effective destination-conflict policy from
// flags, then config, then the interactive default.
func conflictPolicy(cfg config.Config, flags transferFlags) string {
	switch {
	case flags.overwrite:
		return "overwrite"
	case flags.skipExisting:
		return "skip"
	case cfg.Defaults.OnConflict != nil:
		return *cfg.Defaults.OnConflict
	default:
		return "ask"
	}
}

// progressHandler adapts the CLI's conflict policy and progress line to the
// engine's notification protocol.
func progressHandler(policy string, quiet bool) ops.ProgressFunc {
	return func(p ops.TransitProgress) ops.TransitProgressResponse {
		switch p.State.Kind {
		case ops.TransitExists:
			switch policy {
			case "skip":
				return ops.Skip
			case "overwrite":
				return ops.Overwrite
			case "abort":
				return ops.ContinueOrAbort // re-raise as a fatal error
			default:
				switch ui.AskConflict(os.Stdin, os.Stderr, p.State.Conflict.Destination) {
				case ui.ChoiceSkip:
					return ops.Skip
				case ui.ChoiceOverwrite:
					return ops.Overwrite
				default:
					return ops.Abort
				}
			}
		case ops.TransitNormal:
			if !quiet {
				fmt.Fprintf(os.Stderr, "\r%s", ui.TransferLine(
					p.ProcessedBytes, p.TotalBytes, p.ProcessedFiles, p.TotalFiles,
				))
			}
			return ops.ContinueOrAbort
		default:
			return ops.ContinueOrAbort
		}
	}
}
