// Command ferry copies, moves, inspects, and deletes file trees across
// local and remote filesystems (FTP, SFTP) through one engine.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ferryfs/ferry/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		verbose     bool
		quiet       bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:           "ferry",
		Short:         "Copy, move, and manage file trees across local, FTP, and SFTP filesystems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			if quiet {
				level = slog.LevelError
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "ferry %s\n", version)
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors, no progress output")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "path", config.Path(), "error", err)
		return 1
	}

	rootCmd.AddCommand(
		newCopyCmd(cfg, &quiet),
		newMoveCmd(cfg, &quiet),
		newRemoveCmd(cfg),
		newSizeCmd(cfg),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("ferry failed", "error", err)
		return 1
	}
	return 0
}
