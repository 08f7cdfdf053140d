package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ferryfs/ferry"
	"github.com/ferryfs/ferry/backend/ftpfs"
	"github.com/ferryfs/ferry/backend/localfs"
	"github.com/ferryfs/ferry/backend/sftpfs"
	"github.com/ferryfs/ferry/internal/config"
	"github.com/ferryfs/ferry/internal/location"
	"github.com/ferryfs/ferry/internal/ui"
)

// backendFor dials the backend a location needs. The returned cleanup
// disconnects it; for the local backend it is a no-op.
func backendFor(ctx context.Context, loc location.Location, cfg config.Config) (ferry.FSBackend, func(), error) {
	switch loc.Scheme {
	case location.SchemeLocal:
		return localfs.New(), func() {}, nil

	case location.SchemeSFTP:
		opts := sftpfs.DialOpts{User: loc.User, Port: loc.Port}
		if opts.Port == 0 && cfg.SSH.Port != nil {
			opts.Port = *cfg.SSH.Port
		}
		if cfg.SSH.KeyFile != nil {
			opts.KeyFile = *cfg.SSH.KeyFile
		}
		b, err := sftpfs.Connect(ctx, loc.Host, opts)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("sftp connected", "host", loc.Host, "user", loc.User)
		return b, func() { _ = b.Disconnect(context.Background()) }, nil

	case location.SchemeFTP:
		opts := ftpfs.Opts{User: loc.User}
		if opts.User == "" && cfg.FTP.User != nil {
			opts.User = *cfg.FTP.User
		}
		timeout, err := cfg.FTP.DialTimeout()
		if err != nil {
			return nil, nil, err
		}
		opts.Timeout = timeout

		if opts.User != "" && opts.User != "anonymous" {
			pw, err := ui.AskPassword(fmt.Sprintf("Password for %s@%s: ", opts.User, loc.Host))
			if err != nil {
				return nil, nil, err
			}
			opts.Password = pw
		}

		b, err := ftpfs.Connect(ctx, loc.Addr(), opts)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("ftp connected", "addr", loc.Addr(), "user", opts.User)
		return b, func() { _ = b.Disconnect(context.Background()) }, nil
	}

	return nil, nil, fmt.Errorf("unknown scheme %q", loc.Scheme)
}

// sameEndpoint reports whether two locations resolve to the same backend
// connection, so a transfer can use the cheaper single-backend path.
func sameEndpoint(a, b location.Location) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host && a.User == b.User && a.Port == b.Port
}
