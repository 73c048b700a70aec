// Package serve implements the lineage serve command
package serve

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/server"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and static site",
		Long: `Run the HTTP server. It serves the static site, the JSON API under /api
and a websocket event stream at /api/events. Requests pick their user with
the X-User-ID header; requests without one use default_user from the config.

Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr and PORT)")
	cmd.Flags().String("static-dir", "", "Directory of static files (overrides server.static_dir)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter := &cli.OutputFormatter{}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	cfg := *cliInstance.Config
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dir, _ := cmd.Flags().GetString("static-dir"); dir != "" {
		cfg.Server.StaticDir = dir
	}

	fmt.Printf("Serving on http://localhost%s (static files from %s)\n", displayAddr(cfg.Server.Addr), cfg.Server.StaticDir)

	srv := server.New(&cfg, cliInstance.App, slog.Default())
	if err := srv.Run(ctx); err != nil {
		return formatter.Fail(err)
	}
	return nil
}

// displayAddr drops the host from host:port so the printed URL stays clickable
func displayAddr(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ":" + addr
}
