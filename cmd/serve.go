package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tmattson/flix/internal/proxy"
	"github.com/tmattson/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the API relay and static file server.
//
// The relay forwards /api/* to the remote API with CORS headers for the
// configured browser origin, so a local frontend can call the API
// without cross-origin failures.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	proxyCfg := config.Proxy
	if port := cmd.Int("port"); port != 0 {
		proxyCfg.Port = port
	}
	if static := cmd.String("static"); static != "" {
		proxyCfg.StaticDir = static
	}

	server, err := proxy.NewServer(proxyCfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	r.writePlain("Listening on %s:%d, relaying /api to %s\n", proxyCfg.Host, proxyCfg.Port, proxyCfg.Target)
	if proxyCfg.StaticDir != "" {
		r.writePlain("Serving static files from %s\n", proxyCfg.StaticDir)
	}

	return server.ListenAndServe(ctx)
}
