package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discover/config"
	"discover/server"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the featured applications list",
		Description: `Starts the HTTP server.

		Reads the featured feed, fills it in from the catalog and serves the
		result as JSON. The list is rebuilt on POST /featured/refresh and,
		when --refresh-interval is set, periodically. Clients can follow
		rebuilds through server-sent events on /featured/sse.`,
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			feedFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "Port to listen on",
				EnvVars: []string{"DISCOVER_PORT"},
			},
			&cli.StringFlag{
				Name:    "allow-origins",
				Usage:   "Comma separated origins allowed by CORS",
				EnvVars: []string{"DISCOVER_ALLOW_ORIGINS"},
			},
			&cli.DurationFlag{
				Name:    "refresh-interval",
				Usage:   "Rebuild the featured list this often, 0 disables",
				EnvVars: []string{"DISCOVER_REFRESH_INTERVAL"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			bc := server.NewBroadcaster()
			p.refresher.Notify = bc.BroadcastRefresh

			runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			// A failed first refresh leaves an empty list; the server still starts
			if err := p.refresher.Refresh(runCtx); err != nil {
				log.WithFields(log.Fields{
					"error": err,
				}).Error("Initial refresh failed")
			}

			if interval := ctx.Duration("refresh-interval"); interval > 0 {
				go refreshLoop(runCtx, p, interval)
			}

			app := server.Server(&server.ServerConfig{
				Model:        p.model,
				Lookup:       p.lookup,
				Refresher:    p.refresher,
				Broadcaster:  bc,
				AllowOrigins: cfg.Server.AllowOrigins,
			})

			go func() {
				<-runCtx.Done()
				log.Info("Gracefully shutting down...")
				bc.Shutdown()
				if err := app.ShutdownWithTimeout(60 * time.Second); err != nil {
					log.Errorf("Error shutting down server: %v", err)
				}
			}()

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			log.WithField("addr", addr).Info("Starting server")
			return app.Listen(addr)
		},
	}
}

func refreshLoop(ctx context.Context, p *pipeline, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresher.Refresh(ctx); err != nil {
				log.WithFields(log.Fields{
					"error": err,
				}).Error("Periodic refresh failed")
			}
		}
	}
}
