package cmd

import (
	"discover/config"

	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "discover-featured",
		Usage: "Serve the featured applications list of the software store",
		Description: `Builds the featured applications list shown on the store's
		front page.

		The featured feed maps package names to an image. Every entry is
		turned into a list row and then filled in with the name, icon and
		comment of the matching resource from the catalog. Resources missing
		from the catalog are logged and keep their placeholder values.

		Flags can generally be set via environment variables, e.g.:

		--database => DISCOVER_DATABASE=catalog.db
		--port => DISCOVER_PORT=3000
		`,
		Commands: []*cli.Command{
			serveCmd(),
			featuredCmd(),
			migrateCmd(),
			rollbackCmd(),
			catalogCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a TOML configuration file",
		EnvVars: []string{"DISCOVER_CONFIG"},
	}
}

func databaseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "database",
		Aliases: []string{"d"},
		Value:   config.DefaultDatabase,
		Usage:   "SQLite catalog database file location",
		EnvVars: []string{"DISCOVER_DATABASE"},
	}
}

func feedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "feed",
		Aliases: []string{"f"},
		Value:   config.DefaultFeedSource,
		Usage:   "Featured feed location, a URL or a file path ($VARS are expanded)",
		EnvVars: []string{"DISCOVER_FEED"},
	}
}

// loadConfig reads the config file if one was given and lets explicitly set
// flags override it.
func loadConfig(ctx *cli.Context) (*config.TomlConfig, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if ctx.IsSet("database") || cfg.Catalog.Database == "" {
		cfg.Catalog.Database = ctx.String("database")
	}
	if ctx.IsSet("feed") || cfg.Feed.Source == "" {
		cfg.Feed.Source = ctx.String("feed")
	}
	if ctx.IsSet("port") {
		cfg.Server.Port = ctx.Int("port")
	}
	if ctx.IsSet("allow-origins") {
		cfg.Server.AllowOrigins = ctx.String("allow-origins")
	}

	return cfg, nil
}
