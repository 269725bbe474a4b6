package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"discover/config"
	"discover/db"
	"discover/models"
	"discover/query"

	"github.com/cqroot/prompt"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Manage the resource catalog",
		Subcommands: []*cli.Command{
			catalogImportCmd(),
			catalogAddCmd(),
			catalogListCmd(),
			catalogRemoveCmd(),
			catalogTidyCmd(),
		},
	}
}

// openWriter migrates the catalog and opens it for writing
func openWriter(ctx *cli.Context) (*db.Writer, error) {
	database := ctx.String("database")
	if err := db.Migrate(database); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return db.NewWriter(database)
}

func catalogImportCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import resources from a TOML file",
		ArgsUsage: "<file.toml>",
		Description: `Reads [[resources]] tables from the given TOML file and stores
them in the catalog, replacing resources with the same package name.`,
		Flags: []cli.Flag{
			databaseFlag(),
		},
		Action: func(ctx *cli.Context) error {
			path := ctx.Args().First()
			if path == "" {
				return errors.New("please specify a TOML file to import")
			}

			cfg, err := config.LoadConfig(path)
			if err != nil {
				return err
			}

			writer, err := openWriter(ctx)
			if err != nil {
				return err
			}
			defer writer.Close()

			if err := writer.PutResources(ctx.Context, cfg.Resources...); err != nil {
				return err
			}
			fmt.Fprintf(ctx.App.Writer, "Imported %d resources\n", len(cfg.Resources))
			return nil
		},
	}
}

func catalogAddCmd() *cli.Command {
	return &cli.Command{
		Name:        "add",
		Usage:       "Add a resource interactively",
		Description: `Prompts for the fields of a single resource and stores it in the catalog.`,
		Flags: []cli.Flag{
			databaseFlag(),
		},
		Action: func(ctx *cli.Context) error {
			var res models.Resource
			fields := []struct {
				question string
				value    *string
				def      string
			}{
				{"Package name:", &res.PackageName, "org.kde.example"},
				{"Name:", &res.Name, ""},
				{"Icon:", &res.Icon, ""},
				{"Comment:", &res.Comment, ""},
				{"Screenshot URL:", &res.ScreenshotURL, ""},
			}
			for _, field := range fields {
				answer, err := prompt.New().Ask(field.question).Input(field.def)
				if err != nil {
					return err
				}
				*field.value = strings.TrimSpace(answer)
			}

			if res.PackageName == "" {
				return errors.New("a package name is required")
			}

			writer, err := openWriter(ctx)
			if err != nil {
				return err
			}
			defer writer.Close()

			return writer.PutResources(ctx.Context, res)
		},
	}
}

func catalogListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print catalog resources as JSON lines",
		Flags: []cli.Flag{
			databaseFlag(),
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Only list package names starting with this prefix",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "Only list resources whose name contains this text",
			},
			&cli.BoolFlag{
				Name:  "with-screenshot",
				Usage: "Only list resources that have a screenshot",
			},
		},
		Action: func(ctx *cli.Context) error {
			database := ctx.String("database")
			if err := db.Migrate(database); err != nil {
				return err
			}
			reader, err := db.NewReader(database)
			if err != nil {
				return err
			}
			defer reader.Close()

			filters := []query.FilterStrategy{
				&query.PackagePrefix{Prefix: ctx.String("prefix")},
				&query.NameContains{Text: ctx.String("search")},
			}
			if ctx.Bool("with-screenshot") {
				filters = append(filters, &query.HasScreenshot{})
			}

			list, err := reader.List(ctx.Context, filters...)
			if err != nil {
				return err
			}

			out := json.NewEncoder(ctx.App.Writer)
			for _, res := range list {
				if err := out.Encode(res); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func catalogRemoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove resources from the catalog",
		ArgsUsage: "<package name>...",
		Flags: []cli.Flag{
			databaseFlag(),
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() == 0 {
				return errors.New("please specify at least one package name")
			}

			writer, err := openWriter(ctx)
			if err != nil {
				return err
			}
			defer writer.Close()

			for _, name := range ctx.Args().Slice() {
				if err := writer.DeleteResource(ctx.Context, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func catalogTidyCmd() *cli.Command {
	return &cli.Command{
		Name:  "tidy",
		Usage: "Remove stale resources",
		Description: `Removes resources that have not been imported or updated for
longer than --max-age. Keeps the catalog in line with the store's
current package set.`,
		Flags: []cli.Flag{
			databaseFlag(),
			&cli.DurationFlag{
				Name:  "max-age",
				Value: 90 * 24 * time.Hour,
				Usage: "Remove resources older than this",
			},
		},
		Action: func(ctx *cli.Context) error {
			writer, err := openWriter(ctx)
			if err != nil {
				return err
			}
			defer writer.Close()

			removed, err := writer.Tidy(ctx.Context, ctx.Duration("max-age"))
			if err != nil {
				return err
			}
			log.WithField("removed", removed).Info("Tidied catalog")
			return nil
		},
	}
}
