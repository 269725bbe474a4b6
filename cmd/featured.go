package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func featuredCmd() *cli.Command {
	return &cli.Command{
		Name:  "featured",
		Usage: "Print the featured applications list",
		Description: `Reads the featured feed once, fills it in from the catalog and
prints every row as a JSON object on a single line. Use a tool like jq to
process the output.

Prints all log messages to stderr.`,
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			feedFlag(),
		},
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.refresher.Refresh(ctx.Context); err != nil {
				return err
			}

			out := json.NewEncoder(ctx.App.Writer)
			for _, row := range p.model.Rows() {
				if err := out.Encode(row); err != nil {
					return fmt.Errorf("error writing row: %w", err)
				}
			}
			return nil
		},
	}
}
