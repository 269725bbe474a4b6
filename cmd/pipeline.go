package cmd

import (
	"fmt"

	"discover/config"
	"discover/db"
	"discover/featured"
	"discover/listmodel"
	"discover/resources"
	"discover/source"

	log "github.com/sirupsen/logrus"
)

type pipeline struct {
	reader    *db.Reader
	lookup    resources.Lookup
	model     *listmodel.Model
	refresher *featured.Refresher
}

// newPipeline migrates and opens the catalog and wires the refresher.
// Resources from the config file back up the SQLite catalog.
func newPipeline(cfg *config.TomlConfig) (*pipeline, error) {
	if err := db.Migrate(cfg.Catalog.Database); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}

	reader, err := db.NewReader(cfg.Catalog.Database)
	if err != nil {
		return nil, err
	}

	configured := resources.NewCatalog(cfg.Resources...)
	log.WithFields(log.Fields{
		"database":   cfg.Catalog.Database,
		"configured": configured.Len(),
	}).Info("Opened resource catalog")

	lookup := resources.Chain{reader, configured}
	model := listmodel.New()

	return &pipeline{
		reader: reader,
		lookup: lookup,
		model:  model,
		refresher: &featured.Refresher{
			Loader:   source.New(cfg.Feed),
			Enricher: featured.NewEnricher(lookup, log.StandardLogger()),
			Model:    model,
		},
	}, nil
}

func (p *pipeline) Close() error {
	return p.reader.Close()
}
