// Package featured fills the featured applications list model from the
// featured feed and the resource catalog.
package featured

import (
	"discover/listmodel"
	"discover/metrics"
	"discover/models"
	"discover/resources"

	log "github.com/sirupsen/logrus"
)

// Placeholders used for rows imported straight from the feed
const (
	FeedColor          = "red"
	PlaceholderIcon    = "kde"
	PlaceholderComment = "&nbsp;"
)

// Enricher fills display fields of list rows from a resource lookup
type Enricher struct {
	Lookup resources.Lookup
	Logger log.FieldLogger
}

func NewEnricher(lookup resources.Lookup, logger log.FieldLogger) *Enricher {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Enricher{Lookup: lookup, Logger: logger}
}

// Enrich walks the model in index order. Rows whose package has no resource
// are logged and left untouched. Found rows get name, icon and comment from
// the resource, and its screenshot when they have no image yet.
func (e *Enricher) Enrich(model listmodel.ListModel) {
	for row := 0; row < model.Count(); row++ {
		data := model.Get(row)

		appl, ok := e.Lookup.ResourceByPackageName(data.PackageName)
		if !ok {
			metrics.MissingResources.Inc()
			e.Logger.WithFields(log.Fields{
				"packageName": data.PackageName,
				"row":         row,
			}).Warn("application not found")
			continue
		}

		if !data.HasImage() {
			data.Image = models.StringPtr(appl.ScreenshotURL)
		}
		data.Text = appl.Name
		data.Icon = appl.Icon
		data.Comment = appl.Comment

		model.Set(row, data)
		metrics.EnrichedRows.Inc()
	}
}

// InitFeatured enriches every row of model using lookup, reporting misses on logger
func InitFeatured(model listmodel.ListModel, lookup resources.Lookup, logger log.FieldLogger) {
	NewEnricher(lookup, logger).Enrich(model)
}

// GetFeatured appends one row per feed entry in feed order. A nil feed is a no-op.
func GetFeatured(model listmodel.ListModel, feed *models.Feed) {
	if feed == nil {
		return
	}

	for _, packageName := range feed.Keys() {
		entry, _ := feed.Get(packageName)
		var image *string
		if entry.Image != nil {
			image = models.StringPtr(*entry.Image)
		}
		model.Append(models.Row{
			Text:        entry.Package,
			Color:       FeedColor,
			Image:       image,
			Icon:        PlaceholderIcon,
			Comment:     PlaceholderComment,
			PackageName: entry.Package,
		})
		metrics.ImportedRows.Inc()
	}
}
