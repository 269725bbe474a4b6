package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"discover/models"
	"discover/query"
	"discover/resources"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no resource exists for a package name
var ErrNotFound = errors.New("resource not found")

var resourceColumns = []string{"package_name", "name", "icon", "comment", "screenshot_url"}

// Reader answers catalog lookups from the SQLite database
type Reader struct {
	db *sql.DB
}

func NewReader(database string) (*Reader, error) {
	db, err := connection(database, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return &Reader{db: db}, nil
}

func (reader *Reader) Close() error {
	return reader.db.Close()
}

// Get returns the resource for name, or ErrNotFound
func (reader *Reader) Get(ctx context.Context, name string) (models.Resource, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(resourceColumns...).From("resources").Where(sb.Equal("package_name", name))
	stmt, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	var res models.Resource
	err := reader.db.QueryRowContext(ctx, stmt, args...).Scan(
		&res.PackageName, &res.Name, &res.Icon, &res.Comment, &res.ScreenshotURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, ErrNotFound
	}
	if err != nil {
		return models.Resource{}, fmt.Errorf("query error: %w", err)
	}
	return res, nil
}

// ResourceByPackageName implements resources.Lookup. Query errors are logged
// and reported as a miss.
func (reader *Reader) ResourceByPackageName(name string) (models.Resource, bool) {
	res, err := reader.Get(context.Background(), name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithFields(log.Fields{
				"packageName": name,
				"error":       err,
			}).Error("Error looking up resource")
		}
		return models.Resource{}, false
	}
	return res, true
}

// List returns the resources matching all filters, ordered by package name
func (reader *Reader) List(ctx context.Context, filters ...query.FilterStrategy) ([]models.Resource, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(resourceColumns...).From("resources")
	for _, filter := range filters {
		filter.ApplyFilter(sb)
	}
	sb.OrderBy("package_name").Asc()
	stmt, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	rows, err := reader.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var list []models.Resource
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(&res.PackageName, &res.Name, &res.Icon, &res.Comment, &res.ScreenshotURL); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

var _ resources.Lookup = (*Reader)(nil)
