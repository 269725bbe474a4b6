package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"discover/models"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	log "github.com/sirupsen/logrus"
)

type Writer struct {
	db  *sql.DB
	now func() time.Time
}

func NewWriter(database string) (*Writer, error) {
	db, err := connection(database, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return &Writer{db: db, now: time.Now}, nil
}

func (writer *Writer) Close() error {
	return writer.db.Close()
}

// PutResources inserts or replaces resources in a single transaction
func (writer *Writer) PutResources(ctx context.Context, list ...models.Resource) error {
	if len(list) == 0 {
		return nil
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.ReplaceInto("resources").Cols("package_name", "name", "icon", "comment", "screenshot_url", "updated_at")
	updatedAt := writer.now().Unix()
	for _, res := range list {
		ib.Values(res.PackageName, res.Name, res.Icon, res.Comment, res.ScreenshotURL, updatedAt)
	}
	query, args := ib.BuildWithFlavor(sqlbuilder.SQLite)

	tx, err := writer.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert error: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit error: %w", err)
	}

	log.WithField("count", len(list)).Info("Stored resources")
	return nil
}

// DeleteResource removes the resource for name. Deleting a missing resource is not an error.
func (writer *Writer) DeleteResource(ctx context.Context, name string) error {
	del := sqlbuilder.NewDeleteBuilder()
	del.DeleteFrom("resources").Where(del.Equal("package_name", name))
	query, args := del.BuildWithFlavor(sqlbuilder.SQLite)

	log.WithField("packageName", name).Info("Deleting resource")
	if _, err := writer.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}
