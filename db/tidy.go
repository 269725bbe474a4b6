package db

import (
	"context"
	"time"

	sb "github.com/huandu/go-sqlbuilder"
	log "github.com/sirupsen/logrus"
)

// Tidy removes resources that have not been written for longer than maxAge
func (writer *Writer) Tidy(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := writer.now().Add(-maxAge).Unix()
	deleteResources := sb.NewDeleteBuilder()
	deleteResources.DeleteFrom("resources").Where(deleteResources.LessThan("updated_at", cutoff))
	sql, args := deleteResources.BuildWithFlavor(sb.SQLite)

	log.WithFields(log.Fields{
		"sql":  sql,
		"args": args,
	}).Info("Tidying catalog")

	res, err := writer.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
