package query

import (
	"strings"

	"github.com/huandu/go-sqlbuilder"
)

// FilterStrategy adds WHERE conditions to a catalog query
type FilterStrategy interface {
	// ApplyFilter adds filter conditions to the query builder
	ApplyFilter(sb *sqlbuilder.SelectBuilder)
}

// PackagePrefix keeps resources whose package name starts with Prefix
type PackagePrefix struct {
	Prefix string
}

func (f *PackagePrefix) ApplyFilter(sb *sqlbuilder.SelectBuilder) {
	if f.Prefix == "" {
		return
	}
	sb.Where(sb.Like("package_name", escapeLike(f.Prefix)+"%") + ` ESCAPE '\'`)
}

// NameContains keeps resources whose display name contains Text, ignoring case
type NameContains struct {
	Text string
}

func (f *NameContains) ApplyFilter(sb *sqlbuilder.SelectBuilder) {
	if strings.TrimSpace(f.Text) == "" {
		return
	}
	sb.Where(sb.Like("LOWER(name)", "%"+escapeLike(strings.ToLower(f.Text))+"%") + ` ESCAPE '\'`)
}

// HasScreenshot keeps resources that carry a screenshot URL
type HasScreenshot struct{}

func (f *HasScreenshot) ApplyFilter(sb *sqlbuilder.SelectBuilder) {
	sb.Where(sb.NotEqual("screenshot_url", ""))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ FilterStrategy = (*PackagePrefix)(nil)
var _ FilterStrategy = (*NameContains)(nil)
var _ FilterStrategy = (*HasScreenshot)(nil)
