package listmodel_test

import (
	"testing"

	"discover/listmodel"
	"discover/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelAccessors(t *testing.T) {
	m := listmodel.New(models.Row{PackageName: "org.kde.foo"})
	require.Equal(t, 1, m.Count())

	m.Append(models.Row{PackageName: "org.kde.bar", Image: models.StringPtr("http://y/img.png")})
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, "org.kde.bar", m.Get(1).PackageName)

	m.Set(0, models.Row{PackageName: "org.kde.foo", Text: "Foo"})
	assert.Equal(t, "Foo", m.Get(0).Text)
	assert.Equal(t, 2, m.Count())

	m.Replace(nil)
	assert.Equal(t, 0, m.Count())
	assert.Empty(t, m.Rows())
}

func TestModelRowsAreCopies(t *testing.T) {
	image := "http://x/shot.png"
	m := listmodel.New(models.Row{PackageName: "org.kde.foo", Image: &image})

	image = "changed"
	row := m.Get(0)
	require.True(t, row.HasImage())
	assert.Equal(t, "http://x/shot.png", *row.Image)

	*row.Image = "changed again"
	assert.Equal(t, "http://x/shot.png", *m.Rows()[0].Image)
}

func TestModelGetOutOfRange(t *testing.T) {
	m := listmodel.New()
	assert.Panics(t, func() { m.Get(0) })
}
