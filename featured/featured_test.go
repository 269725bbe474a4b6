package featured_test

import (
	"testing"

	"discover/featured"
	"discover/listmodel"
	"discover/models"
	"discover/resources"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingModel counts Set calls on top of the in-memory model
type recordingModel struct {
	*listmodel.Model
	sets []int
}

func (m *recordingModel) Set(index int, row models.Row) {
	m.sets = append(m.sets, index)
	m.Model.Set(index, row)
}

func fooResource() models.Resource {
	return models.Resource{
		PackageName:   "org.kde.foo",
		Name:          "Foo",
		Icon:          "foo-icon",
		Comment:       "A foo app",
		ScreenshotURL: "http://x/shot.png",
	}
}

func TestInitFeaturedFillsMissingImage(t *testing.T) {
	logger, hook := test.NewNullLogger()
	model := listmodel.New(models.Row{PackageName: "org.kde.foo"})

	featured.InitFeatured(model, resources.NewCatalog(fooResource()), logger)

	assert.Equal(t, models.Row{
		PackageName: "org.kde.foo",
		Image:       models.StringPtr("http://x/shot.png"),
		Text:        "Foo",
		Icon:        "foo-icon",
		Comment:     "A foo app",
	}, model.Get(0))
	assert.Empty(t, hook.AllEntries())
}

func TestInitFeaturedKeepsExistingImage(t *testing.T) {
	logger, _ := test.NewNullLogger()
	model := listmodel.New(models.Row{PackageName: "org.kde.foo", Image: models.StringPtr("http://y/own.png")})

	featured.InitFeatured(model, resources.NewCatalog(fooResource()), logger)

	row := model.Get(0)
	require.True(t, row.HasImage())
	assert.Equal(t, "http://y/own.png", *row.Image)
	assert.Equal(t, "Foo", row.Text)
	assert.Equal(t, "foo-icon", row.Icon)
	assert.Equal(t, "A foo app", row.Comment)
}

func TestInitFeaturedEmptyImageIsPresent(t *testing.T) {
	logger, _ := test.NewNullLogger()
	model := listmodel.New(models.Row{PackageName: "org.kde.foo", Image: models.StringPtr("")})

	featured.InitFeatured(model, resources.NewCatalog(fooResource()), logger)

	assert.Equal(t, "", *model.Get(0).Image)
}

func TestInitFeaturedSkipsMissingResources(t *testing.T) {
	logger, hook := test.NewNullLogger()
	untouched := models.Row{PackageName: "org.kde.missing", Text: "keep", Color: "red"}
	model := &recordingModel{Model: listmodel.New(
		untouched,
		models.Row{PackageName: "org.kde.foo"},
	)}

	featured.InitFeatured(model, resources.NewCatalog(fooResource()), logger)

	assert.Equal(t, untouched, model.Get(0))
	assert.Equal(t, "Foo", model.Get(1).Text)
	assert.Equal(t, []int{1}, model.sets)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, "application not found", entry.Message)
	assert.Equal(t, "org.kde.missing", entry.Data["packageName"])
}

func TestInitFeaturedOneDiagnosticPerMiss(t *testing.T) {
	logger, hook := test.NewNullLogger()
	model := listmodel.New(
		models.Row{PackageName: "a"},
		models.Row{PackageName: "b"},
		models.Row{PackageName: "c"},
	)

	featured.InitFeatured(model, resources.NewCatalog(), logger)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, entries[i].Data["packageName"])
	}
}

func TestInitFeaturedEmptyModel(t *testing.T) {
	logger, hook := test.NewNullLogger()
	model := listmodel.New()

	featured.InitFeatured(model, resources.NewCatalog(fooResource()), logger)

	assert.Equal(t, 0, model.Count())
	assert.Empty(t, hook.AllEntries())
}

func TestGetFeatured(t *testing.T) {
	tests := []struct {
		name     string
		feed     func() *models.Feed
		expected []models.Row
	}{
		{
			name:     "absent feed",
			feed:     func() *models.Feed { return nil },
			expected: []models.Row{},
		},
		{
			name:     "empty feed",
			feed:     models.NewFeed,
			expected: []models.Row{},
		},
		{
			name: "single entry",
			feed: func() *models.Feed {
				f := models.NewFeed()
				f.Set("org.kde.bar", models.FeedEntry{Package: "org.kde.bar", Image: models.StringPtr("http://y/img.png")})
				return f
			},
			expected: []models.Row{{
				Text:        "org.kde.bar",
				Color:       "red",
				Image:       models.StringPtr("http://y/img.png"),
				Icon:        "kde",
				Comment:     "&nbsp;",
				PackageName: "org.kde.bar",
			}},
		},
		{
			name: "keeps feed order",
			feed: func() *models.Feed {
				f := models.NewFeed()
				f.Set("z", models.FeedEntry{Package: "org.kde.z", Image: models.StringPtr("z.png")})
				f.Set("a", models.FeedEntry{Package: "org.kde.a", Image: models.StringPtr("a.png")})
				return f
			},
			expected: []models.Row{
				{Text: "org.kde.z", Color: "red", Image: models.StringPtr("z.png"), Icon: "kde", Comment: "&nbsp;", PackageName: "org.kde.z"},
				{Text: "org.kde.a", Color: "red", Image: models.StringPtr("a.png"), Icon: "kde", Comment: "&nbsp;", PackageName: "org.kde.a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := listmodel.New()
			featured.GetFeatured(model, tt.feed())
			assert.Equal(t, len(tt.expected), model.Count())
			for i, row := range tt.expected {
				assert.Equal(t, row, model.Get(i))
			}
		})
	}
}

func TestGetFeaturedAppendsAfterExistingRows(t *testing.T) {
	model := listmodel.New(models.Row{PackageName: "existing"})
	feed := models.NewFeed()
	feed.Set("org.kde.bar", models.FeedEntry{Package: "org.kde.bar"})

	featured.GetFeatured(model, feed)

	require.Equal(t, 2, model.Count())
	assert.Equal(t, "existing", model.Get(0).PackageName)
	assert.Equal(t, "org.kde.bar", model.Get(1).PackageName)
}

func TestImportWithoutImageThenEnrich(t *testing.T) {
	logger, _ := test.NewNullLogger()
	feed, err := models.ParseFeed([]byte(`{"org.kde.foo": {"package": "org.kde.foo"}}`))
	require.NoError(t, err)

	model := listmodel.New()
	featured.GetFeatured(model, feed)
	require.False(t, model.Get(0).HasImage())

	featured.InitFeatured(model, resources.NewCatalog(fooResource()), logger)
	assert.Equal(t, "http://x/shot.png", *model.Get(0).Image)
}

func TestImportThenEnrich(t *testing.T) {
	logger, hook := test.NewNullLogger()
	feed := models.NewFeed()
	feed.Set("org.kde.foo", models.FeedEntry{Package: "org.kde.foo", Image: models.StringPtr("http://feed/foo.png")})
	feed.Set("org.kde.gone", models.FeedEntry{Package: "org.kde.gone", Image: models.StringPtr("http://feed/gone.png")})

	model := listmodel.New()
	featured.GetFeatured(model, feed)
	featured.InitFeatured(model, resources.NewCatalog(fooResource()), logger)

	assert.Equal(t, models.Row{
		PackageName: "org.kde.foo",
		Image:       models.StringPtr("http://feed/foo.png"),
		Text:        "Foo",
		Icon:        "foo-icon",
		Comment:     "A foo app",
		Color:       "red",
	}, model.Get(0))
	assert.Equal(t, "kde", model.Get(1).Icon)
	assert.Len(t, hook.AllEntries(), 1)
}
