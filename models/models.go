package models

// Row is a single entry of the featured list model. Field names match the
// roles the list view binds to.
type Row struct {
	PackageName string  `json:"packageName"`
	Image       *string `json:"image"`
	Text        string  `json:"text,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Comment     string  `json:"comment,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// HasImage reports whether the row already carries an image
func (r Row) HasImage() bool {
	return r.Image != nil
}

// Resource is a catalog entry describing an installable application
type Resource struct {
	PackageName   string `json:"packageName" toml:"package_name"`
	Name          string `json:"name" toml:"name"`
	Icon          string `json:"icon" toml:"icon"`
	Comment       string `json:"comment" toml:"comment"`
	ScreenshotURL string `json:"screenshotUrl" toml:"screenshot_url"`
}

// FeedEntry describes one featured application as delivered by the feed.
// Image is nil when the feed does not provide one.
type FeedEntry struct {
	Package string  `json:"package"`
	Image   *string `json:"image"`
}

// RefreshEvent fired when the featured list has been rebuilt
type RefreshEvent struct {
	Rows []Row `json:"rows"`
}

// StringPtr returns a pointer to a copy of s
func StringPtr(s string) *string {
	return &s
}
