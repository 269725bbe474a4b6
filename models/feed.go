package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Feed maps package names to feed entries and remembers the order in which
// the keys were first seen. A nil *Feed stands for an absent feed.
type Feed struct {
	keys    []string
	entries map[string]FeedEntry
}

func NewFeed() *Feed {
	return &Feed{entries: make(map[string]FeedEntry)}
}

// Set adds or replaces the entry for name. Replacing keeps the original position.
func (f *Feed) Set(name string, entry FeedEntry) {
	if f.entries == nil {
		f.entries = make(map[string]FeedEntry)
	}
	if _, ok := f.entries[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.entries[name] = entry
}

func (f *Feed) Get(name string) (FeedEntry, bool) {
	entry, ok := f.entries[name]
	return entry, ok
}

// Len returns the number of entries, zero for an absent feed
func (f *Feed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the package names in insertion order
func (f *Feed) Keys() []string {
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// UnmarshalJSON decodes a JSON object keeping the document order of its keys.
// encoding/json maps do not keep order, so the object is walked token by token.
func (f *Feed) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("featured feed must be a JSON object, got %v", tok)
	}

	*f = Feed{entries: make(map[string]FeedEntry)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected feed key %v", tok)
		}

		var entry FeedEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("error decoding feed entry %q: %w", name, err)
		}
		f.Set(name, entry)
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// ParseFeed decodes a featured feed document. A JSON null yields a nil feed.
func ParseFeed(data []byte) (*Feed, error) {
	var feed *Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("error parsing featured feed: %w", err)
	}
	return feed, nil
}
