// Package source reads the featured feed from a local file or a URL
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"discover/config"
	"discover/models"

	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

// ErrUnexpectedStatus is returned when the feed server answers with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected feed response status")

// maxFeedSize caps how much of a feed is read
const maxFeedSize = 16 << 20

var envRx = regexp.MustCompile(`\$([A-Z_]+)`)

// ExpandEnv replaces $NAME sequences made of upper case letters and
// underscores with the value of the environment variable NAME.
func ExpandEnv(path string) string {
	return envRx.ReplaceAllStringFunc(path, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// Source loads the featured feed from Location
type Source struct {
	Location  string
	UserAgent string
	Client    *http.Client
}

func New(cfg config.TomlFeed) *Source {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultTimeout * time.Second
	}
	return &Source{
		Location:  cfg.Source,
		UserAgent: cfg.UserAgent,
		Client:    &http.Client{Timeout: timeout},
	}
}

func isRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Load reads and parses the feed. A feed document of `null` yields a nil feed.
func (s *Source) Load(ctx context.Context) (*models.Feed, error) {
	var (
		data []byte
		err  error
		name string
	)

	if isRemote(s.Location) {
		name = s.Location
		data, err = s.fetch(ctx)
	} else {
		name = ExpandEnv(s.Location)
		data, err = readFile(name)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.SplitN(name, "?", 2)[0], ".zst") {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("error decompressing feed %s: %w", name, err)
		}
	}

	log.WithFields(log.Fields{
		"location": name,
		"bytes":    len(data),
	}).Debug("Read featured feed")

	return models.ParseFeed(data)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening feed file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("error reading feed file: %w", err)
	}
	return data, nil
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating feed request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s from %s", ErrUnexpectedStatus, resp.Status, s.Location)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("error reading feed response: %w", err)
	}
	return data, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return io.ReadAll(io.LimitReader(dec, maxFeedSize))
}
