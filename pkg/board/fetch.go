package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Fetcher loads boards from a cache dir, falling back to the game server.
type Fetcher struct {
	CacheDir string
	BaseURL  string
	Client   *http.Client
}

// NewFetcher creates a Fetcher with an http client bounded by timeout.
func NewFetcher(cacheDir, baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		CacheDir: cacheDir,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Client:   &http.Client{Timeout: timeout},
	}
}

// CachePath returns where the board for date is stored.
func (f *Fetcher) CachePath(date string) string {
	return filepath.Join(f.CacheDir, date+".json")
}

// Get returns the board for date, reading the cache first.
// A freshly downloaded board is written to the cache before it is returned.
func (f *Fetcher) Get(ctx context.Context, date string) (*Board, error) {
	if b, err := f.load(date); err == nil {
		log.Debugf("Board %s served from cache", date)
		return b, nil
	} else if !os.IsNotExist(err) {
		log.Warnf("Ignoring unreadable cached board %s: %v", f.CachePath(date), err)
	}

	b, err := f.download(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := f.store(b); err != nil {
		log.Warnf("Failed to cache board %s: %v", date, err)
	}
	return b, nil
}

func (f *Fetcher) load(date string) (*Board, error) {
	data, err := os.ReadFile(f.CachePath(date))
	if err != nil {
		return nil, err
	}
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decoding cached board: %w", err)
	}
	return &b, nil
}

func (f *Fetcher) store(b *Board) error {
	if err := os.MkdirAll(f.CacheDir, 0755); err != nil {
		return err
	}
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return os.WriteFile(f.CachePath(b.Date), data, 0644)
}

func (f *Fetcher) download(ctx context.Context, date string) (*Board, error) {
	url := fmt.Sprintf("%s/%s.json", f.BaseURL, date)
	log.Debugf("Fetching board from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building board request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching board %s: %w", date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching board %s: unexpected status %s", date, resp.Status)
	}

	var rows []string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBoard, err)
	}
	return FromRows(date, rows)
}
